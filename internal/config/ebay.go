package config

// EBay — учётные данные приложения eBay. Все поля опциональны: без них
// сервис работает в деградированном режиме — рыночные и календарные ручки
// живут, инвентарь пустой.
type EBay struct {
	ClientID     string `env:"EBAY_CLIENT_ID" json:"-"`
	ClientSecret string `env:"EBAY_CLIENT_SECRET" json:"-"`
	RefreshToken string `env:"EBAY_REFRESH_TOKEN" json:"-"`
	DevID        string `env:"EBAY_DEV_ID" json:"-"`
}
