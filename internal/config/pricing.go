package config

type Pricing struct {
	RulesPath       string `env:"PRICING_RULES_PATH" envDefault:"pricing_rules.json" validate:"required"`
	MarketIndexPath string `env:"MARKET_INDEX_PATH" envDefault:"master_pricing_index.json" validate:"required"`
}
