package config

import "time"

// Sweep — настройки фонового прохода по инвентарю.
type Sweep struct {
	// Schedule в формате robfig/cron (поддерживаются @every-выражения).
	Schedule string `env:"SWEEP_SCHEDULE" envDefault:"@every 15m" validate:"required"`
	// AutoApply разрешает проходу реально поднимать цены через ReviseItem.
	// По умолчанию выключен: проход только считает и пишет метрики.
	AutoApply bool `env:"SWEEP_AUTO_APPLY" envDefault:"false"`
	// AppliedTTL — сколько помнить применённую надбавку, чтобы в одном
	// окне события не поднять цену одного лота дважды.
	AppliedTTL time.Duration `env:"SWEEP_APPLIED_TTL" envDefault:"24h"`
	PerPage    int           `env:"SWEEP_PER_PAGE" envDefault:"100" validate:"gte=1,lte=200"`
}
