package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App
	EBay    EBay
	Pricing Pricing
	Sweep   Sweep
}

type App struct {
	Name     string `env:"APP_NAME" envDefault:"ebay-pricer"`
	Version  string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	HTTPListenAddress    string `env:"HTTP_LISTEN_ADDRESS" envDefault:":5050" validate:"required"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091" validate:"required"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090" validate:"required"`
}

// Load читает .env (если есть), затем переменные окружения процесса —
// значения из окружения имеют приоритет.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return Config{}, fmt.Errorf("validator.Struct: %w", err)
	}

	return config, nil
}
