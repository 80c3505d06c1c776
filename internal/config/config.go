package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config se carga desde variables de entorno (y un .env opcional).
type Config struct {
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"`

	// Vacío => storage in-memory.
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RunMigrations bool   `mapstructure:"RUN_MIGRATIONS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	// Año fijo del prefijo de numeración de facturas (F-<año>-NNNNN).
	InvoiceNumberYear int `mapstructure:"INVOICE_NUMBER_YEAR"`

	// Zona usada para decidir el día calendario de una cita.
	Timezone string `mapstructure:"TIMEZONE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "vet-clinic")
	v.SetDefault("INVOICE_NUMBER_YEAR", 2025)
	v.SetDefault("TIMEZONE", "Local")

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.InvoiceNumberYear < 1000 || cfg.InvoiceNumberYear > 9999 {
		return nil, fmt.Errorf("INVOICE_NUMBER_YEAR must have 4 digits, got %d", cfg.InvoiceNumberYear)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}
