package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config is the full process configuration, populated from the
// environment with the GREENBASKET prefix.
type Config struct {
	App      AppConfig      `envconfig:"APP"`
	DB       DBConfig       `envconfig:"DB"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	JWT      JWTConfig      `envconfig:"JWT"`
	Checkout CheckoutConfig `envconfig:"CHECKOUT"`
	Razorpay RazorpayConfig `envconfig:"RAZORPAY"`
}

type AppConfig struct {
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type DBConfig struct {
	DSN            string `envconfig:"DSN" required:"true"`
	MaxOpenConns   int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns   int    `envconfig:"MAX_IDLE_CONNS" default:"5"`
	AutoMigrateDev bool   `envconfig:"AUTO_MIGRATE_DEV" default:"true"`
}

type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

type JWTConfig struct {
	Secret string `envconfig:"SECRET" required:"true"`
}

// CheckoutConfig holds the pricing policy applied per vendor group.
type CheckoutConfig struct {
	FreeDeliveryThreshold decimal.Decimal `envconfig:"FREE_DELIVERY_THRESHOLD" default:"500"`
	DeliveryFee           decimal.Decimal `envconfig:"DELIVERY_FEE" default:"40"`
	TaxRate               decimal.Decimal `envconfig:"TAX_RATE" default:"0.05"`
	EstimatedDeliveryDays int             `envconfig:"ESTIMATED_DELIVERY_DAYS" default:"2"`
}

type RazorpayConfig struct {
	KeyID         string `envconfig:"KEY_ID" required:"true"`
	KeySecret     string `envconfig:"KEY_SECRET" required:"true"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET" required:"true"`
}

// Load reads .env when present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("GREENBASKET", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
