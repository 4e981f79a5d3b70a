package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("GREENBASKET_DB_DSN", "postgres://localhost/greenbasket_test")
	t.Setenv("GREENBASKET_JWT_SECRET", "test-secret")
	t.Setenv("GREENBASKET_RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("GREENBASKET_RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("GREENBASKET_RAZORPAY_WEBHOOK_SECRET", "whsec")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.App.Port)
	require.True(t, cfg.Checkout.FreeDeliveryThreshold.Equal(decimal.NewFromInt(500)))
	require.True(t, cfg.Checkout.DeliveryFee.Equal(decimal.NewFromInt(40)))
	require.True(t, cfg.Checkout.TaxRate.Equal(decimal.RequireFromString("0.05")))
	require.Equal(t, 2, cfg.Checkout.EstimatedDeliveryDays)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.True(t, cfg.DB.AutoMigrateDev)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GREENBASKET_CHECKOUT_TAX_RATE", "0.12")
	t.Setenv("GREENBASKET_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.App.Port)
	require.True(t, cfg.Checkout.TaxRate.Equal(decimal.RequireFromString("0.12")))
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("GREENBASKET_DB_DSN", "")
	t.Setenv("GREENBASKET_JWT_SECRET", "")
	t.Setenv("GREENBASKET_RAZORPAY_KEY_ID", "")
	t.Setenv("GREENBASKET_RAZORPAY_KEY_SECRET", "")
	t.Setenv("GREENBASKET_RAZORPAY_WEBHOOK_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}
