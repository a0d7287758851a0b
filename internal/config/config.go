package config

import (
	"os"
	"strconv"

	"github.com/comanda-pos/api/internal/cart"
	"github.com/comanda-pos/api/internal/order"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port               string
	JWTSecret          string
	MenuPath           string
	TaxRate            decimal.Decimal
	PrepBufferMinutes  int
	DelayBufferMinutes int
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8082"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		MenuPath:           getEnv("MENU_PATH", "menu.json"),
		TaxRate:            getDecimal("TAX_RATE", "0.16"),
		PrepBufferMinutes:  getInt("PREP_BUFFER_MINUTES", cart.DefaultPrepBufferMinutes),
		DelayBufferMinutes: getInt("DELAY_BUFFER_MINUTES", order.DefaultDelayBufferMinutes),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			return d
		}
	}
	d, _ := decimal.NewFromString(fallback)
	return d
}
