package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// GatewayMode says which payment gateway variant the process talks to.
// It is derived once at startup and never re-evaluated.
type GatewayMode string

const (
	ModeReal GatewayMode = "real"
	ModeMock GatewayMode = "mock"
)

// PlaceholderPublicKey is the unfilled example value shipped in .env templates.
const PlaceholderPublicKey = "pk_test_your_paystack_public_key_here"

type Config struct {
	PaystackPublicKey string
	PaystackSecretKey string
	PaystackBaseURL   string

	CurrencyCode   string
	CurrencySymbol string

	// AppBaseURL is where the gateway redirects the customer back to.
	AppBaseURL string
	ListenAddr string

	// Store selects the document store backend: "memory", "file" or "postgres".
	Store     string
	StorePath string

	DBUsername string
	DBPassword string
	DBHost     string
	DBPort     string
	DBDatabase string
	DBSchema   string

	MockDelay  time.Duration
	SessionTTL time.Duration

	Mode GatewayMode
}

func Load() Config {
	cfg := Config{
		PaystackPublicKey: os.Getenv("EVENTFLOW_PAYSTACK_PUBLIC_KEY"),
		PaystackSecretKey: os.Getenv("EVENTFLOW_PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   getenv("EVENTFLOW_PAYSTACK_BASE_URL", "https://api.paystack.co"),
		CurrencyCode:      getenv("EVENTFLOW_CURRENCY", "NGN"),
		CurrencySymbol:    getenv("EVENTFLOW_CURRENCY_SYMBOL", "₦"),
		AppBaseURL:        getenv("EVENTFLOW_APP_BASE_URL", "http://localhost:8080"),
		ListenAddr:        getenv("EVENTFLOW_LISTEN_ADDR", ":8080"),
		Store:             getenv("EVENTFLOW_STORE", "file"),
		StorePath:         getenv("EVENTFLOW_STORE_PATH", "eventflow-store.json"),
		DBUsername:        os.Getenv("EVENTFLOW_DB_USERNAME"),
		DBPassword:        os.Getenv("EVENTFLOW_DB_PASSWORD"),
		DBHost:            os.Getenv("EVENTFLOW_DB_HOST"),
		DBPort:            os.Getenv("EVENTFLOW_DB_PORT"),
		DBDatabase:        os.Getenv("EVENTFLOW_DB_DATABASE"),
		DBSchema:          getenv("EVENTFLOW_DB_SCHEMA", "public"),
		MockDelay:         getenvDuration("EVENTFLOW_MOCK_DELAY_MS", 1500*time.Millisecond),
		SessionTTL:        getenvDuration("EVENTFLOW_SESSION_TTL_MS", 30*time.Minute),
	}
	cfg.Mode = DeriveGatewayMode(cfg.PaystackPublicKey)
	return cfg
}

// DeriveGatewayMode decides Real vs Mock from the shape of the configured
// public key: it must be present, look like a Paystack key, and not be the
// template placeholder. Pure so the rule is testable apart from the env.
func DeriveGatewayMode(publicKey string) GatewayMode {
	if publicKey == "" {
		return ModeMock
	}
	if !strings.Contains(publicKey, "pk_") {
		return ModeMock
	}
	if publicKey == PlaceholderPublicKey {
		return ModeMock
	}
	return ModeReal
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
