package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DeployMode selects sandbox or live provider endpoints
type DeployMode string

const (
	ModeSandbox    DeployMode = "sandbox"
	ModeProduction DeployMode = "production"
)

// PayPalEndpoints are the base URLs used for one deployment mode
type PayPalEndpoints struct {
	APIBase      string
	CheckoutBase string // the order id is appended
}

// paypalEndpoints maps each supported deployment mode to its PayPal URLs
var paypalEndpoints = map[DeployMode]PayPalEndpoints{
	ModeSandbox: {
		APIBase:      "https://api-m.sandbox.paypal.com",
		CheckoutBase: "https://www.sandbox.paypal.com/checkoutnow?token=",
	},
	ModeProduction: {
		APIBase:      "https://api-m.paypal.com",
		CheckoutBase: "https://www.paypal.com/checkoutnow?token=",
	},
}

// Config holds everything read from the environment at startup
type Config struct {
	Port                 string
	Mode                 DeployMode
	MongoURI             string
	MongoDB              string
	JWTSecret            string
	FrontendURL          string
	PublicDir            string
	AllowedOrigins       []string
	PublicPaymentListing bool
	LogLevel             string

	StripeSecretKey    string
	PayPalClientID     string
	PayPalClientSecret string
	PayPal             PayPalEndpoints

	MailProvider  string
	PostmarkToken string
	SendGridKey   string
	EmailSender   string
}

// LoadConfig reads the environment and validates it
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8000"),
		Mode:                 deployModeFromEnv(),
		MongoURI:             os.Getenv("MONGO_URI"),
		MongoDB:              getEnv("MONGO_DB", "stem_inspires"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		FrontendURL:          strings.TrimRight(os.Getenv("FRONTEND_URL"), "/"),
		PublicDir:            getEnv("PUBLIC_DIR", "public"),
		AllowedOrigins:       splitList(os.Getenv("ALLOWED_ORIGINS")),
		PublicPaymentListing: getEnvBool("PUBLIC_PAYMENT_LISTING", true),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		PayPalClientID:       os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret:   os.Getenv("PAYPAL_CLIENT_SECRET"),
		MailProvider:         strings.ToLower(os.Getenv("MAIL_PROVIDER")),
		PostmarkToken:        os.Getenv("POSTMARK_API_TOKEN"),
		SendGridKey:          os.Getenv("SENDGRID_API_KEY"),
		EmailSender:          os.Getenv("EMAIL_SENDER"),
	}

	endpoints, err := PayPalEndpointsFor(cfg.Mode)
	if err != nil {
		return nil, err
	}
	cfg.PayPal = endpoints

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.FrontendURL == "" {
		return nil, fmt.Errorf("FRONTEND_URL is required")
	}
	switch cfg.MailProvider {
	case "":
	case "postmark":
		if cfg.PostmarkToken == "" {
			return nil, fmt.Errorf("POSTMARK_API_TOKEN is required when MAIL_PROVIDER=postmark")
		}
	case "sendgrid":
		if cfg.SendGridKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is required when MAIL_PROVIDER=sendgrid")
		}
	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q", cfg.MailProvider)
	}

	return cfg, nil
}

// PayPalEndpointsFor looks up the PayPal URLs of a deployment mode
func PayPalEndpointsFor(mode DeployMode) (PayPalEndpoints, error) {
	e, ok := paypalEndpoints[mode]
	if !ok {
		return PayPalEndpoints{}, fmt.Errorf("unknown DEPLOY_MODE %q", mode)
	}
	return e, nil
}

// deployModeFromEnv honours DEPLOY_MODE and falls back to NODE_ENV=production
func deployModeFromEnv() DeployMode {
	if v := strings.TrimSpace(os.Getenv("DEPLOY_MODE")); v != "" {
		return DeployMode(strings.ToLower(v))
	}
	if os.Getenv("NODE_ENV") == "production" {
		return ModeProduction
	}
	return ModeSandbox
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
