package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	AppConfig Config
	envLoaded bool
)

type OAuthConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
}

// SimulationConfig holds the tuning knobs for the automation simulation.
// The defaults reproduce the product's original "feel" values; they carry
// no business meaning beyond that.
type SimulationConfig struct {
	TickInterval    time.Duration `json:"tick_interval"`
	GenerationDelay time.Duration `json:"generation_delay"`
	LeadCountMin    int           `json:"lead_count_min"`
	LeadCountMax    int           `json:"lead_count_max"`
	ReplyChance     float64       `json:"reply_chance"`
	FollowUpTicks   int           `json:"follow_up_ticks"`
}

type Config struct {
	Environment          string           `json:"environment"`
	ServerPort           string           `json:"server_port"`
	EncryptionKey        string           `json:"-"`
	SentryDSN            string           `json:"-"`
	Google               OAuthConfig      `json:"google"`
	OpenAIAPIKey         string           `json:"-"`
	OpenAIModel          string           `json:"openai_model"`
	StripeSecretKey      string           `json:"-"`
	StripePublishableKey string           `json:"stripe_publishable_key"`
	SMTPHost             string           `json:"smtp_host"`
	SMTPPort             int              `json:"smtp_port"`
	SMTPUsername         string           `json:"smtp_username"`
	SMTPPassword         string           `json:"-"`
	FromEmail            string           `json:"from_email"`
	RateLimitDrafts      int              `json:"rate_limit_drafts"`
	Simulation           SimulationConfig `json:"simulation"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
	envLoaded = true
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    getEnv("SERVER_PORT", "5000"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
		Google: OAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		},
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		FromEmail:            getEnv("FROM_EMAIL", "outreach@leadforge.app"),
		RateLimitDrafts:      getEnvAsInt("RATE_LIMIT_DRAFTS", 10),
		Simulation: SimulationConfig{
			TickInterval:    getEnvAsDuration("SIM_TICK_INTERVAL", 2*time.Second),
			GenerationDelay: getEnvAsDuration("SIM_GENERATION_DELAY", 5*time.Second),
			LeadCountMin:    getEnvAsInt("SIM_LEAD_COUNT_MIN", 150),
			LeadCountMax:    getEnvAsInt("SIM_LEAD_COUNT_MAX", 1500),
			ReplyChance:     getEnvAsFloat("SIM_REPLY_CHANCE", 0.03),
			FollowUpTicks:   getEnvAsInt("SIM_FOLLOW_UP_TICKS", 3),
		},
	}

	// Validate required configurations
	if AppConfig.EncryptionKey == "" {
		return fmt.Errorf("ENCRYPTION_KEY is required")
	}
	if AppConfig.Simulation.LeadCountMin <= 0 || AppConfig.Simulation.LeadCountMax <= AppConfig.Simulation.LeadCountMin {
		return fmt.Errorf("invalid simulation lead count range [%d, %d)",
			AppConfig.Simulation.LeadCountMin, AppConfig.Simulation.LeadCountMax)
	}
	if AppConfig.Simulation.ReplyChance < 0 || AppConfig.Simulation.ReplyChance > 1 {
		return fmt.Errorf("SIM_REPLY_CHANCE must be between 0 and 1")
	}

	logConfig()
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if !envLoaded && fallback == "" {
		log.Printf("⚠️ Environment variable %s not found and no fallback provided", key)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func logConfig() {
	log.Println("🔧 Loaded configuration:")
	log.Printf("Environment: %s", AppConfig.Environment)
	log.Printf("Server Port: %s", AppConfig.ServerPort)
	log.Printf("AI Generation: live(%t) model(%s)", AppConfig.OpenAIAPIKey != "", AppConfig.OpenAIModel)
	log.Printf("Billing: stripe(%t)", AppConfig.StripeSecretKey != "")
	log.Printf("SMTP: configured(%t)", AppConfig.SMTPHost != "")
	log.Printf("OAuth Providers: Google(%t)", AppConfig.Google.ClientID != "")
	log.Printf("Simulation: tick=%s delay=%s leads=[%d,%d) reply=%.2f followup=%d",
		AppConfig.Simulation.TickInterval,
		AppConfig.Simulation.GenerationDelay,
		AppConfig.Simulation.LeadCountMin,
		AppConfig.Simulation.LeadCountMax,
		AppConfig.Simulation.ReplyChance,
		AppConfig.Simulation.FollowUpTicks)
}
