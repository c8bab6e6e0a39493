package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port    string
	GoEnv   string
	Domain  string
	DataDir string

	// StoreDriver selects the record store: "json" (default) or "mongo".
	StoreDriver   string
	MongoURI      string
	MongoDatabase string

	RedisAddress        string
	RedisPassword       string
	ComplaintLimitQueue string
	ComplaintDailyLimit int

	JWTSecret     string
	AdminPassword string

	OpenAIKey   string
	OpenAIModel string

	MapsKey string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	TwilioBaseURL     string
	NotifyTimeout     time.Duration

	ImageMaxKB int

	LogLevel    string
	LogFormat   string
	CORSOrigins []string
}

// Load reads an optional .env file and then the process environment.
// The returned bool is false when no .env file was found.
func Load() (*Config, bool) {
	envFound := godotenv.Load() == nil

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		GoEnv:               getEnv("GO_ENV", "development"),
		Domain:              os.Getenv("DOMAIN"),
		DataDir:             getEnv("DATA_DIR", "data"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", "json")),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "safaisync"),
		RedisAddress:        os.Getenv("REDIS_ADDRESS"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		ComplaintLimitQueue: getEnv("REDIS_QUEUE_FOR_COMPLAINT_LIMIT", "complaint-limit"),
		ComplaintDailyLimit: getEnvInt("COMPLAINT_DAILY_LIMIT", 20),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", "default_pass"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MapsKey:             os.Getenv("MAPS_CREDENTIALS"),
		TwilioAccountSID:    os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:     os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:   os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioBaseURL:       getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
		NotifyTimeout:       getEnvDuration("NOTIFY_TIMEOUT", 15*time.Second),
		ImageMaxKB:          getEnvInt("IMAGE_MAX_KB", 300),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "*")),
	}
	return cfg, envFound
}

// IsProduction reports whether GO_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
