package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string
	LogFormat       string

	LLMProvider  string
	LLMModel     string
	LLMTimeout   time.Duration
	AWSRegion    string
	OpenAIAPIKey string
	GeminiAPIKey string

	SerpAPIKey        string
	JobSearchLocation string
	JobSearchTimeout  time.Duration
	JobCatalogPath    string

	ProfileStore    string
	ProfileFile     string
	ProfileS3Bucket string
	ProfileS3Key    string
	DatabaseURL     string

	AMQPURL      string
	AMQPExchange string
	SQSQueueURL  string

	MaxUploadMB    int
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("config: read %s: %v", file, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LLM_PROVIDER", "bedrock")
	v.SetDefault("LLM_MODEL", "")
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("JOB_SEARCH_LOCATION", "United States")
	v.SetDefault("JOB_SEARCH_TIMEOUT", "10s")
	v.SetDefault("PROFILE_STORE", "file")
	v.SetDefault("PROFILE_FILE", "./data/user_profiles.json")
	v.SetDefault("PROFILE_S3_KEY", "profiles/user_profiles.json")
	v.SetDefault("AMQP_EXCHANGE", "session_updates")
	v.SetDefault("MAX_UPLOAD_MB", 16)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 0)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Port:              v.GetString("PORT"),
		Env:               normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin:   splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		LLMProvider:       normalizeProvider(v.GetString("LLM_PROVIDER")),
		LLMModel:          strings.TrimSpace(v.GetString("LLM_MODEL")),
		LLMTimeout:        durationOr(v.GetDuration("LLM_TIMEOUT"), 60*time.Second),
		AWSRegion:         strings.TrimSpace(v.GetString("AWS_REGION")),
		OpenAIAPIKey:      strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		GeminiAPIKey:      strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		SerpAPIKey:        strings.TrimSpace(v.GetString("SERPAPI_KEY")),
		JobSearchLocation: strings.TrimSpace(v.GetString("JOB_SEARCH_LOCATION")),
		JobSearchTimeout:  durationOr(v.GetDuration("JOB_SEARCH_TIMEOUT"), 10*time.Second),
		JobCatalogPath:    strings.TrimSpace(v.GetString("JOB_CATALOG_PATH")),
		ProfileStore:      normalizeStoreType(v.GetString("PROFILE_STORE")),
		ProfileFile:       strings.TrimSpace(v.GetString("PROFILE_FILE")),
		ProfileS3Bucket:   strings.TrimSpace(v.GetString("PROFILE_S3_BUCKET")),
		ProfileS3Key:      strings.TrimSpace(v.GetString("PROFILE_S3_KEY")),
		DatabaseURL:       strings.TrimSpace(v.GetString("DATABASE_URL")),
		AMQPURL:           strings.TrimSpace(v.GetString("AMQP_URL")),
		AMQPExchange:      strings.TrimSpace(v.GetString("AMQP_EXCHANGE")),
		SQSQueueURL:       strings.TrimSpace(v.GetString("SQS_QUEUE_URL")),
		MaxUploadMB:       v.GetInt("MAX_UPLOAD_MB"),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
	}
}

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	case "none", "off", "disabled":
		return "none"
	default:
		return "bedrock"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "postgres", "pg":
		return "postgres"
	default:
		return "file"
	}
}
