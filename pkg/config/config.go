package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleProjectID    string
	GoogleCredentials  string
	PubSubTopic        string

	FirebaseCredentials string

	AIProvider    string
	GeminiAPIKey  string
	OllamaBaseURL string
	OllamaModel   string

	TavilyAPIKey string

	ChromaAPIKey   string
	ChromaTenant   string
	ChromaDatabase string

	// Briefing engine knobs. The scan interval is how often the scheduler
	// wakes up; the lookahead window bounds which meetings are eligible; the
	// freshness window suppresses regeneration for the same meeting.
	ScanInterval      time.Duration
	ScanLookahead     time.Duration
	BriefingFreshness time.Duration
	BriefingWorkers   int

	CalendarTimeout time.Duration
	SearchTimeout   time.Duration
	LLMTimeout      time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=consultant port=5432 sslmode=disable"),

		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/integrations/google/callback"),
		GoogleProjectID:    getEnv("GOOGLE_PROJECT_ID", ""),
		GoogleCredentials:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		PubSubTopic:        getEnv("PUBSUB_TOPIC", "briefing-events"),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),

		AIProvider:    getEnv("AI_PROVIDER", "auto"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		TavilyAPIKey: getEnv("TAVILY_API_KEY", ""),

		ChromaAPIKey:   getEnv("CHROMA_API_KEY", ""),
		ChromaTenant:   getEnv("CHROMA_TENANT", ""),
		ChromaDatabase: getEnv("CHROMA_DATABASE", ""),

		ScanInterval:      getDuration("SCAN_INTERVAL", 1*time.Hour),
		ScanLookahead:     getDuration("SCAN_LOOKAHEAD", 24*time.Hour),
		BriefingFreshness: getDuration("BRIEFING_FRESHNESS", 24*time.Hour),
		BriefingWorkers:   getInt("BRIEFING_WORKERS", 3),

		CalendarTimeout: getDuration("CALENDAR_TIMEOUT", 5*time.Second),
		SearchTimeout:   getDuration("SEARCH_TIMEOUT", 8*time.Second),
		LLMTimeout:      getDuration("LLM_TIMEOUT", 45*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
