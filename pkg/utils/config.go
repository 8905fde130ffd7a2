package utils

import (
	"log"
	"os"
	"strconv"
)

// Config gathers the knobs the scheduling engine and transfer verifier read.
// Values come from the environment once at startup; defaults keep a bare
// process runnable without a .env file.
type Config struct {
	Port        string
	PostgresURL string
	JWTSecret   string

	// Ranking weights, summing to <= 1.
	WeightPref      float64
	WeightTime      float64
	WeightBudget    float64
	WeightDiversity float64
	WeightHealth    float64

	MaxItemsPerDay    int
	BreakAfterMinutes int
	BreakMinutes      int

	UseLiveRoutes   bool
	StrictVerify    bool
	RoutesAPIKey    string
	MaxVerifyEdges  int
	TransferTTLMin  int
	RoutesTimeoutMS int

	RateLimitPerMin int

	OpenAIAPIKey   string
	EmbeddingModel string

	AdminUser         string
	AdminPasswordHash string
}

func LoadConfig() *Config {
	return &Config{
		Port:        envString("PORT", "8080"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		WeightPref:      envFloat("RANK_WEIGHT_PREF", 0.30),
		WeightTime:      envFloat("RANK_WEIGHT_TIME", 0.20),
		WeightBudget:    envFloat("RANK_WEIGHT_BUDGET", 0.20),
		WeightDiversity: envFloat("RANK_WEIGHT_DIVERSITY", 0.15),
		WeightHealth:    envFloat("RANK_WEIGHT_HEALTH", 0.15),

		MaxItemsPerDay:    envInt("MAX_ITEMS_PER_DAY", 4),
		BreakAfterMinutes: envInt("BREAK_AFTER_MINUTES", 180),
		BreakMinutes:      envInt("BREAK_MINUTES", 30),

		UseLiveRoutes:   envBool("USE_GOOGLE_ROUTES", false),
		StrictVerify:    envBool("STRICT_TRANSFER_VERIFY", false),
		RoutesAPIKey:    os.Getenv("ROUTES_API_KEY"),
		MaxVerifyEdges:  envInt("TRANSFER_VERIFY_MAX_EDGES", 30),
		TransferTTLMin:  envInt("TRANSFER_CACHE_TTL_MIN", 60),
		RoutesTimeoutMS: envInt("ROUTES_TIMEOUT_MS", 4000),

		RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 60),

		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel: envString("EMBEDDING_MODEL", "text-embedding-3-small"),

		AdminUser:         envString("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

func envString(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", name, v, def)
		return def
	}
	return n
}

func envFloat(name string, def float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %f", name, v, def)
		return def
	}
	return f
}

func envBool(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	return v == "true" || v == "1"
}
