package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr         string
	StoreBackend string

	MongoURI             string
	MongoDatabase        string
	SubmissionCollection string
	RestaurantCollection string
	ReviewCollection     string
	Timeout              time.Duration

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	LockTTL       time.Duration

	KafkaBrokers        []string
	KafkaLifecycleTopic string

	PaymentWebhookSecret string
	WebhookTolerance     time.Duration

	ServerLog      *log.Logger
	JWTConfigs     []JWTConfig
	JWTAudience    string
	AdminRole      string
	AllowedOrigins []string

	MessengerEndpoint      string
	MessengerDestination   string
	MessengerTimeout       time.Duration
	AdminSubmissionBaseURL string

	RetentionWindow     time.Duration
	RetentionInterval   time.Duration
	DefaultSearchRadius float64
}

// Load reads .env (when present) and environment variables and returns a
// fully populated Config. Invalid configuration is fatal.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	cfg.ServerLog.Printf("loaded config: backend=%s addr=%s redis=%t kafka=%t messenger=%q",
		cfg.StoreBackend, cfg.Addr, cfg.RedisAddr != "", len(cfg.KafkaBrokers) > 0, cfg.MessengerEndpoint)
	return cfg
}

// FromEnv builds a Config from the process environment without touching .env files.
func FromEnv() (Config, error) {
	backend := strings.ToLower(envOrDefault("STORE_BACKEND", BackendMemory))
	switch backend {
	case BackendMemory, BackendMongo, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND must be one of memory, mongo, postgres; got %q", backend)
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "halal-food-club-auth"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, errors.New("JWT secret not configured. Set AUTH_JWT_SECRET")
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if backend == BackendPostgres && databaseURL == "" {
		return Config{}, errors.New("DATABASE_URL must be configured when STORE_BACKEND=postgres")
	}

	durations := map[string]*time.Duration{}
	timeout := 10 * time.Second
	lockTTL := 30 * time.Second
	webhookTolerance := 5 * time.Minute
	messengerTimeout := 3 * time.Second
	retentionWindow := 30 * 24 * time.Hour
	retentionInterval := 24 * time.Hour
	durations["MONGO_CONNECT_TIMEOUT"] = &timeout
	durations["LOCK_TTL"] = &lockTTL
	durations["WEBHOOK_TOLERANCE"] = &webhookTolerance
	durations["MESSENGER_GATEWAY_TIMEOUT"] = &messengerTimeout
	durations["RETENTION_WINDOW"] = &retentionWindow
	durations["RETENTION_INTERVAL"] = &retentionInterval
	for key, target := range durations {
		if err := parseDuration(key, target); err != nil {
			return Config{}, err
		}
	}

	radius := 10.0
	if raw := strings.TrimSpace(os.Getenv("SEARCH_DEFAULT_RADIUS_MILES")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("SEARCH_DEFAULT_RADIUS_MILES must be a positive number, got %q", raw)
		}
		radius = parsed
	}

	return Config{
		Addr:                   envOrDefault("HTTP_ADDR", ":8080"),
		StoreBackend:           backend,
		MongoURI:               envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:          envOrDefault("MONGO_DB", "halal-food-club"),
		SubmissionCollection:   envOrDefault("SUBMISSION_COLLECTION", "submissions"),
		RestaurantCollection:   envOrDefault("RESTAURANT_COLLECTION", "restaurants"),
		ReviewCollection:       envOrDefault("REVIEW_COLLECTION", "reviews"),
		Timeout:                timeout,
		DatabaseURL:            databaseURL,
		RedisAddr:              strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		LockTTL:                lockTTL,
		KafkaBrokers:           parseList("KAFKA_BROKERS", nil),
		KafkaLifecycleTopic:    envOrDefault("KAFKA_LIFECYCLE_TOPIC", "submission.lifecycle"),
		PaymentWebhookSecret:   strings.TrimSpace(os.Getenv("PAYMENT_WEBHOOK_SECRET")),
		WebhookTolerance:       webhookTolerance,
		ServerLog:              log.New(os.Stdout, "[halal-food-club-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:             jwtConfigs,
		JWTAudience:            strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AdminRole:              envOrDefault("ADMIN_ROLE", "admin"),
		AllowedOrigins:         parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		MessengerEndpoint:      strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
		MessengerDestination:   envOrDefault("MESSENGER_ADMIN_DESTINATION", "discord"),
		MessengerTimeout:       messengerTimeout,
		AdminSubmissionBaseURL: strings.TrimSpace(os.Getenv("ADMIN_SUBMISSION_BASE_URL")),
		RetentionWindow:        retentionWindow,
		RetentionInterval:      retentionInterval,
		DefaultSearchRadius:    radius,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, target *time.Duration) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	*target = parsed
	return nil
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
