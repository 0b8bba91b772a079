package config

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	HTTPAddr      string
	PublicBaseURL string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost string
	RedisPort string

	SessionBackend string
	SessionTTL     time.Duration
	QRCacheTTL     time.Duration

	KafkaBroker      string
	OrderEventsTopic string

	LogLevel string
}

// Load reads the service configuration from the environment. A .env file in
// the working directory is applied first when present; real environment
// variables win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8000"),
		PublicBaseURL:    strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBName:           getEnv("DB_NAME", "food_delivery"),
		DBUser:           getEnv("DB_USER", "delivery_user"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		SessionBackend:   getEnv("SESSION_BACKEND", SessionBackendMemory),
		SessionTTL:       getDuration("SESSION_TTL", 0),
		QRCacheTTL:       getDuration("QR_CACHE_TTL", time.Hour),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order-events"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func (c Config) RedisAddr() string {
	host := c.RedisHost
	if host == "" {
		host = "localhost"
	}
	return host + ":" + c.RedisPort
}

// RedisEnabled reports whether Redis should be connected: either sessions
// live there or REDIS_HOST was set for the QR cache.
func (c Config) RedisEnabled() bool {
	return c.SessionBackend == SessionBackendRedis || c.RedisHost != ""
}

func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	logger.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func MustInitPostgres(cfg Config, log logrus.FieldLogger) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config, log logrus.FieldLogger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	return client
}

// NewKafkaWriter returns nil when no broker is configured, which disables
// event publishing.
func NewKafkaWriter(cfg Config) *kafka.Writer {
	if cfg.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(cfg.KafkaBroker, ",")...),
		Topic:    cfg.OrderEventsTopic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
