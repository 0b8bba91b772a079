package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "PUBLIC_BASE_URL", "DB_HOST", "REDIS_HOST", "SESSION_BACKEND", "SESSION_TTL", "QR_CACHE_TTL", "KAFKA_BROKER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8000", cfg.PublicBaseURL)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.QRCacheTTL)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Nil(t, NewKafkaWriter(cfg))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://food.example.com/")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("QR_CACHE_TTL", "120")
	t.Setenv("KAFKA_BROKER", "kafka-1:9092,kafka-2:9092")

	cfg := Load()
	assert.Equal(t, "https://food.example.com", cfg.PublicBaseURL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2*time.Minute, cfg.QRCacheTTL)

	writer := NewKafkaWriter(cfg)
	if assert.NotNil(t, writer) {
		assert.Equal(t, "order-events", writer.Topic)
	}
}

func TestRedisEnabled_SessionBackend(t *testing.T) {
	cfg := Config{SessionBackend: SessionBackendRedis}
	assert.True(t, cfg.RedisEnabled())
}

func TestGetDuration_Invalid(t *testing.T) {
	t.Setenv("SOME_TTL", "soon")
	assert.Equal(t, time.Second, getDuration("SOME_TTL", time.Second))
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "food"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=food sslmode=disable", cfg.PostgresDSN())
}

func TestNewLogger_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("loud").GetLevel())
}
