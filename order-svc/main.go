package main

import (
	"context"
	"database/sql"
	"net/http"

	"food-delivery/config"
	httpapi "food-delivery/order-svc/internal/api/http"
	"food-delivery/order-svc/internal/metrics"
	"food-delivery/order-svc/internal/service"
	"food-delivery/order-svc/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)

	decimal.MarshalJSONWithoutQuotes = true

	db := config.MustInitPostgres(cfg, log)
	defer db.Close()

	if err := storage.NewPostgresRepository(db).EnsureSchema(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to ensure schema")
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = config.MustInitRedis(cfg, log)
		defer rdb.Close()
	}

	writer := config.NewKafkaWriter(cfg)
	if writer != nil {
		defer writer.Close()
	}

	httpapi.StartServer(cfg.HTTPAddr, newApp(cfg, db, rdb, writer, log), log)
}

// newApp wires storage, services and the HTTP router. rdb and writer may be
// nil, which selects in-memory sessions, no QR cache and no event publishing.
func newApp(cfg config.Config, db *sql.DB, rdb *redis.Client, writer *kafka.Writer, log logrus.FieldLogger) http.Handler {
	repo := storage.NewPostgresRepository(db)

	var sessionStore service.SessionStore = storage.NewMemorySessionStore()
	if rdb != nil && cfg.SessionBackend == config.SessionBackendRedis {
		sessionStore = storage.NewRedisSessionStore(rdb, cfg.SessionTTL)
	}

	var qrCache service.QRCache
	if rdb != nil && cfg.QRCacheTTL > 0 {
		qrCache = storage.NewRedisCache(rdb, cfg.QRCacheTTL)
	}

	var publisher service.OrderEventPublisher
	if writer != nil {
		publisher = storage.NewKafkaPublisher(writer)
	}

	m := metrics.New()

	catalogSvc := service.NewCatalogService(repo)
	orderSvc := service.NewOrderService(repo, repo, publisher, log)
	qrSvc := service.NewPaymentQRService(repo, qrCache, service.DefaultQRGenerator{}, cfg.PublicBaseURL, log)
	chatSvc := service.NewChatService(service.NewSessionManager(sessionStore), catalogSvc, orderSvc, qrSvc, m, log)

	handler := httpapi.NewHandler(chatSvc, catalogSvc, orderSvc, qrSvc, log)
	return httpapi.NewRouter(handler, m)
}
