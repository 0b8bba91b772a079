package httpapi

import (
	"net/http"

	"food-delivery/order-svc/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func NewRouter(handler *Handler, m *metrics.Metrics) http.Handler {
	r := mux.NewRouter()
	if m != nil {
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}
	handler.RegisterRoutes(r)
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(r)
}

func StartServer(addr string, handler http.Handler, log logrus.FieldLogger) {
	log.WithField("addr", addr).Info("order service starting")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
