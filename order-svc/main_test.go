package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-delivery/config"
	"food-delivery/order-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var restaurantColumns = []string{"id", "name", "address", "cuisine", "rating", "image_url", "is_active"}

func setupApp(t *testing.T) (http.Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		rdb.Close()
		db.Close()
	})

	cfg := config.Config{
		PublicBaseURL:  "http://localhost:8000",
		SessionBackend: config.SessionBackendRedis,
		SessionTTL:     time.Hour,
		QRCacheTTL:     time.Hour,
	}
	logger, _ := test.NewNullLogger()
	return newApp(cfg, db, rdb, nil, logger), mock, mr
}

func chat(t *testing.T, app http.Handler, message string) domain.ChatReply {
	t.Helper()
	body, err := json.Marshal(domain.ChatRequest{
		UserID:   "alice",
		Messages: []domain.ChatMessage{{Role: "user", Content: message}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/chat", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	app.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var reply domain.ChatReply
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reply))
	return reply
}

func TestChatStartsOrderAndPersistsSession(t *testing.T) {
	app, mock, mr := setupApp(t)

	mock.ExpectQuery("FROM restaurants").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(restaurantColumns).AddRow(1, "Pizza Place", "", "Italian", "4.50", "", true))

	reply := chat(t, app, "new order")
	assert.Equal(t, domain.StateSelectingRestaurant, reply.State)
	assert.Contains(t, reply.Text, "1. Pizza Place (Italian)")

	raw, err := mr.Get("chat:session:alice")
	require.NoError(t, err)
	var session domain.Session
	require.NoError(t, json.Unmarshal([]byte(raw), &session))
	assert.Equal(t, domain.StateSelectingRestaurant, session.State)
	assert.Equal(t, domain.AwaitingRestaurant, session.AwaitingSelectionFor)
}

func TestChatStorageFailureKeepsState(t *testing.T) {
	app, mock, mr := setupApp(t)

	mock.ExpectQuery("FROM restaurants").
		WithArgs(true).
		WillReturnError(sqlmock.ErrCancelled)

	reply := chat(t, app, "new order")
	assert.Equal(t, domain.StateDefault, reply.State)
	assert.Equal(t, "Something went wrong. Please try again later.", reply.Text)

	raw, err := mr.Get("chat:session:alice")
	require.NoError(t, err)
	assert.Contains(t, raw, `"state":"default"`)
}

func TestHealthAndMetrics(t *testing.T) {
	app, _, _ := setupApp(t)

	recorder := httptest.NewRecorder()
	app.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	app.ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `route="/health"`)
}
