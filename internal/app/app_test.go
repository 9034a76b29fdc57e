package app_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/SergeyBogomolovv/shop-orders/internal/app"
	"github.com/SergeyBogomolovv/shop-orders/internal/config"
	"github.com/SergeyBogomolovv/shop-orders/internal/handler"
	"github.com/SergeyBogomolovv/shop-orders/internal/repo"
	"github.com/SergeyBogomolovv/shop-orders/internal/service"
	"github.com/SergeyBogomolovv/shop-orders/internal/validation"
	"github.com/SergeyBogomolovv/shop-orders/pkg/trm"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	logger := newLogger()
	svc := service.NewOrderService(logger, trm.NewManager(db), validation.New(), repo.NewSQLRepo(db))
	require.NoError(t, svc.Bootstrap(context.Background()))

	a := app.New(logger, config.New())
	a.SetHTTPHandlers(handler.NewHTTPHandler(logger, svc))

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func TestOrdersAPI(t *testing.T) {
	srv := newServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/orders", "")
	require.Equal(t, http.StatusOK, status)

	var seeded []map[string]any
	require.NoError(t, json.Unmarshal(body, &seeded))
	require.Len(t, seeded, 5)
	assert.Equal(t, "Mehedi HasaN", seeded[0]["customer_name"])

	status, body = do(t, http.MethodPost, srv.URL+"/orders",
		`{"customer_name":"  Jane Doe ","item_name":"Desk Lamp","quantity":"2","total_price":19.999}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	var created struct {
		Message string `json:"message"`
		OrderID int64  `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Order successfully created", created.Message)
	assert.Equal(t, int64(6), created.OrderID)

	status, body = do(t, http.MethodGet, srv.URL+"/orders/6", "")
	require.Equal(t, http.StatusOK, status)

	var order map[string]any
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "Jane Doe", order["customer_name"])
	assert.Equal(t, float64(2), order["quantity"])
	assert.Equal(t, 20.0, order["total_price"])
	assert.Contains(t, string(body), `"total_price":20.00`)

	status, body = do(t, http.MethodGet, srv.URL+"/orders", "")
	require.Equal(t, http.StatusOK, status)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(body, &all))
	require.Len(t, all, 6)
	assert.Equal(t, float64(6), all[0]["id"])

	status, body = do(t, http.MethodPost, srv.URL+"/orders", `{"customer_name":"Jane"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"errors":["missing required fields: item_name, quantity, total_price"]}`, string(body))

	status, body = do(t, http.MethodGet, srv.URL+"/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"invalid order id format"}`, string(body))

	status, body = do(t, http.MethodGet, srv.URL+"/orders/999999", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"order not found"}`, string(body))

	// rejected input is never stored
	_, body = do(t, http.MethodGet, srv.URL+"/orders", "")
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 6)
}

func TestAmbientRoutes(t *testing.T) {
	srv := newServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, _ = do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, status)

	status, body = do(t, http.MethodGet, srv.URL+"/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"/orders/{id}"`)
}

type blockingConsumer struct {
	started atomic.Bool
	closed  atomic.Bool
}

func (c *blockingConsumer) Consume(ctx context.Context) error {
	c.started.Store(true)
	<-ctx.Done()
	return nil
}

func (c *blockingConsumer) Close() error {
	c.closed.Store(true)
	return nil
}

func TestApplication_StartStop(t *testing.T) {
	cfg := config.New()
	cfg.Http.Host = "127.0.0.1"
	cfg.Http.Port = "0"

	consumer := &blockingConsumer{}
	a := app.New(newLogger(), cfg)
	a.SetConsumers(consumer)

	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, a.Stop())

	assert.True(t, consumer.started.Load())
	assert.True(t, consumer.closed.Load())
	<-a.Done()
}
