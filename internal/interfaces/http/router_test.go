package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderUsecases "github.com/sandpay-io/sandpay/internal/application/order/usecases"
	paymentUsecases "github.com/sandpay-io/sandpay/internal/application/payment/usecases"
	"github.com/sandpay-io/sandpay/internal/infrastructure/repository"
	"github.com/sandpay-io/sandpay/internal/infrastructure/webhook"
	"github.com/sandpay-io/sandpay/internal/interfaces/http/handlers"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
	"github.com/sandpay-io/sandpay/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// apiFixture wires the full HTTP stack against in-memory stores and a
// local webhook receiver.
type apiFixture struct {
	engine      *gin.Engine
	receiverURL string
	received    chan *nethttp.Request
	bodies      chan []byte
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	f := &apiFixture{
		received: make(chan *nethttp.Request, 8),
		bodies:   make(chan []byte, 8),
	}

	receiver := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, _ := io.ReadAll(r.Body)
		f.received <- r
		f.bodies <- body
		w.WriteHeader(nethttp.StatusOK)
	}))
	t.Cleanup(receiver.Close)
	f.receiverURL = receiver.URL

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))

	orderRepo := repository.NewMemoryOrderRepository()
	txnRepo := repository.NewMemoryTransactionRepository()

	dispatcher := webhook.NewDispatcher(
		webhook.NewExecutor(2*time.Second),
		webhook.NewBackoffSchedulerWith(time.Millisecond, 5*time.Millisecond, 0),
		log,
	)

	createOrderUC := orderUsecases.NewCreateOrderUseCase(orderRepo, log)
	getOrderUC := orderUsecases.NewGetOrderUseCase(orderRepo, log)
	processPaymentUC := paymentUsecases.NewProcessPaymentUseCase(orderRepo, txnRepo, dispatcher,
		paymentUsecases.WebhookSecrets{Test: "whsec_test", Live: "whsec_live"}, 2, log)

	engine, err := NewRouter(&RouterConfig{
		OrderHandler:   handlers.NewOrderHandler(createOrderUC, getOrderUC, log),
		PaymentHandler: handlers.NewPaymentHandler(processPaymentUC, log),
		Logger:         log,
	})
	require.NoError(t, err)
	f.engine = engine

	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

type apiEnvelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *utils.ErrorInfo `json:"error"`
	Message string           `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (f *apiFixture) createOrder(t *testing.T) handlers.OrderResponse {
	t.Helper()
	rec := f.do(t, nethttp.MethodPost, "/api/v1/orders", map[string]interface{}{
		"merchant_id":       "merchant_1",
		"merchant_order_id": "shop-order-42",
		"amount_in_paisa":   49900,
		"currency":          "INR",
		"callback_url":      f.receiverURL + "/webhook",
		"test_mode":         true,
		"metadata":          map[string]interface{}{"sku": "tshirt-xl"},
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var resp handlers.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func (f *apiFixture) awaitWebhook(t *testing.T) (*nethttp.Request, []byte) {
	t.Helper()
	select {
	case req := <-f.received:
		return req, <-f.bodies
	case <-time.After(2 * time.Second):
		t.Fatal("no webhook received")
		return nil, nil
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.createOrder(t)
	assert.NotEmpty(t, resp.GatewayOrderID)
	assert.Equal(t, "shop-order-42", resp.MerchantOrderID)
	assert.Equal(t, "CREATED", resp.Status)
	assert.Equal(t, int64(49900), resp.AmountInPaisa)
	assert.NotEmpty(t, resp.OneTimeOrderToken)
	assert.True(t, resp.TestMode)
}

func TestCreateOrderEndpoint_UnregisteredCallbackURL(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, nethttp.MethodPost, "/api/v1/orders", map[string]interface{}{
		"merchant_id":       "merchant_1",
		"merchant_order_id": "shop-order-42",
		"amount_in_paisa":   49900,
		"callback_url":      "http://merchant.example.com/webhook",
	})

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_URL_NOT_REGISTERED", env.Error.Code)
}

func TestCreateOrderEndpoint_MissingFields(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, nethttp.MethodPost, "/api/v1/orders", map[string]interface{}{
		"merchant_id": "merchant_1",
	})

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	created := f.createOrder(t)

	rec := f.do(t, nethttp.MethodGet, "/api/v1/orders/"+created.GatewayOrderID, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp handlers.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, created.GatewayOrderID, resp.GatewayOrderID)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, nethttp.MethodGet, "/api/v1/orders/ord_missing", nil)

	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_ORDER_NOT_FOUND", env.Error.Code)
}

func TestProcessPaymentEndpoint_SuccessDeliversSignedWebhook(t *testing.T) {
	f := newAPIFixture(t)
	created := f.createOrder(t)

	rec := f.do(t, nethttp.MethodPost, "/api/v1/payments/process", map[string]interface{}{
		"order_id":        created.GatewayOrderID,
		"amount_in_paisa": 49900,
		"currency":        "INR",
		"payment_method":  "card",
		"card": map[string]string{
			"number":       "4242424242424242",
			"holder_name":  "Asha Rao",
			"expiry_month": "12",
			"expiry_year":  "2030",
			"cvv":          "123",
		},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	var resp handlers.ProcessPaymentResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "COMPLETED", resp.OrderStatus)
	assert.NotEmpty(t, resp.TransactionID)

	webhookReq, body := f.awaitWebhook(t)
	assert.Equal(t, "/webhook", webhookReq.URL.Path)
	assert.True(t, webhook.Verify("whsec_test", body, webhookReq.Header.Get(webhook.HeaderSignature)))
	assert.Equal(t, "0", webhookReq.Header.Get(webhook.HeaderRetryCount))
	assert.Equal(t, "true", webhookReq.Header.Get(webhook.HeaderTestMode))
	assert.Equal(t, resp.TransactionID, webhookReq.Header.Get(webhook.HeaderIdempotencyKey))

	var payload paymentUsecases.WebhookPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, created.GatewayOrderID, payload.GatewayOrderID)
	assert.Equal(t, "SUCCESS", payload.Status)
}

func TestProcessPaymentEndpoint_DeclinedCard(t *testing.T) {
	f := newAPIFixture(t)
	created := f.createOrder(t)

	rec := f.do(t, nethttp.MethodPost, "/api/v1/payments/process", map[string]interface{}{
		"order_id":        created.GatewayOrderID,
		"amount_in_paisa": 49900,
		"payment_method":  "card",
		"card":            map[string]string{"number": "4242424242420000"},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp handlers.ProcessPaymentResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "FAILED", resp.OrderStatus)
	assert.Equal(t, "Card declined by issuer", resp.FailureReason)

	_, body := f.awaitWebhook(t)
	var payload paymentUsecases.WebhookPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "FAILED", payload.Status)
}

func TestProcessPaymentEndpoint_ReplayConflicts(t *testing.T) {
	f := newAPIFixture(t)
	created := f.createOrder(t)

	payment := map[string]interface{}{
		"order_id":        created.GatewayOrderID,
		"amount_in_paisa": 49900,
		"payment_method":  "upi",
		"upi_id":          "alice@upi",
	}

	rec := f.do(t, nethttp.MethodPost, "/api/v1/payments/process", payment)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	f.awaitWebhook(t)

	rec = f.do(t, nethttp.MethodPost, "/api/v1/payments/process", payment)
	assert.Equal(t, nethttp.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_ORDER_ALREADY_PROCESSED", env.Error.Code)
}

func TestProcessPaymentEndpoint_AmountMismatch(t *testing.T) {
	f := newAPIFixture(t)
	created := f.createOrder(t)

	rec := f.do(t, nethttp.MethodPost, "/api/v1/payments/process", map[string]interface{}{
		"order_id":        created.GatewayOrderID,
		"amount_in_paisa": 100,
		"payment_method":  "upi",
		"upi_id":          "alice@upi",
	})

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_AMOUNT_MISMATCH", env.Error.Code)
}

func TestProcessPaymentEndpoint_InvalidMethodRejectedAtBinding(t *testing.T) {
	f := newAPIFixture(t)
	created := f.createOrder(t)

	rec := f.do(t, nethttp.MethodPost, "/api/v1/payments/process", map[string]interface{}{
		"order_id":        created.GatewayOrderID,
		"amount_in_paisa": 49900,
		"payment_method":  "crypto",
	})

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, nethttp.MethodGet, "/health", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
}
