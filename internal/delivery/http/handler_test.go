package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndiaye-labs/gatepass/config"
	"github.com/ndiaye-labs/gatepass/internal/catalog"
	"github.com/ndiaye-labs/gatepass/internal/clock"
	"github.com/ndiaye-labs/gatepass/internal/delivery/kafka/producer"
	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/internal/idgen"
	"github.com/ndiaye-labs/gatepass/internal/ledger"
	"github.com/ndiaye-labs/gatepass/internal/qrcode"
	repo "github.com/ndiaye-labs/gatepass/internal/repository/redis"
	"github.com/ndiaye-labs/gatepass/internal/service"
	"github.com/ndiaye-labs/gatepass/internal/ticket"
	"github.com/ndiaye-labs/gatepass/internal/validation"
	"github.com/ndiaye-labs/gatepass/pkg/logger"
)

const testSecret = "handler-test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	event := domain.EventInfo{Artist: "Didi B", Location: "Moscou", Date: "2025-12-15"}
	l := logger.InitializeTestZapLogger()
	clk := clock.NewSystem()
	cat := catalog.NewDefault()

	gate := service.NewGateService(
		ticket.NewFactory(idgen.New(), cat, qrcode.NewEncoder(event), clk),
		validation.NewEngine(clk, l),
		ledger.New(),
		cat,
		repo.NewNoopRepository(),
		producer.NewNoopProducer(),
		l,
	)

	h := NewHTTPHandler(gate, l)
	auth := NewAuthMiddleware(config.JWTConfig{Secret: testSecret}, l)

	srv := httptest.NewServer(h.Routes(auth))
	t.Cleanup(srv.Close)
	return srv
}

func mintToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func purchaseBody(attendees ...map[string]any) map[string]any {
	return map[string]any{
		"buyer_contact": "buyer@example.com",
		"attendees":     attendees,
	}
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestPurchaseCreated(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", "", purchaseBody(
		map[string]any{"name": "Awa", "contact": "awa@example.com", "category_key": "vip"},
		map[string]any{"name": "Ben", "contact": "ben@example.com", "category_key": "standard"},
	))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "22500.00 RUB", body["total"])

	tickets, ok := body["tickets"].([]any)
	require.True(t, ok)
	assert.Len(t, tickets, 2)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPurchaseRejectsInvalidBody(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/orders", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPurchaseRejectsMissingAttendees(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", "", map[string]any{
		"buyer_contact": "buyer@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["error"])
}

func TestPurchaseRejectsUnknownCategory(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", "", purchaseBody(
		map[string]any{"name": "Awa", "contact": "awa@example.com", "category_key": "balcony"},
	))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown ticket category", body["error"])
}

func TestScanRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/scan", "", map[string]any{"scan": "TKT-1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing or invalid token", body["error"])
}

func TestScanRejectsWrongRole(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/scan", mintToken(t, RoleVendor),
		map[string]any{"scan": "TKT-1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Insufficient role", body["error"])
}

func TestScanRejectsBadSignature(t *testing.T) {
	srv := newTestServer(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": RoleAdmin})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/scan", signed, map[string]any{"scan": "TKT-1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestScanOutcomes(t *testing.T) {
	srv := newTestServer(t)
	controller := mintToken(t, RoleController)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", "", purchaseBody(
		map[string]any{"name": "Awa", "contact": "awa@example.com", "category_key": "vip"},
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tickets := body["tickets"].([]any)
	ticketID := tickets[0].(map[string]any)["id"].(string)

	// First scan admits.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/scan", controller,
		map[string]any{"scan": ticketID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(validation.OutcomeAccepted), body["outcome"])
	assert.Equal(t, "Ticket valid, entry authorized", body["message"])

	// Re-scan is flagged with the original entry time.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/scan", controller,
		map[string]any{"scan": ticketID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, string(validation.OutcomeAlreadyUsed), body["outcome"])
	assert.Contains(t, body["message"], "Ticket already used at ")

	// Unknown id.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/scan", controller,
		map[string]any{"scan": "TKT-0-XXXXX0"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Ticket not found", body["message"])
}

func TestStatsAndOrdersForVendor(t *testing.T) {
	srv := newTestServer(t)
	vendor := mintToken(t, RoleVendor)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/orders", "", purchaseBody(
		map[string]any{"name": "Awa", "contact": "awa@example.com", "category_key": "earlybird"},
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["order"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats", vendor, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total_tickets"])
	assert.Equal(t, float64(5000), body["revenue"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders", vendor, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	orders := body["orders"].([]any)
	assert.Len(t, orders, 1)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders/"+orderID, vendor, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orderID, body["order"].(map[string]any)["id"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/orders/ORD-404", vendor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
