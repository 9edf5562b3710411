package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/VictorChidex1/eventflow/internal/checkout"
	"github.com/VictorChidex1/eventflow/internal/config"
	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/VictorChidex1/eventflow/internal/service"
	"github.com/VictorChidex1/eventflow/internal/storage"
	"github.com/VictorChidex1/eventflow/internal/tracker"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *tracker.Tracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Mode:           config.ModeMock,
		AppBaseURL:     "http://localhost:8080",
		CurrencyCode:   "NGN",
		CurrencySymbol: "NGN ",
	}
	ledger := tracker.New(storage.NewMemory())
	svc := service.NewPaymentService(cfg)
	flow := checkout.NewFlow(svc, ledger, checkout.NewSessions())
	return New(cfg, flow, ledger), ledger
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutReturnsAuthorizationURL(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/checkout", gin.H{
		"email":      "buyer@example.com",
		"amount":     5000,
		"eventId":    "1",
		"quantity":   2,
		"eventTitle": "Test Event",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reference        string `json:"reference"`
		AuthorizationURL string `json:"authorization_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Reference)
	assert.Contains(t, resp.AuthorizationURL, "/payment/verify")
	assert.Contains(t, resp.AuthorizationURL, url.QueryEscape(resp.Reference))
}

func TestCheckoutRejectsMissingEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodPost, "/api/checkout", gin.H{
		"amount":  5000,
		"eventId": "1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyRouteFullRoundTrip(t *testing.T) {
	srv, ledger := newTestServer(t)
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/checkout", gin.H{
		"email":      "buyer@example.com",
		"amount":     5000,
		"eventId":    "1",
		"quantity":   2,
		"eventTitle": "Test Event",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var started struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	// Follow the mock's self-redirect back into the verification route.
	parsed, err := url.Parse(started.AuthorizationURL)
	require.NoError(t, err)
	w = doJSON(t, router, http.MethodGet, parsed.Path+"?"+parsed.RawQuery, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var outcome struct {
		State   domain.CheckoutState  `json:"state"`
		Payment domain.TrackedPayment `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, domain.CheckoutVerifiedSuccess, outcome.State)
	assert.Equal(t, started.Reference, outcome.Payment.Reference)

	payments := ledger.Payments(context.Background())
	require.Len(t, payments, 1)
	assert.Equal(t, started.Reference, payments[0].Reference)
}

func TestVerifyRouteWithoutReference(t *testing.T) {
	srv, ledger := newTestServer(t)

	w := doJSON(t, srv.Router(), http.MethodGet, "/payment/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var outcome struct {
		State   domain.CheckoutState `json:"state"`
		Message string               `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, domain.CheckoutVerifiedError, outcome.State)
	assert.Equal(t, checkout.MsgMissingReference, outcome.Message)
	assert.Empty(t, ledger.Payments(context.Background()))
}

func TestPaymentQueriesAndStats(t *testing.T) {
	srv, ledger := newTestServer(t)
	router := srv.Router()

	_, err := ledger.SavePayment(context.Background(), domain.TrackedPayment{
		Reference: "EVT_1_1_a", EventID: "1", EventTitle: "Test Event", Amount: 500000, Tickets: 2, Email: "a@b.c",
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EVT_1_1_a")

	w = doJSON(t, router, http.MethodGet, "/api/payments/EVT_1_1_a", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/payments/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/events/1/payments", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EVT_1_1_a")

	w = doJSON(t, router, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalRevenue":500000`)
	assert.Contains(t, w.Body.String(), `"ticketsSold":2`)

	w = doJSON(t, router, http.MethodDelete, "/api/payments", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, ledger.Payments(context.Background()))
}

func TestReceiptDownload(t *testing.T) {
	srv, ledger := newTestServer(t)
	router := srv.Router()

	_, err := ledger.SavePayment(context.Background(), domain.TrackedPayment{
		Reference: "EVT_1_1_a", EventID: "1", EventTitle: "Test Event", Amount: 500000, Tickets: 2,
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/payments/EVT_1_1_a/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = doJSON(t, router, http.MethodGet, "/api/payments/unknown/receipt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyWithoutSessionStillYieldsReceipt(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	// Land on the verification route with no prior checkout, as after a
	// server restart mid-redirect.
	w := doJSON(t, router, http.MethodGet, "/payment/verify?reference=EVT_orphan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.CheckoutVerifiedSuccess))

	w = doJSON(t, router, http.MethodGet, "/api/payments/EVT_orphan/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Router(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"up"`)
	assert.Contains(t, w.Body.String(), `"gateway":"mock"`)
}
