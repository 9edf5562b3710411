package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"sync"
	"time"

	"github.com/VictorChidex1/eventflow/internal/domain"
)

// Mock stands in for the hosted gateway when no real key is configured.
// Its authorization URL points straight back at the app's own
// verification route, which substitutes for the round trip through a
// real payment page.
type Mock struct {
	mu          sync.RWMutex
	initialized map[string]domain.PaymentRequest

	appBaseURL string
	currency   string
	delay      time.Duration
}

func NewMock(appBaseURL, currency string, delay time.Duration) *Mock {
	return &Mock{
		initialized: make(map[string]domain.PaymentRequest),
		appBaseURL:  appBaseURL,
		currency:    currency,
		delay:       delay,
	}
}

func (m *Mock) Initialize(ctx context.Context, req domain.PaymentRequest) (*domain.AuthorizationResult, error) {
	if req.Email == "" {
		return nil, ErrMissingEmail
	}
	if req.Amount <= 0 {
		return nil, ErrMissingAmount
	}

	if err := m.sleep(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.initialized[req.Reference] = req
	m.mu.Unlock()

	return &domain.AuthorizationResult{
		Success:          true,
		AuthorizationURL: m.appBaseURL + "/payment/verify?reference=" + url.QueryEscape(req.Reference),
		AccessCode:       fmt.Sprintf("mock_access_%d", rand.IntN(1_000_000)),
		Reference:        req.Reference,
	}, nil
}

func (m *Mock) Verify(ctx context.Context, reference string) (*domain.VerificationResult, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	req, seen := m.initialized[reference]
	m.mu.RUnlock()

	result := &domain.VerificationResult{
		ID:        rand.Int64N(1_000_000_000),
		Status:    domain.StatusSuccess,
		Amount:    500000, // sample amount in minor units
		Currency:  m.currency,
		Reference: reference,
		PaidAt:    time.Now().UTC().Format(time.RFC3339),
		Metadata: domain.VerificationMetadata{
			EventID:      "1",
			EventTitle:   "Mock Event",
			TicketID:     "general",
			Quantity:     1,
			CustomerName: "Mock Customer",
		},
	}

	// When we saw the initialize call, echo the real purchase context.
	if seen {
		result.Amount = req.Amount * 100
		result.Metadata = domain.VerificationMetadata{
			EventID:      req.EventID,
			EventTitle:   req.EventTitle,
			TicketID:     req.TicketID,
			Quantity:     req.Quantity,
			CustomerName: req.CustomerName,
		}
	}

	return result, nil
}

func (m *Mock) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
		return nil
	}
}
