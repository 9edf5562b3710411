package tracker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/VictorChidex1/eventflow/internal/storage"
)

// Tracker owns the durable payment ledger. Every operation decodes the
// whole stored collection, works on it, and (for writes) encodes it back,
// the same whole-document contract the storage layer exposes. A corrupt
// or missing collection reads as empty; nothing signals data loss.
type Tracker struct {
	store storage.Store
}

func New(store storage.Store) *Tracker {
	return &Tracker{store: store}
}

// SavePayment records a confirmed purchase. Saving the same reference
// twice returns the existing record untouched, which shields the ledger
// from duplicate verification callbacks (browser back-navigation,
// repeated gateway redirects).
func (t *Tracker) SavePayment(ctx context.Context, p domain.TrackedPayment) (domain.TrackedPayment, error) {
	payments := t.load(ctx)

	for _, existing := range payments {
		if existing.Reference == p.Reference {
			return existing, nil
		}
	}

	p.ID = domain.NewTrackedPaymentID()
	p.TrackedAt = time.Now()

	// Newest first.
	payments = append([]domain.TrackedPayment{p}, payments...)

	if err := t.flush(ctx, payments); err != nil {
		return domain.TrackedPayment{}, err
	}
	return p, nil
}

func (t *Tracker) Payments(ctx context.Context) []domain.TrackedPayment {
	return t.load(ctx)
}

func (t *Tracker) PaymentByReference(ctx context.Context, reference string) (domain.TrackedPayment, bool) {
	for _, p := range t.load(ctx) {
		if p.Reference == reference {
			return p, true
		}
	}
	return domain.TrackedPayment{}, false
}

func (t *Tracker) PaymentsByEvent(ctx context.Context, eventID string) []domain.TrackedPayment {
	var matches []domain.TrackedPayment
	for _, p := range t.load(ctx) {
		if p.EventID == eventID {
			matches = append(matches, p)
		}
	}
	return matches
}

// Clear drops the whole ledger. No confirmation, no partial clear.
func (t *Tracker) Clear(ctx context.Context) error {
	return t.store.Remove(ctx, storage.PaymentsKey)
}

func (t *Tracker) TotalRevenue(ctx context.Context) int64 {
	var total int64
	for _, p := range t.load(ctx) {
		total += p.Amount
	}
	return total
}

func (t *Tracker) TicketsSold(ctx context.Context) int {
	var total int
	for _, p := range t.load(ctx) {
		total += p.Tickets
	}
	return total
}

func (t *Tracker) load(ctx context.Context) []domain.TrackedPayment {
	raw, ok, err := t.store.Get(ctx, storage.PaymentsKey)
	if err != nil || !ok {
		return nil
	}
	var payments []domain.TrackedPayment
	if err := json.Unmarshal([]byte(raw), &payments); err != nil {
		return nil
	}
	return payments
}

func (t *Tracker) flush(ctx context.Context, payments []domain.TrackedPayment) error {
	raw, err := json.Marshal(payments)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, storage.PaymentsKey, string(raw))
}
