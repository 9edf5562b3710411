package checkout

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/VictorChidex1/eventflow/internal/service"
	"github.com/VictorChidex1/eventflow/internal/tracker"
)

// User-facing messages for the three distinct verification failures.
const (
	MsgMissingReference = "No payment reference found."
	MsgEmailRequired    = "Please enter your email address."
	MsgVerifyNetwork    = "We could not verify your payment right now. Please try again in a moment."
)

func msgNotSuccessful(reference string) string {
	return fmt.Sprintf("Payment was not successful. Please contact support with reference %s.", reference)
}

// Outcome is what the verification route renders.
type Outcome struct {
	State     domain.CheckoutState
	Reference string
	Message   string
	Payment   domain.TrackedPayment
}

// Flow drives a purchase attempt through its states. Every failure is
// terminal; the buyer restarts by hand. Nothing is retried.
type Flow struct {
	payments service.PaymentService
	ledger   *tracker.Tracker
	sessions *Sessions
}

func NewFlow(payments service.PaymentService, ledger *tracker.Tracker, sessions *Sessions) *Flow {
	return &Flow{payments: payments, ledger: ledger, sessions: sessions}
}

// Open starts a session in the modal-open state for a chosen
// event/ticket/quantity and mints the purchase reference.
func (f *Flow) Open(req domain.PaymentRequest) *Session {
	if req.Reference == "" {
		req.Reference = domain.NewReference(req.EventID)
	}
	s := &Session{
		Reference: req.Reference,
		State:     domain.CheckoutModalOpen,
		Request:   req,
	}
	f.sessions.Put(s)
	return s
}

// Submit moves modal-open → processing → redirected. On an initialize
// failure the session falls back to modal-open with the error recorded
// and no redirect URL set, so the caller knows not to navigate.
func (f *Flow) Submit(ctx context.Context, s *Session) error {
	if s.Request.Email == "" {
		f.sessions.Update(s, func(s *Session) {
			s.ErrorMessage = MsgEmailRequired
		})
		return fmt.Errorf("checkout %s: %s", s.Reference, MsgEmailRequired)
	}

	// Clear any previous attempt's error before trying again.
	f.sessions.Update(s, func(s *Session) {
		s.ErrorMessage = ""
		s.State = domain.CheckoutProcessing
	})

	auth, err := f.payments.InitializePayment(ctx, s.Request)
	if err != nil || auth.AuthorizationURL == "" {
		f.sessions.Update(s, func(s *Session) {
			s.State = domain.CheckoutModalOpen
			if err != nil {
				s.ErrorMessage = err.Error()
			} else {
				s.ErrorMessage = "Payment could not be started. Please try again."
			}
		})
		if err == nil {
			err = fmt.Errorf("checkout %s: gateway returned no authorization url", s.Reference)
		}
		return err
	}

	f.sessions.Update(s, func(s *Session) {
		s.State = domain.CheckoutRedirected
		s.AuthorizationURL = auth.AuthorizationURL
	})
	return nil
}

// HandleReturn runs when the gateway lands the buyer back on the
// verification route. Either `reference` or `trxref` is accepted, with
// `reference` taking precedence. The route also works without a live
// session, since the redirect can outlive the process that started it.
func (f *Flow) HandleReturn(ctx context.Context, query url.Values) Outcome {
	reference := query.Get("reference")
	if reference == "" {
		reference = query.Get("trxref")
	}
	if reference == "" {
		return Outcome{State: domain.CheckoutVerifiedError, Message: MsgMissingReference}
	}

	s, ok := f.sessions.Get(reference)
	if !ok {
		s = &Session{Reference: reference}
	}
	f.sessions.Update(s, func(s *Session) {
		s.State = domain.CheckoutVerifying
	})

	result, err := f.payments.VerifyPayment(ctx, reference)
	if err != nil {
		log.Printf("checkout: verify %s failed: %v", reference, err)
		return f.fail(s, MsgVerifyNetwork)
	}
	if result.Status != domain.StatusSuccess {
		return f.fail(s, msgNotSuccessful(reference))
	}

	// When the redirect outlived the session that started it, recover
	// the event title from the metadata the gateway echoed back.
	title := s.Request.EventTitle
	if title == "" {
		title = result.Metadata.EventTitle
	}

	saved, err := f.ledger.SavePayment(ctx, domain.TrackedPayment{
		Reference:  reference,
		EventID:    result.Metadata.EventID,
		EventTitle: title,
		Amount:     result.Amount,
		Tickets:    result.Metadata.Quantity,
		Email:      s.Request.Email,
	})
	if err != nil {
		log.Printf("checkout: recording %s failed: %v", reference, err)
		return f.fail(s, MsgVerifyNetwork)
	}

	f.sessions.Update(s, func(s *Session) {
		s.State = domain.CheckoutVerifiedSuccess
		s.Payment = saved
	})
	return Outcome{
		State:     domain.CheckoutVerifiedSuccess,
		Reference: reference,
		Payment:   saved,
	}
}

func (f *Flow) fail(s *Session, message string) Outcome {
	f.sessions.Update(s, func(s *Session) {
		s.State = domain.CheckoutVerifiedError
		s.ErrorMessage = message
	})
	return Outcome{State: domain.CheckoutVerifiedError, Reference: s.Reference, Message: message}
}
