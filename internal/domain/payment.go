package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentRequest is built once per purchase attempt and handed to the
// gateway. Amount is in major currency units; adapters convert to the
// minor unit the gateway expects.
type PaymentRequest struct {
	Email        string `json:"email"`
	Amount       int64  `json:"amount"`
	Reference    string `json:"reference"`
	EventID      string `json:"eventId"`
	TicketID     string `json:"ticketId"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customerName"`
	EventTitle   string `json:"eventTitle"`
}

// AuthorizationResult comes back from Initialize and is consumed
// immediately for the redirect. Never persisted.
type AuthorizationResult struct {
	Success          bool   `json:"success"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

const StatusSuccess = "success"

// VerificationMetadata echoes the purchase context through the gateway.
type VerificationMetadata struct {
	EventID      string `json:"eventId"`
	EventTitle   string `json:"eventTitle"`
	TicketID     string `json:"ticketId"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customerName"`
}

// VerificationResult is the gateway's answer to a reference lookup.
// Amount is in minor units.
type VerificationResult struct {
	ID        int64                `json:"id"`
	Status    string               `json:"status"`
	Amount    int64                `json:"amount"`
	Currency  string               `json:"currency"`
	Reference string               `json:"reference"`
	PaidAt    string               `json:"paid_at"`
	Metadata  VerificationMetadata `json:"metadata"`
}

// TrackedPayment is the durable record of a confirmed purchase, the only
// persistent entity in the subsystem. Reference is the unique key.
type TrackedPayment struct {
	ID         string    `json:"id"`
	Reference  string    `json:"reference"`
	EventID    string    `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	Amount     int64     `json:"amount"`
	Tickets    int       `json:"tickets"`
	Email      string    `json:"email,omitempty"`
	TrackedAt  time.Time `json:"trackedAt"`
}

// NewReference builds a globally unique purchase reference without any
// server coordination: prefix + event id + timestamp + random suffix.
func NewReference(eventID string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("EVT_%s_%d_%s", eventID, time.Now().UnixMilli(), suffix)
}

// NewTrackedPaymentID mints a synthetic ledger id.
func NewTrackedPaymentID() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), suffix)
}
