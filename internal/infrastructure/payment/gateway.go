package payment

import (
	"context"
	"errors"

	"github.com/VictorChidex1/eventflow/internal/domain"
)

var (
	ErrMissingEmail         = errors.New("payer email is required")
	ErrMissingAmount        = errors.New("payment amount is required")
	ErrInitializationFailed = errors.New("payment initialization failed")
	ErrVerificationFailed   = errors.New("payment verification failed")
)

// Gateway is the contract both variants satisfy. Initialize opens a
// transaction and hands back the hosted page to redirect the buyer to;
// Verify looks a finished transaction up by its reference. The rest of
// the system never knows which variant is active.
type Gateway interface {
	Initialize(ctx context.Context, req domain.PaymentRequest) (*domain.AuthorizationResult, error)
	Verify(ctx context.Context, reference string) (*domain.VerificationResult, error)
}
