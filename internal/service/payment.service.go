package service

import (
	"context"
	"log"

	"github.com/VictorChidex1/eventflow/internal/config"
	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/VictorChidex1/eventflow/internal/infrastructure/payment"
)

type PaymentService interface {
	InitializePayment(ctx context.Context, req domain.PaymentRequest) (*domain.AuthorizationResult, error)
	VerifyPayment(ctx context.Context, reference string) (*domain.VerificationResult, error)
	Mode() config.GatewayMode
}

// paymentService picks the gateway variant once, at construction, from the
// mode the config derived. The choice holds for the process lifetime.
// Calls are pure delegation: no retry, no timeout override, errors
// propagate unchanged.
type paymentService struct {
	gateway payment.Gateway
	mode    config.GatewayMode
}

func NewPaymentService(cfg config.Config) PaymentService {
	var gw payment.Gateway
	switch cfg.Mode {
	case config.ModeReal:
		gw = payment.NewPaystack(cfg.PaystackBaseURL, cfg.PaystackSecretKey, cfg.CurrencyCode, cfg.AppBaseURL)
		log.Println("payment: using real gateway")
	default:
		gw = payment.NewMock(cfg.AppBaseURL, cfg.CurrencyCode, cfg.MockDelay)
		log.Println("payment: WARNING no usable public key configured, using mock gateway")
	}
	return &paymentService{gateway: gw, mode: cfg.Mode}
}

// NewPaymentServiceWithGateway injects an explicit gateway, for tests.
func NewPaymentServiceWithGateway(gw payment.Gateway, mode config.GatewayMode) PaymentService {
	return &paymentService{gateway: gw, mode: mode}
}

func (s *paymentService) InitializePayment(ctx context.Context, req domain.PaymentRequest) (*domain.AuthorizationResult, error) {
	return s.gateway.Initialize(ctx, req)
}

func (s *paymentService) VerifyPayment(ctx context.Context, reference string) (*domain.VerificationResult, error) {
	return s.gateway.Verify(ctx, reference)
}

func (s *paymentService) Mode() config.GatewayMode {
	return s.mode
}
