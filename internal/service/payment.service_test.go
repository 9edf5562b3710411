package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VictorChidex1/eventflow/internal/config"
	"github.com/VictorChidex1/eventflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyGateway struct {
	initErr   error
	verifyErr error
}

func (f *flakyGateway) Initialize(ctx context.Context, req domain.PaymentRequest) (*domain.AuthorizationResult, error) {
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &domain.AuthorizationResult{Success: true, Reference: req.Reference}, nil
}

func (f *flakyGateway) Verify(ctx context.Context, reference string) (*domain.VerificationResult, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &domain.VerificationResult{Status: domain.StatusSuccess, Reference: reference}, nil
}

func TestServiceSelectsMockWithoutKey(t *testing.T) {
	svc := NewPaymentService(config.Config{Mode: config.ModeMock, CurrencyCode: "NGN"})
	assert.Equal(t, config.ModeMock, svc.Mode())

	res, err := svc.InitializePayment(context.Background(), domain.PaymentRequest{
		Email: "a@b.c", Amount: 100, Reference: "r1",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestServiceSelectsRealWithKey(t *testing.T) {
	cfg := config.Config{
		Mode:              config.DeriveGatewayMode("pk_live_abc"),
		PaystackBaseURL:   "https://api.paystack.co",
		PaystackSecretKey: "sk_live_abc",
		CurrencyCode:      "NGN",
	}
	svc := NewPaymentService(cfg)
	assert.Equal(t, config.ModeReal, svc.Mode())
}

func TestServicePropagatesErrorsUnchanged(t *testing.T) {
	boom := errors.New("boom")
	svc := NewPaymentServiceWithGateway(&flakyGateway{initErr: boom, verifyErr: boom}, config.ModeMock)

	_, err := svc.InitializePayment(context.Background(), domain.PaymentRequest{})
	assert.ErrorIs(t, err, boom)

	_, err = svc.VerifyPayment(context.Background(), "r")
	assert.ErrorIs(t, err, boom)
}
