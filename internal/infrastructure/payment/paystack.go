package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/VictorChidex1/eventflow/internal/domain"
)

// Channels the hosted page is allowed to offer.
var allowedChannels = []string{"card", "bank_transfer", "ussd"}

// Paystack talks to the live gateway API with bearer-token auth.
type Paystack struct {
	baseURL    string
	secretKey  string
	currency   string
	appBaseURL string
	client     *http.Client
}

func NewPaystack(baseURL, secretKey, currency, appBaseURL string) *Paystack {
	return &Paystack{
		baseURL:    baseURL,
		secretKey:  secretKey,
		currency:   currency,
		appBaseURL: appBaseURL,
		client:     http.DefaultClient,
	}
}

type initializeBody struct {
	Email       string                      `json:"email"`
	Amount      int64                       `json:"amount"`
	Currency    string                      `json:"currency"`
	Reference   string                      `json:"reference"`
	CallbackURL string                      `json:"callback_url"`
	Metadata    domain.VerificationMetadata `json:"metadata"`
	Channels    []string                    `json:"channels"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool                      `json:"status"`
	Message string                    `json:"message"`
	Data    domain.VerificationResult `json:"data"`
}

func (p *Paystack) Initialize(ctx context.Context, req domain.PaymentRequest) (*domain.AuthorizationResult, error) {
	if req.Email == "" {
		return nil, ErrMissingEmail
	}
	if req.Amount <= 0 {
		return nil, ErrMissingAmount
	}

	body := initializeBody{
		Email:       req.Email,
		Amount:      req.Amount * 100, // gateway wants minor units
		Currency:    p.currency,
		Reference:   req.Reference,
		CallbackURL: p.appBaseURL + "/payment/verify",
		Metadata: domain.VerificationMetadata{
			EventID:      req.EventID,
			EventTitle:   req.EventTitle,
			TicketID:     req.TicketID,
			Quantity:     req.Quantity,
			CustomerName: req.CustomerName,
		},
		Channels: allowedChannels,
	}

	var out initializeResponse
	if err := p.post(ctx, "/transaction/initialize", body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitializationFailed, err)
	}
	if !out.Status || out.Data.AuthorizationURL == "" {
		if out.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInitializationFailed, out.Message)
		}
		return nil, ErrInitializationFailed
	}

	return &domain.AuthorizationResult{
		Success:          true,
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

func (p *Paystack) Verify(ctx context.Context, reference string) (*domain.VerificationResult, error) {
	var out verifyResponse
	if err := p.get(ctx, "/transaction/verify/"+reference, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if !out.Status {
		if out.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, out.Message)
		}
		return nil, ErrVerificationFailed
	}

	result := out.Data
	return &result, nil
}

func (p *Paystack) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return p.do(req, out)
}

func (p *Paystack) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}
	return p.do(req, out)
}

func (p *Paystack) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep the gateway's own message when it sent one.
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("gateway returned %d", resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}
