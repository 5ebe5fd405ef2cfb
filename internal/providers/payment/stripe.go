// Package payment bridges payment-intent creation to the Stripe API.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"server/internal/domain"
)

const defaultTimeout = 15 * time.Second

// StripeOptions configures the bridge. HTTPClient and BaseURL are
// injectable for tests.
type StripeOptions struct {
	SecretKey  string
	BaseURL    string
	Currency   string
	HTTPClient *http.Client
}

// StripeBridge creates payment intents with a fixed currency and returns
// the processor-issued client secret verbatim.
type StripeBridge struct {
	secretKey string
	baseURL   string
	currency  string
	client    *http.Client
}

// NewStripeBridge builds the bridge. A missing secret key does not fail
// construction; intent creation then fails as an upstream error, the
// same way an unreachable processor would.
func NewStripeBridge(opts StripeOptions) *StripeBridge {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.stripe.com/v1"
	}
	currency := strings.ToLower(strings.TrimSpace(opts.Currency))
	if currency == "" {
		currency = "usd"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &StripeBridge{
		secretKey: strings.TrimSpace(opts.SecretKey),
		baseURL:   baseURL,
		currency:  currency,
		client:    client,
	}
}

// CreateIntent requests a payment intent for the amount in minor
// currency units and returns the client secret.
func (s *StripeBridge) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	if amountMinor <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if s.secretKey == "" {
		return "", fmt.Errorf("%w: payment processor not configured", domain.ErrUpstream)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", s.currency)
	form.Set("payment_method_types[]", "card")

	endpoint := s.baseURL + "/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: processor status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var out struct {
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	if out.ClientSecret == "" {
		return "", fmt.Errorf("%w: empty client secret", domain.ErrUpstream)
	}
	return out.ClientSecret, nil
}

// IntentCreator is the narrow surface handlers depend on.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountMinor int64) (string, error)
}

var _ IntentCreator = (*StripeBridge)(nil)
