// Package payment talks to the external payment-preference provider. Given a
// priced order it returns an opaque preference reference the buyer is
// redirected with; the provider owns the hosted checkout from there on.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cinegood/purchase-api/internal/domain"
)

type PreferenceProvider struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewPreferenceProvider(baseURL, token string, timeout time.Duration) *PreferenceProvider {
	return &PreferenceProvider{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type preferenceResponse struct {
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (p *PreferenceProvider) CreatePreference(ctx context.Context, req domain.PreferenceRequest) (*domain.Preference, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("payment: marshal preference request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/mercadopago/create-preference",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("payment: build preference request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment: create preference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		// The backend rejected the order because a selected seat was taken
		// between snapshot and submission.
		return nil, domain.ErrSeatConflict
	}

	if resp.StatusCode >= 400 {
		var pr preferenceResponse
		if err := json.NewDecoder(resp.Body).Decode(&pr); err == nil && pr.Message != "" {
			return nil, fmt.Errorf("payment: create preference: %s", pr.Message)
		}

		return nil, fmt.Errorf("payment: create preference: unexpected status %d", resp.StatusCode)
	}

	var pr preferenceResponse

	err = json.NewDecoder(resp.Body).Decode(&pr)
	if err != nil {
		return nil, fmt.Errorf("payment: decode preference response: %w", err)
	}

	if pr.Data == "" {
		return nil, fmt.Errorf("payment: provider returned an empty preference id")
	}

	return &domain.Preference{ID: pr.Data}, nil
}
