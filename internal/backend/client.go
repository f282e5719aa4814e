// Package backend is the HTTP client for the catalog backend, the external
// owner of movies, rooms, showtimes, coupons and per-showtime seat state.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cinegood/purchase-api/internal/domain"
)

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetShowtime(ctx context.Context, id string) (*domain.Showtime, error) {
	var showtime domain.Showtime

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/funciones/%s", id), nil, &showtime)
	if err != nil {
		return nil, err
	}

	return &showtime, nil
}

func (c *Client) GetSeatAvailability(ctx context.Context, showtimeID string) ([]domain.SeatAvailability, error) {
	var availability []domain.SeatAvailability

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/asientofuncion/disponibilidad/%s", showtimeID), nil, &availability)
	if err != nil {
		return nil, err
	}

	return availability, nil
}

func (c *Client) GetUserCoupons(ctx context.Context, userID string) ([]domain.Coupon, error) {
	var coupons []domain.Coupon

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cupones/usuario/%s", userID), nil, &coupons)
	if err != nil {
		return nil, err
	}

	return coupons, nil
}

func (c *Client) Create(ctx context.Context, name string, seats []domain.Seat) (*domain.Room, error) {
	body := domain.Room{Name: name, Seats: seats}

	var room domain.Room

	err := c.do(ctx, http.MethodPost, "/salas", body, &room)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// Rename updates a room's name only. The seats field is omitted on purpose:
// seat geometry is immutable once a room exists.
func (c *Client) Rename(ctx context.Context, id, name string) (*domain.Room, error) {
	body := struct {
		Name string `json:"nombre"`
	}{Name: name}

	var room domain.Room

	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/salas/%s", id), body, &room)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrRecordNotFound
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrEditConflict
	case resp.StatusCode >= 400:
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Message != "" {
			return fmt.Errorf("backend: %s %s: %s", method, path, env.Message)
		}

		return fmt.Errorf("backend: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if dst == nil {
		return nil
	}

	var env envelope

	err = json.NewDecoder(resp.Body).Decode(&env)
	if err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}

	err = json.Unmarshal(env.Data, dst)
	if err != nil {
		return fmt.Errorf("backend: decode response data: %w", err)
	}

	return nil
}
