package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const preferenceCurrency = "ARS"

// PreferenceItem is one priced line of a payment-preference request. The
// provider has no native coupon concept, so any discount is already baked
// into the unit price.
type PreferenceItem struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CurrencyID  string          `json:"currency_id"`
}

// PreferenceRequest is the payload handed to the external payment-preference
// service. SeatAvailabilityIDs carries the exact identities selected at
// submission time so the backend can atomically validate and flip them.
type PreferenceRequest struct {
	Items               []PreferenceItem `json:"items"`
	BuyerID             string           `json:"userId"`
	ShowtimeID          string           `json:"funcionId"`
	SeatAvailabilityIDs []string         `json:"asientoIds"`
	CouponID            *string          `json:"cuponId,omitempty"`
}

// Preference is the opaque checkout reference issued by the provider.
type Preference struct {
	ID        string
	InitPoint string
}

type PreferenceProvider interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
}

// BuildPreferenceRequest shapes the provider payload from a priced selection:
// a single line item whose quantity is the seat count and whose unit price is
// the discounted total divided by the seat count. It refuses to build when
// nothing is selected or when the buyer or showtime identity is missing, so
// callers never submit an incomplete order.
func BuildPreferenceRequest(buyerID string, showtime Showtime, seats []SeatAvailability, quote Quote) (*PreferenceRequest, error) {
	if len(seats) == 0 {
		return nil, ErrEmptySelection
	}
	if buyerID == "" {
		return nil, ErrMissingBuyer
	}
	if showtime.ID == "" {
		return nil, ErrMissingShowtime
	}

	labels := make([]string, len(seats))
	seatIDs := make([]string, len(seats))

	for i, seat := range seats {
		labels[i] = seat.Seat.Label()
		seatIDs[i] = seat.ID
	}

	item := PreferenceItem{
		ID:          fmt.Sprintf("entrada-%s", showtime.ID),
		Title:       fmt.Sprintf("Entrada %s - %s", showtime.Movie.Name, showtime.DisplayTime()),
		Description: fmt.Sprintf("Asientos: %s", strings.Join(labels, ", ")),
		Quantity:    len(seats),
		UnitPrice:   quote.UnitPrice,
		CurrencyID:  preferenceCurrency,
	}

	req := &PreferenceRequest{
		Items:               []PreferenceItem{item},
		BuyerID:             buyerID,
		ShowtimeID:          showtime.ID,
		SeatAvailabilityIDs: seatIDs,
	}

	if quote.Coupon != nil {
		couponID := quote.Coupon.ID
		req.CouponID = &couponID
	}

	return req, nil
}
