package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchaseSummary(t *testing.T) {
	showtime := testShowtime()
	seats := []SeatAvailability{
		av("af-b4", "B", 4, SeatAvailable),
		av("af-b5", "B", 5, SeatAvailable),
	}
	coupon := &Coupon{ID: "c1", Code: "PROMO20", Discount: 20}
	quote := NewQuote(showtime.Price, len(seats), coupon)

	summary := NewPurchaseSummary(showtime, seats, quote)

	want := PurchaseSummary{
		Movie:          "Dune",
		Showtime:       showtime.StartTime,
		PricePerTicket: 1000,
		TicketCount:    2,
		Seats:          []string{"B4", "B5"},
		Subtotal:       2000,
		Coupon:         &CouponSummary{ID: "c1", Discount: 20},
		Total:          1600,
	}

	if diff := cmp.Diff(want, summary, cmpopts.EquateApprox(0, 0.005)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPurchaseSummary_NoCoupon(t *testing.T) {
	showtime := testShowtime()
	seats := []SeatAvailability{av("af-a1", "A", 1, SeatAvailable)}

	summary := NewPurchaseSummary(showtime, seats, NewQuote(showtime.Price, 1, nil))

	assert.Nil(t, summary.Coupon)
	assert.InDelta(t, 1000, summary.Total, 0.005)
}

func TestPurchaseSummary_JSONRoundTrip(t *testing.T) {
	showtime := testShowtime()
	seats := []SeatAvailability{av("af-b4", "B", 4, SeatAvailable)}
	coupon := &Coupon{ID: "c1", Code: "PROMO20", Discount: 20}

	summary := NewPurchaseSummary(showtime, seats, NewQuote(showtime.Price, 1, coupon))

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded PurchaseSummary
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(summary, decoded, cmpopts.EquateApprox(0, 0.005)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
