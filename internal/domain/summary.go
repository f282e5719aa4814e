package domain

import "time"

type CouponSummary struct {
	ID       string `json:"id"`
	Discount int    `json:"descuento"`
}

// PurchaseSummary is the human-readable receipt handed to the payment screen
// through ephemeral session storage. Amounts are display values: floats
// rendered to two decimal places, derived from the exact decimal quote.
type PurchaseSummary struct {
	Movie          string         `json:"pelicula"`
	Showtime       time.Time      `json:"horario"`
	PricePerTicket float64        `json:"precioPorEntrada"`
	TicketCount    int            `json:"cantidadEntradas"`
	Seats          []string       `json:"asientosSeleccionados"`
	Subtotal       float64        `json:"precioTotalSinDescuento"`
	Coupon         *CouponSummary `json:"cuponSeleccionado"`
	Total          float64        `json:"precioTotalConDescuento"`
}

// NewPurchaseSummary snapshots a priced selection right before the buyer is
// redirected to the provider's checkout.
func NewPurchaseSummary(showtime Showtime, seats []SeatAvailability, quote Quote) PurchaseSummary {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Seat.Label()
	}

	summary := PurchaseSummary{
		Movie:          showtime.Movie.Name,
		Showtime:       showtime.StartTime,
		PricePerTicket: showtime.Price.InexactFloat64(),
		TicketCount:    quote.SeatCount,
		Seats:          labels,
		Subtotal:       quote.Subtotal.InexactFloat64(),
		Total:          quote.Total.InexactFloat64(),
	}

	if quote.Coupon != nil {
		summary.Coupon = &CouponSummary{
			ID:       quote.Coupon.ID,
			Discount: quote.Coupon.Discount,
		}
	}

	return summary
}
