package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Quote is the priced view of a selection. All amounts are exact decimals;
// Total and UnitPrice are carried unrounded so that quantity times unit price
// reproduces the total without cumulative drift. Rounding to two decimal
// places happens only when an amount is formatted for display.
type Quote struct {
	SeatCount int
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	UnitPrice decimal.Decimal
	Coupon    *Coupon
}

// NewQuote derives the price of seatCount tickets at pricePerTicket, applying
// the coupon's percentage discount when one is given. The engine does not
// re-check coupon validity; expired coupons are filtered out when the coupon
// list is loaded. The total is clamped to zero so an over-100 discount can
// never produce a negative price.
func NewQuote(pricePerTicket decimal.Decimal, seatCount int, coupon *Coupon) Quote {
	subtotal := pricePerTicket.Mul(decimal.NewFromInt(int64(seatCount)))

	discount := decimal.Zero
	if coupon != nil {
		discount = subtotal.Mul(decimal.NewFromInt(int64(coupon.Discount))).Div(oneHundred)
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	unitPrice := decimal.Zero
	if seatCount > 0 {
		unitPrice = total.Div(decimal.NewFromInt(int64(seatCount)))
	}

	return Quote{
		SeatCount: seatCount,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     total,
		UnitPrice: unitPrice,
		Coupon:    coupon,
	}
}
