package domain

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Coupon is a percentage discount code bound to one user. A coupon is usable
// only while its expiration date lies in the future.
type Coupon struct {
	ID        string    `json:"id"`
	Code      string    `json:"codigo"`
	Discount  int       `json:"descuento"`
	ExpiresAt time.Time `json:"fechaExpiracion"`
}

func (c Coupon) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// DisplayLabel is the option text shown in the coupon picker,
// e.g. "DTO 20% - PROMO20 (Exp: 02/01/2006)".
func (c Coupon) DisplayLabel() string {
	return fmt.Sprintf("DTO %d%% - %s (Exp: %s)", c.Discount, c.Code, c.ExpiresAt.In(displayLocation).Format("02/01/2006"))
}

// ValidCoupons filters out expired coupons and orders the rest by soonest
// expiration first, so the most urgent coupon is offered at the top.
func ValidCoupons(coupons []Coupon, now time.Time) []Coupon {
	valid := make([]Coupon, 0, len(coupons))

	for _, c := range coupons {
		if !c.Expired(now) {
			valid = append(valid, c)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].ExpiresAt.Before(valid[j].ExpiresAt)
	})

	return valid
}

type CouponRepository interface {
	GetUserCoupons(ctx context.Context, userID string) ([]Coupon, error)
}
