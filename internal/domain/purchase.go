package domain

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseState string

const (
	PurchaseLoading    PurchaseState = "loading"
	PurchaseReady      PurchaseState = "ready"
	PurchaseSubmitting PurchaseState = "submitting"
	PurchaseRedirected PurchaseState = "redirected"
	PurchaseFailed     PurchaseState = "failed"
)

// PurchaseSession is one buyer's purchase flow for one showtime. It owns the
// availability snapshot, the coupon offer, the seat selection and the buyer's
// form data; the snapshot is fetched once and treated as immutable until a
// submission conflict forces a refresh. The session is a plain value so it
// round-trips through JSON between requests.
type PurchaseSession struct {
	ID              string             `json:"id"`
	UserID          string             `json:"userId"`
	BuyerName       string             `json:"buyerName"`
	BuyerEmail      string             `json:"buyerEmail"`
	State           PurchaseState      `json:"state"`
	Showtime        Showtime           `json:"funcion"`
	Availability    []SeatAvailability `json:"asientos"`
	Coupons         []Coupon           `json:"cupones"`
	SelectedSeatIDs []string           `json:"seleccion"`
	CouponID        string             `json:"cuponId"`
	PreferenceID    string             `json:"preferenceId"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// NewPurchaseSession assembles a ready session from freshly loaded state.
// Coupons are expected to be pre-filtered to valid ones (see ValidCoupons).
func NewPurchaseSession(userID, buyerName, buyerEmail string, showtime Showtime, availability []SeatAvailability, coupons []Coupon) *PurchaseSession {
	return &PurchaseSession{
		ID:           uuid.New().String(),
		UserID:       userID,
		BuyerName:    buyerName,
		BuyerEmail:   buyerEmail,
		State:        PurchaseReady,
		Showtime:     showtime,
		Availability: availability,
		Coupons:      coupons,
		CreatedAt:    time.Now().UTC(),
	}
}

func (p *PurchaseSession) selection() *SeatSelection {
	sel := NewSeatSelection(p.Availability)
	sel.Restore(p.SelectedSeatIDs)

	return sel
}

// ToggleSeat flips one seat in or out of the selection. Occupied seats and
// unknown IDs are rejected; toggling an already selected seat deselects it.
func (p *PurchaseSession) ToggleSeat(availabilityID string) error {
	if p.State != PurchaseReady {
		return ErrSessionNotReady
	}

	sel := p.selection()

	err := sel.Toggle(availabilityID)
	if err != nil {
		return err
	}

	p.SelectedSeatIDs = sel.SelectedIDs()

	return nil
}

// SelectedSeats resolves the selection against the availability snapshot, in
// the order the buyer picked the seats.
func (p *PurchaseSession) SelectedSeats() []SeatAvailability {
	return p.selection().Selected()
}

// SelectCoupon applies one of the offered coupons, or clears the choice when
// id is empty. Coupons outside the offer are rejected.
func (p *PurchaseSession) SelectCoupon(id string) error {
	if p.State != PurchaseReady {
		return ErrSessionNotReady
	}

	if id == "" {
		p.CouponID = ""
		return nil
	}

	for _, c := range p.Coupons {
		if c.ID == id {
			p.CouponID = id
			return nil
		}
	}

	return ErrCouponNotOffered
}

func (p *PurchaseSession) SelectedCoupon() *Coupon {
	if p.CouponID == "" {
		return nil
	}

	for _, c := range p.Coupons {
		if c.ID == p.CouponID {
			coupon := c
			return &coupon
		}
	}

	return nil
}

func (p *PurchaseSession) SetBuyer(name, email string) {
	p.BuyerName = name
	p.BuyerEmail = email
}

// Quote prices the current selection with the chosen coupon applied.
func (p *PurchaseSession) Quote() Quote {
	return NewQuote(p.Showtime.Price, len(p.SelectedSeatIDs), p.SelectedCoupon())
}

// BeginSubmit validates the session and moves it to the submitting state.
// Validation failures surface before any backend call is made.
func (p *PurchaseSession) BeginSubmit() error {
	if p.State != PurchaseReady {
		return ErrSessionNotReady
	}
	if p.UserID == "" {
		return ErrMissingBuyer
	}
	if p.BuyerName == "" || p.BuyerEmail == "" {
		return ErrIncompleteBuyer
	}
	if len(p.SelectedSeatIDs) == 0 {
		return ErrEmptySelection
	}

	p.State = PurchaseSubmitting

	return nil
}

// BuildOrder shapes the payment-preference request for the current selection.
func (p *PurchaseSession) BuildOrder() (*PreferenceRequest, error) {
	return BuildPreferenceRequest(p.UserID, p.Showtime, p.SelectedSeats(), p.Quote())
}

// CompleteSubmit records the provider's preference reference. The session's
// responsibility ends here; control passes to the hosted checkout.
func (p *PurchaseSession) CompleteSubmit(preferenceID string) {
	p.PreferenceID = preferenceID
	p.State = PurchaseRedirected
}

// FailSubmit returns the session to ready after a failed submission. The
// selection, coupon choice and form data survive so the buyer can retry.
func (p *PurchaseSession) FailSubmit() {
	p.State = PurchaseReady
}

// MarkFailed is terminal: the session could not be recovered after a
// submission failure (e.g. the availability snapshot could not be reloaded).
func (p *PurchaseSession) MarkFailed() {
	p.State = PurchaseFailed
}

// RefreshAvailability replaces the snapshot after a submission conflict and
// drops selected seats that are no longer available. It returns the dropped
// seats so the buyer can be told exactly what was lost.
func (p *PurchaseSession) RefreshAvailability(snapshot []SeatAvailability) []SeatAvailability {
	p.Availability = snapshot

	sel := NewSeatSelection(snapshot)
	dropped := sel.Restore(p.SelectedSeatIDs)
	p.SelectedSeatIDs = sel.SelectedIDs()

	return dropped
}

// Summary snapshots the priced selection for the payment screen.
func (p *PurchaseSession) Summary() PurchaseSummary {
	return NewPurchaseSummary(p.Showtime, p.SelectedSeats(), p.Quote())
}
