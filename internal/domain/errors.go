package domain

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrEditConflict     = errors.New("edit conflict")
	ErrTooManyRows      = errors.New("a room cannot have more than 26 rows")
	ErrSeatNotFound     = errors.New("seat not found in the availability snapshot")
	ErrSeatUnavailable  = errors.New("seat is not available")
	ErrSeatConflict     = errors.New("some of the selected seats are no longer available")
	ErrEmptySelection   = errors.New("at least one seat must be selected")
	ErrMissingBuyer     = errors.New("buyer identity is required")
	ErrMissingShowtime  = errors.New("showtime identity is required")
	ErrCouponNotOffered = errors.New("coupon is not among the coupons offered to this user")
	ErrSessionNotFound  = errors.New("purchase session not found or has expired")
	ErrSessionNotReady  = errors.New("purchase session cannot accept changes in its current state")
	ErrIncompleteBuyer  = errors.New("buyer name and email are required")
)
