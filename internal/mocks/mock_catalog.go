package mocks

import (
	"context"

	"github.com/cinegood/purchase-api/internal/domain"
)

type MockShowtimeRepo struct {
	GetShowtimeFunc         func(ctx context.Context, id string) (*domain.Showtime, error)
	GetSeatAvailabilityFunc func(ctx context.Context, showtimeID string) ([]domain.SeatAvailability, error)
}

func (m *MockShowtimeRepo) GetShowtime(ctx context.Context, id string) (*domain.Showtime, error) {
	return m.GetShowtimeFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetSeatAvailability(ctx context.Context, showtimeID string) ([]domain.SeatAvailability, error) {
	return m.GetSeatAvailabilityFunc(ctx, showtimeID)
}

type MockCouponRepo struct {
	GetUserCouponsFunc func(ctx context.Context, userID string) ([]domain.Coupon, error)
}

func (m *MockCouponRepo) GetUserCoupons(ctx context.Context, userID string) ([]domain.Coupon, error) {
	return m.GetUserCouponsFunc(ctx, userID)
}

type MockRoomRepo struct {
	CreateFunc func(ctx context.Context, name string, seats []domain.Seat) (*domain.Room, error)
	RenameFunc func(ctx context.Context, id, name string) (*domain.Room, error)
}

func (m *MockRoomRepo) Create(ctx context.Context, name string, seats []domain.Seat) (*domain.Room, error) {
	return m.CreateFunc(ctx, name, seats)
}

func (m *MockRoomRepo) Rename(ctx context.Context, id, name string) (*domain.Room, error) {
	return m.RenameFunc(ctx, id, name)
}
