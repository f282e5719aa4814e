package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PresentationType string

const (
	Subtitled PresentationType = "SUBTITULADA"
	Dubbed    PresentationType = "DOBLADA / ESPAÑOL"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "disponible"
	SeatReserved  SeatStatus = "reservado"
	SeatSold      SeatStatus = "vendido"
)

type Movie struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// Showtime is a scheduled screening. Start times are stored in UTC and only
// rendered in the cinema's local timezone. The showtime is immutable for the
// whole duration of a purchase session.
type Showtime struct {
	ID        string           `json:"id"`
	StartTime time.Time        `json:"fechaHora"`
	Movie     Movie            `json:"pelicula"`
	Room      Room             `json:"sala"`
	Price     decimal.Decimal  `json:"precio"`
	Type      PresentationType `json:"tipo"`
}

// SeatAvailability is the per-showtime occupancy projection of one seat.
// This service only ever reads it; flipping disponible to reservado/vendido
// is a side effect of a completed purchase in the catalog backend.
type SeatAvailability struct {
	ID     string     `json:"id"`
	Seat   Seat       `json:"asiento"`
	Status SeatStatus `json:"estado"`
}

func (a SeatAvailability) Available() bool {
	return a.Status == SeatAvailable
}

type ShowtimeRepository interface {
	GetShowtime(ctx context.Context, id string) (*Showtime, error)
	GetSeatAvailability(ctx context.Context, showtimeID string) ([]SeatAvailability, error)
}

// displayLocation is the fixed locale the cinema renders showtimes in.
var displayLocation = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}

	return loc
}()

// DisplayTime renders the start time in the cinema's local timezone using the
// short "dd/MM HH:mm" form used in payment line items.
func (s Showtime) DisplayTime() string {
	return s.StartTime.In(displayLocation).Format("02/01 15:04")
}
