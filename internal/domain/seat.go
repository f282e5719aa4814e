package domain

import (
	"context"
	"fmt"
)

// Seat is a physical seat inside a room, identified by a letter-coded row
// and a positive seat number. The pair is unique within a room and never
// changes after the room is created.
type Seat struct {
	Row    string `json:"fila"`
	Number int    `json:"numero"`
}

// Label renders the seat as its display identity, e.g. row "B" seat 4 -> "B4".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

type Room struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Seats []Seat `json:"asientos,omitempty"`
}

type RoomRepository interface {
	Create(ctx context.Context, name string, seats []Seat) (*Room, error)
	Rename(ctx context.Context, id, name string) (*Room, error)
}
