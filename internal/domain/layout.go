package domain

// MaxLayoutRows caps a room's height at the number of single-letter row
// labels. Rows beyond 'Z' have no defined label, so they are rejected
// outright instead of wrapping into garbage.
const MaxLayoutRows = 26

// SeatLayout is the seat grid of a room under construction. Generating a
// layout starts with the full rectangle included; the admin can then toggle
// individual seats off so the final room is a strict subset of the grid.
type SeatLayout struct {
	rows     [][]Seat
	included map[Seat]bool
}

// NewSeatLayout generates a numRows x seatsPerRow grid. Row i (0-based) is
// labelled with the i-th letter after 'A' and its seats are numbered 1..N.
// Non-positive dimensions yield an empty layout rather than an error: the
// caller renders that as "size not defined".
func NewSeatLayout(numRows, seatsPerRow int) (*SeatLayout, error) {
	if numRows > MaxLayoutRows {
		return nil, ErrTooManyRows
	}

	layout := &SeatLayout{included: make(map[Seat]bool)}

	if numRows <= 0 || seatsPerRow <= 0 {
		return layout, nil
	}

	layout.rows = make([][]Seat, numRows)

	for i := 0; i < numRows; i++ {
		rowLabel := string(rune('A' + i))
		row := make([]Seat, seatsPerRow)

		for j := 0; j < seatsPerRow; j++ {
			seat := Seat{Row: rowLabel, Number: j + 1}
			row[j] = seat
			layout.included[seat] = true
		}

		layout.rows[i] = row
	}

	return layout, nil
}

// Empty reports whether the layout has no grid, i.e. the size was not defined.
func (l *SeatLayout) Empty() bool {
	return len(l.rows) == 0
}

// Rows returns the full generated grid, including seats that were toggled off.
func (l *SeatLayout) Rows() [][]Seat {
	return l.rows
}

// Toggle flips the membership of a seat in the set handed to room creation.
// Seats outside the generated grid are ignored, which keeps the included set
// a subset of the grid at all times. It returns the seat's new membership.
func (l *SeatLayout) Toggle(seat Seat) bool {
	if !l.inGrid(seat) {
		return false
	}

	if l.included[seat] {
		delete(l.included, seat)
		return false
	}

	l.included[seat] = true

	return true
}

// Included reports whether a seat is currently part of the room being built.
func (l *SeatLayout) Included(seat Seat) bool {
	return l.included[seat]
}

// Seats returns the included seats in grid order (row by row, ascending
// seat number).
func (l *SeatLayout) Seats() []Seat {
	seats := make([]Seat, 0, len(l.included))

	for _, row := range l.rows {
		for _, seat := range row {
			if l.included[seat] {
				seats = append(seats, seat)
			}
		}
	}

	return seats
}

func (l *SeatLayout) inGrid(seat Seat) bool {
	if len(l.rows) == 0 || seat.Number < 1 || len(seat.Row) != 1 {
		return false
	}

	rowIdx := int(rune(seat.Row[0]) - 'A')
	if rowIdx < 0 || rowIdx >= len(l.rows) {
		return false
	}

	return seat.Number <= len(l.rows[rowIdx])
}
