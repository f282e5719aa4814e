package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeatLayout(t *testing.T) {
	tests := []struct {
		name        string
		numRows     int
		seatsPerRow int
	}{
		{name: "single seat", numRows: 1, seatsPerRow: 1},
		{name: "small room", numRows: 3, seatsPerRow: 4},
		{name: "widest labels", numRows: 26, seatsPerRow: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := NewSeatLayout(tt.numRows, tt.seatsPerRow)
			require.NoError(t, err)

			rows := layout.Rows()
			require.Len(t, rows, tt.numRows)

			for i, row := range rows {
				require.Len(t, row, tt.seatsPerRow)

				wantLabel := string(rune('A' + i))

				for j, seat := range row {
					assert.Equal(t, wantLabel, seat.Row)
					assert.Equal(t, j+1, seat.Number)
					assert.True(t, layout.Included(seat))
				}
			}

			assert.Len(t, layout.Seats(), tt.numRows*tt.seatsPerRow)
		})
	}
}

func TestNewSeatLayout_TooManyRows(t *testing.T) {
	_, err := NewSeatLayout(27, 5)

	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestNewSeatLayout_UndefinedSize(t *testing.T) {
	tests := []struct {
		numRows     int
		seatsPerRow int
	}{
		{0, 10},
		{5, 0},
		{-1, 3},
		{0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.numRows, tt.seatsPerRow), func(t *testing.T) {
			layout, err := NewSeatLayout(tt.numRows, tt.seatsPerRow)
			require.NoError(t, err)

			assert.True(t, layout.Empty())
			assert.Empty(t, layout.Seats())
		})
	}
}

func TestSeatLayout_Toggle(t *testing.T) {
	layout, err := NewSeatLayout(2, 3)
	require.NoError(t, err)

	seat := Seat{Row: "B", Number: 2}

	included := layout.Toggle(seat)
	assert.False(t, included)
	assert.False(t, layout.Included(seat))
	assert.Len(t, layout.Seats(), 5)

	included = layout.Toggle(seat)
	assert.True(t, included)
	assert.True(t, layout.Included(seat))
	assert.Len(t, layout.Seats(), 6)
}

func TestSeatLayout_ToggleOutsideGrid(t *testing.T) {
	layout, err := NewSeatLayout(2, 3)
	require.NoError(t, err)

	tests := []Seat{
		{Row: "C", Number: 1},
		{Row: "A", Number: 4},
		{Row: "A", Number: 0},
		{Row: "AA", Number: 1},
		{Row: "", Number: 1},
	}

	for _, seat := range tests {
		t.Run(seat.Label(), func(t *testing.T) {
			included := layout.Toggle(seat)

			assert.False(t, included)
			assert.False(t, layout.Included(seat))
			assert.Len(t, layout.Seats(), 6)
		})
	}
}

func TestSeatLayout_SeatsKeepGridOrder(t *testing.T) {
	layout, err := NewSeatLayout(2, 2)
	require.NoError(t, err)

	// Toggling off and back on must not move the seat to the end.
	seat := Seat{Row: "A", Number: 1}
	layout.Toggle(seat)
	layout.Toggle(seat)

	want := []Seat{
		{Row: "A", Number: 1},
		{Row: "A", Number: 2},
		{Row: "B", Number: 1},
		{Row: "B", Number: 2},
	}

	assert.Equal(t, want, layout.Seats())
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "B4", Seat{Row: "B", Number: 4}.Label())
	assert.Equal(t, "A1", Seat{Row: "A", Number: 1}.Label())
}
