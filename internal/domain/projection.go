package domain

import "sort"

// SeatMapRow is one renderable row of the seat map, already ordered by seat
// number and padded with placeholders so every row spans the same columns.
type SeatMapRow struct {
	Row   string
	Cells []SeatMapCell
}

// SeatMapCell is a single position in the rendered grid. A placeholder cell
// marks a column a non-rectangular room has no seat in; it carries no
// availability and is not interactive.
type SeatMapCell struct {
	Number      int
	Placeholder bool
	Seat        *SeatAvailability
}

// ProjectSeatMap groups an availability snapshot into rows sorted by row
// label, each row's seats ascending by number. Rows are discovered from the
// snapshot itself, not assumed contiguous. To keep column alignment across
// rows of different lengths, every row is padded to the global minimum and
// maximum seat number found in the snapshot.
//
// The projection is a pure transform of the snapshot it is given; staleness
// is resolved only at submission time by the catalog backend.
func ProjectSeatMap(availability []SeatAvailability) []SeatMapRow {
	if len(availability) == 0 {
		return nil
	}

	minNum, maxNum := availability[0].Seat.Number, availability[0].Seat.Number
	byRow := make(map[string]map[int]SeatAvailability)

	for _, av := range availability {
		if av.Seat.Number < minNum {
			minNum = av.Seat.Number
		}
		if av.Seat.Number > maxNum {
			maxNum = av.Seat.Number
		}

		row, ok := byRow[av.Seat.Row]
		if !ok {
			row = make(map[int]SeatAvailability)
			byRow[av.Seat.Row] = row
		}

		row[av.Seat.Number] = av
	}

	rowLabels := make([]string, 0, len(byRow))
	for label := range byRow {
		rowLabels = append(rowLabels, label)
	}
	sort.Strings(rowLabels)

	rows := make([]SeatMapRow, 0, len(rowLabels))

	for _, label := range rowLabels {
		row := SeatMapRow{Row: label, Cells: make([]SeatMapCell, 0, maxNum-minNum+1)}

		for num := minNum; num <= maxNum; num++ {
			if av, ok := byRow[label][num]; ok {
				seat := av
				row.Cells = append(row.Cells, SeatMapCell{Number: num, Seat: &seat})
			} else {
				row.Cells = append(row.Cells, SeatMapCell{Number: num, Placeholder: true})
			}
		}

		rows = append(rows, row)
	}

	return rows
}
