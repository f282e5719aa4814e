package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cinegood/purchase-api/api"
	"github.com/cinegood/purchase-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GetSeatMapByShowtimeHandler renders the per-showtime seat map: the room's
// seats grouped by row with each seat's occupancy state, padded so every row
// spans the same columns.
func (app *Application) GetSeatMapByShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID := chi.URLParam(r, "funcionId")
	if showtimeID == "" {
		app.badRequestResponse(w, r, fmt.Errorf("showtime ID is required"))
		return
	}

	availability, err := app.showtimeRepo.GetSeatAvailability(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if len(availability) == 0 {
		logger.Warn("seat map not found for showtime", "showtime_id", showtimeID)
		app.notFoundResponse(w, r)
		return
	}

	resp := api.SeatMapResponse{
		ShowtimeId: showtimeID,
		Rows:       toSeatMapRows(domain.ProjectSeatMap(availability)),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapRows(rows []domain.SeatMapRow) []api.SeatMapRow {
	apiRows := make([]api.SeatMapRow, len(rows))

	for i, row := range rows {
		apiRow := api.SeatMapRow{Row: row.Row, Cells: make([]api.SeatMapCell, len(row.Cells))}

		for j, cell := range row.Cells {
			apiCell := api.SeatMapCell{
				Number:      cell.Number,
				Placeholder: cell.Placeholder,
			}

			if cell.Seat != nil {
				apiCell.Id = cell.Seat.ID
				apiCell.Label = cell.Seat.Seat.Label()
				apiCell.Status = string(cell.Seat.Status)
			}

			apiRow.Cells[j] = apiCell
		}

		apiRows[i] = apiRow
	}

	return apiRows
}
