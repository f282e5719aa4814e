package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cinegood/purchase-api/api"
	"github.com/cinegood/purchase-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GenerateRoomGridHandler previews the seat grid for a room under
// construction. A zero-sized grid is a valid response, rendered by the admin
// UI as "size not defined".
func (app *Application) GenerateRoomGridHandler(w http.ResponseWriter, r *http.Request) {
	var input api.GridRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	layout, err := domain.NewSeatLayout(input.NumRows, input.SeatsPerRow)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := toGridResponse(layout)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateRoomHandler creates a room from a generated grid minus the seats the
// admin toggled off. Seat geometry is fixed from here on; later updates can
// only rename the room.
func (app *Application) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateRoomRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	layout, err := domain.NewSeatLayout(input.NumRows, input.SeatsPerRow)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	for _, ref := range input.Excluded {
		layout.Toggle(domain.Seat{Row: ref.Row, Number: ref.Number})
	}

	seats := layout.Seats()
	if len(seats) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("a room must keep at least one seat"))
		return
	}

	room, err := app.roomRepo.Create(r.Context(), input.Name, seats)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("room created", "room_id", room.ID, "seats", len(seats))

	resp := toRoomResponse(room)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RenameRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "salaId")
	if roomID == "" {
		app.badRequestResponse(w, r, fmt.Errorf("room ID is required"))
		return
	}

	var input api.RenameRoomRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	room, err := app.roomRepo.Rename(r.Context(), roomID, input.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := toRoomResponse(room)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toGridResponse(layout *domain.SeatLayout) api.GridResponse {
	resp := api.GridResponse{SizeDefined: !layout.Empty()}

	for _, row := range layout.Rows() {
		gridRow := api.GridRow{Row: row[0].Row, Seats: make([]api.GridSeat, len(row))}

		for i, seat := range row {
			gridRow.Seats[i] = api.GridSeat{
				Row:      seat.Row,
				Number:   seat.Number,
				Label:    seat.Label(),
				Included: layout.Included(seat),
			}
		}

		resp.Rows = append(resp.Rows, gridRow)
	}

	return resp
}

func toRoomResponse(room *domain.Room) api.RoomResponse {
	resp := api.RoomResponse{
		Id:        room.ID,
		Name:      room.Name,
		SeatCount: len(room.Seats),
	}

	for _, seat := range room.Seats {
		resp.Seats = append(resp.Seats, api.SeatRef{Row: seat.Row, Number: seat.Number})
	}

	return resp
}
