package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cinegood/purchase-api/internal/domain"
	"github.com/shopspring/decimal"
)

// fakeCatalog stands in for the catalog backend. It serves the showtime,
// availability and coupon fixtures in the backend's envelope format and
// records the rooms created through it.
type fakeCatalog struct {
	mu           sync.Mutex
	showtimes    map[string]domain.Showtime
	availability map[string][]domain.SeatAvailability
	coupons      map[string][]domain.Coupon
	rooms        []domain.Room
}

func newFakeCatalog() *fakeCatalog {
	showtime := domain.Showtime{
		ID:        "f1",
		StartTime: time.Date(2025, 7, 10, 21, 30, 0, 0, time.UTC),
		Movie:     domain.Movie{ID: "m1", Name: "Dune"},
		Room:      domain.Room{ID: "r1", Name: "Sala 1"},
		Price:     decimal.RequireFromString("1000"),
		Type:      domain.Subtitled,
	}

	return &fakeCatalog{
		showtimes: map[string]domain.Showtime{"f1": showtime},
		availability: map[string][]domain.SeatAvailability{
			"f1": {
				{ID: "af-1", Seat: domain.Seat{Row: "A", Number: 1}, Status: domain.SeatAvailable},
				{ID: "af-2", Seat: domain.Seat{Row: "A", Number: 2}, Status: domain.SeatAvailable},
				{ID: "af-3", Seat: domain.Seat{Row: "B", Number: 1}, Status: domain.SeatSold},
			},
		},
		coupons: map[string][]domain.Coupon{
			"user-1": {
				{ID: "c1", Code: "PROMO20", Discount: 20, ExpiresAt: time.Now().Add(48 * time.Hour)},
				{ID: "c-old", Code: "OLD", Discount: 50, ExpiresAt: time.Now().Add(-time.Hour)},
			},
		},
	}
}

func (f *fakeCatalog) setStatus(showtimeID, availabilityID string, status domain.SeatStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, a := range f.availability[showtimeID] {
		if a.ID == availabilityID {
			f.availability[showtimeID][i].Status = status
		}
	}
}

func (f *fakeCatalog) server() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /funciones/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		showtime, ok := f.showtimes[r.PathValue("id")]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeEnvelope(w, showtime)
	})

	mux.HandleFunc("GET /asientofuncion/disponibilidad/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		availability, ok := f.availability[r.PathValue("id")]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeEnvelope(w, availability)
	})

	mux.HandleFunc("GET /cupones/usuario/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		coupons := f.coupons[r.PathValue("id")]
		f.mu.Unlock()

		writeEnvelope(w, coupons)
	})

	mux.HandleFunc("POST /salas", func(w http.ResponseWriter, r *http.Request) {
		var room domain.Room
		if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		room.ID = "r-new"

		f.mu.Lock()
		f.rooms = append(f.rooms, room)
		f.mu.Unlock()

		writeEnvelope(w, room)
	})

	mux.HandleFunc("PUT /salas/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"nombre"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		writeEnvelope(w, domain.Room{ID: r.PathValue("id"), Name: body.Name})
	})

	return httptest.NewServer(mux)
}

// fakeProvider stands in for the payment-preference service. ConflictOnce
// makes the next order fail with 409, the way the backend responds when a
// selected seat was sold in the meantime.
type fakeProvider struct {
	mu           sync.Mutex
	conflictOnce bool
	requests     []domain.PreferenceRequest
}

func (p *fakeProvider) ConflictOnce() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.conflictOnce = true
}

func (p *fakeProvider) lastRequest() (domain.PreferenceRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.requests) == 0 {
		return domain.PreferenceRequest{}, false
	}

	return p.requests[len(p.requests)-1], true
}

func (p *fakeProvider) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.PreferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		p.mu.Lock()
		p.requests = append(p.requests, req)
		conflict := p.conflictOnce
		p.conflictOnce = false
		p.mu.Unlock()

		if conflict {
			w.WriteHeader(http.StatusConflict)
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"message": "preference created",
			"data":    "pref-123",
		})
	}))
}

func writeEnvelope(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message": "ok",
		"data":    json.RawMessage(raw),
	})
}
