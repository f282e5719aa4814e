// Package api holds the wire types of the purchase-flow API.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

// --- room builder ---

type GridRequest struct {
	NumRows     int `json:"numFilas" validate:"min=0,max=26"`
	SeatsPerRow int `json:"asientosPorFila" validate:"min=0"`
}

type GridSeat struct {
	Row      string `json:"fila"`
	Number   int    `json:"numero"`
	Label    string `json:"label"`
	Included bool   `json:"included"`
}

type GridRow struct {
	Row   string     `json:"fila"`
	Seats []GridSeat `json:"asientos"`
}

type GridResponse struct {
	SizeDefined bool      `json:"sizeDefined"`
	Rows        []GridRow `json:"filas"`
}

type SeatRef struct {
	Row    string `json:"fila" validate:"required,row_letter"`
	Number int    `json:"numero" validate:"min=1"`
}

type CreateRoomRequest struct {
	Name        string    `json:"nombre" validate:"required,max=100"`
	NumRows     int       `json:"numFilas" validate:"min=1,max=26"`
	SeatsPerRow int       `json:"asientosPorFila" validate:"min=1"`
	Excluded    []SeatRef `json:"excluidos" validate:"dive"`
}

type RenameRoomRequest struct {
	Name string `json:"nombre" validate:"required,max=100"`
}

type RoomResponse struct {
	Id        string    `json:"id"`
	Name      string    `json:"nombre"`
	Seats     []SeatRef `json:"asientos,omitempty"`
	SeatCount int       `json:"seatCount"`
}

// --- seat map ---

type SeatMapCell struct {
	Number      int    `json:"numero"`
	Placeholder bool   `json:"placeholder"`
	Id          string `json:"id,omitempty"`
	Label       string `json:"label,omitempty"`
	Status      string `json:"estado,omitempty"`
}

type SeatMapRow struct {
	Row   string        `json:"fila"`
	Cells []SeatMapCell `json:"asientos"`
}

type SeatMapResponse struct {
	ShowtimeId string       `json:"funcionId"`
	Rows       []SeatMapRow `json:"filas"`
}

// --- purchase session ---

type StartPurchaseRequest struct {
	BuyerName  string `json:"nombre" validate:"omitempty,max=100"`
	BuyerEmail string `json:"email" validate:"omitempty,email"`
}

type CouponOption struct {
	Id        string    `json:"id"`
	Code      string    `json:"codigo"`
	Discount  int       `json:"descuento"`
	ExpiresAt time.Time `json:"fechaExpiracion"`
	Label     string    `json:"label"`
	Selected  bool      `json:"selected"`
}

type SelectedSeat struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

type PurchasePricing struct {
	PricePerTicket decimal.Decimal `json:"precioPorEntrada"`
	TicketCount    int             `json:"cantidadEntradas"`
	Subtotal       decimal.Decimal `json:"precioTotalSinDescuento"`
	Discount       decimal.Decimal `json:"descuentoAplicado"`
	Total          decimal.Decimal `json:"precioTotalConDescuento"`
}

type PurchaseSessionResponse struct {
	SessionId    string          `json:"sessionId"`
	State        string          `json:"state"`
	ShowtimeId   string          `json:"funcionId"`
	MovieName    string          `json:"pelicula"`
	ShowtimeDate time.Time       `json:"fechaHora"`
	Presentation string          `json:"tipo"`
	BuyerName    string          `json:"nombre"`
	BuyerEmail   string          `json:"email"`
	SeatMap      []SeatMapRow    `json:"mapa"`
	Selection    []SelectedSeat  `json:"seleccion"`
	Coupons      []CouponOption  `json:"cupones"`
	Pricing      PurchasePricing `json:"precios"`
	DroppedSeats []string        `json:"asientosPerdidos,omitempty"`
}

type SelectCouponRequest struct {
	CouponId string `json:"cuponId"`
}

type ConfirmPurchaseRequest struct {
	BuyerName  string `json:"nombre" validate:"required,max=100"`
	BuyerEmail string `json:"email" validate:"required,email"`
}

type ConfirmPurchaseResponse struct {
	PreferenceId string `json:"preferenceId"`
	InitPoint    string `json:"initPoint,omitempty"`
}

// --- payment screen ---

type PurchaseSummary struct {
	Movie          string         `json:"pelicula"`
	Showtime       time.Time      `json:"horario"`
	PricePerTicket float64        `json:"precioPorEntrada"`
	TicketCount    int            `json:"cantidadEntradas"`
	Seats          []string       `json:"asientosSeleccionados"`
	Subtotal       float64        `json:"precioTotalSinDescuento"`
	Coupon         *CouponSummary `json:"cuponSeleccionado"`
	Total          float64        `json:"precioTotalConDescuento"`
}

type CouponSummary struct {
	Id       string `json:"id"`
	Discount int    `json:"descuento"`
}

type PaymentPageResponse struct {
	PreferenceId string           `json:"preferenceId"`
	Summary      *PurchaseSummary `json:"compraDetalle,omitempty"`
}
