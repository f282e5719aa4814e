package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cinegood/purchase-api/api"
	"github.com/cinegood/purchase-api/internal/domain"
	"github.com/cinegood/purchase-api/internal/mailer"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	purchaseSessionTTL = 15 * time.Minute
	paymentPageTTL     = 30 * time.Minute
)

func purchaseSessionKey(sessionToken string) string {
	return fmt.Sprintf("purchase:%s", sessionToken)
}

func preferenceKey(sessionToken string) string {
	return fmt.Sprintf("preference:%s", sessionToken)
}

func summaryKey(sessionToken string) string {
	return fmt.Sprintf("summary:%s", sessionToken)
}

// StartPurchaseHandler opens a purchase session for one showtime. The
// showtime detail, the seat-availability snapshot and the buyer's coupons are
// fetched concurrently; the session becomes ready once showtime and
// availability resolve. A coupon fetch failure only costs the buyer their
// discounts, so it is logged and swallowed. Starting a new purchase replaces
// any previous session: navigating to another showtime abandons the old flow.
func (app *Application) StartPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID := chi.URLParam(r, "funcionId")
	if showtimeID == "" {
		app.badRequestResponse(w, r, fmt.Errorf("showtime ID is required"))
		return
	}

	var input api.StartPurchaseRequest

	if r.ContentLength != 0 {
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
	}

	userID := app.contextGetUserId(r)

	var (
		showtime     *domain.Showtime
		availability []domain.SeatAvailability
		coupons      []domain.Coupon
	)

	g, gctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		showtime, err = app.showtimeRepo.GetShowtime(gctx, showtimeID)
		return err
	})

	g.Go(func() error {
		var err error
		availability, err = app.showtimeRepo.GetSeatAvailability(gctx, showtimeID)
		return err
	})

	g.Go(func() error {
		userCoupons, err := app.couponRepo.GetUserCoupons(gctx, userID)
		if err != nil {
			logger.Error("failed to load coupons, continuing without", "user_id", userID, "error", err)
			return nil
		}

		coupons = userCoupons

		return nil
	})

	err := g.Wait()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	validCoupons := domain.ValidCoupons(coupons, time.Now())

	session := domain.NewPurchaseSession(userID, input.BuyerName, input.BuyerEmail, *showtime, availability, validCoupons)

	err = app.savePurchaseSession(r.Context(), session)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("purchase session started", "session_id", session.ID, "showtime_id", showtimeID)

	app.writePurchaseSessionResponse(w, r, session, nil)
}

func (app *Application) GetPurchaseSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := app.loadPurchaseSession(r)
	if err != nil {
		app.purchaseSessionError(w, r, err)
		return
	}

	app.writePurchaseSessionResponse(w, r, session, nil)
}

// ToggleSeatHandler flips one seat in or out of the selection. The toggle is
// symmetric: hitting an already selected seat deselects it. Seats that were
// reserved or sold at snapshot time are rejected outright.
func (app *Application) ToggleSeatHandler(w http.ResponseWriter, r *http.Request) {
	availabilityID := chi.URLParam(r, "asientoFuncionId")
	if availabilityID == "" {
		app.badRequestResponse(w, r, fmt.Errorf("seat availability ID is required"))
		return
	}

	session, err := app.loadPurchaseSession(r)
	if err != nil {
		app.purchaseSessionError(w, r, err)
		return
	}

	err = session.ToggleSeat(availabilityID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatNotFound):
			app.notFoundResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrSeatUnavailable):
			app.editConflictResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrSessionNotReady):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.savePurchaseSession(r.Context(), session)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writePurchaseSessionResponse(w, r, session, nil)
}

func (app *Application) SelectCouponHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SelectCouponRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.loadPurchaseSession(r)
	if err != nil {
		app.purchaseSessionError(w, r, err)
		return
	}

	err = session.SelectCoupon(input.CouponId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCouponNotOffered):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrSessionNotReady):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.savePurchaseSession(r.Context(), session)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writePurchaseSessionResponse(w, r, session, nil)
}

// AbandonPurchaseHandler drops the purchase session. Nothing was mutated
// server-side before submission, so there is nothing else to clean up.
func (app *Application) AbandonPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	sessionToken := app.sessionManager.Token(r.Context())

	err := app.redis.Del(r.Context(), purchaseSessionKey(sessionToken)).Err()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmPurchaseHandler submits the purchase: it validates the buyer's form
// data and selection, builds the payment-preference order and hands it to the
// provider. On success the preference reference and a purchase summary are
// stored for the payment screen and the session ends. On failure the session
// returns to ready with the selection and coupon choice intact; a seat
// conflict additionally refreshes the availability snapshot and drops the
// seats that were lost.
func (app *Application) ConfirmPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.ConfirmPurchaseRequest

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

	session, err := app.loadPurchaseSession(r)
	if err != nil {
		app.purchaseSessionError(w, r, err)
		return
	}

	session.SetBuyer(input.BuyerName, input.BuyerEmail)

	err = session.BeginSubmit()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySelection), errors.Is(err, domain.ErrIncompleteBuyer):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrMissingBuyer):
			app.unauthorizedAccessResponse(w, r)
		default:
			app.editConflictResponseWithErr(w, r, err)
		}

		return
	}

	order, err := session.BuildOrder()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	preference, err := app.preferenceProvider.CreatePreference(r.Context(), *order)
	if err != nil {
		if errors.Is(err, domain.ErrSeatConflict) {
			logger.Warn("preference rejected due to seat conflict", "session_id", session.ID)
			app.handleSeatConflict(w, r, session)
			return
		}

		session.FailSubmit()

		if saveErr := app.savePurchaseSession(r.Context(), session); saveErr != nil {
			logger.Error("failed to save session after submission failure", "error", saveErr)
		}

		app.serverErrorResponse(w, r, err)

		return
	}

	session.CompleteSubmit(preference.ID)
	summary := session.Summary()

	err = app.storePaymentPage(r.Context(), preference.ID, summary)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// The selection set only lives for the duration of the flow.
	sessionToken := app.sessionManager.Token(r.Context())
	app.redis.Del(r.Context(), purchaseSessionKey(sessionToken))

	app.sendPurchaseReceipt(session, summary, preference.ID)

	logger.Info("purchase submitted", "session_id", session.ID, "preference_id", preference.ID)

	resp := api.ConfirmPurchaseResponse{
		PreferenceId: preference.ID,
		InitPoint:    preference.InitPoint,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// handleSeatConflict re-fetches the availability snapshot after the provider
// rejected the order, drops the selected seats that are gone and returns the
// session to ready so the buyer can retry against fresh data.
func (app *Application) handleSeatConflict(w http.ResponseWriter, r *http.Request, session *domain.PurchaseSession) {
	snapshot, err := app.showtimeRepo.GetSeatAvailability(r.Context(), session.Showtime.ID)
	if err != nil {
		session.MarkFailed()

		if saveErr := app.savePurchaseSession(r.Context(), session); saveErr != nil {
			app.contextGetLogger(r).Error("failed to save session after conflict", "error", saveErr)
		}

		app.serverErrorResponse(w, r, err)

		return
	}

	dropped := session.RefreshAvailability(snapshot)
	session.FailSubmit()

	err = app.savePurchaseSession(r.Context(), session)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	labels := make([]string, len(dropped))
	for i, seat := range dropped {
		labels[i] = seat.Seat.Label()
	}

	app.editConflictResponseWithErr(
		w,
		r,
		fmt.Errorf("seats no longer available: %s", strings.Join(labels, ", ")),
	)
}

func (app *Application) loadPurchaseSession(r *http.Request) (*domain.PurchaseSession, error) {
	sessionToken := app.sessionManager.Token(r.Context())

	data, err := app.redis.Get(r.Context(), purchaseSessionKey(sessionToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}

		return nil, err
	}

	var session domain.PurchaseSession

	err = json.Unmarshal(data, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal purchase session: %w", err)
	}

	return &session, nil
}

func (app *Application) savePurchaseSession(ctx context.Context, session *domain.PurchaseSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	sessionToken := app.sessionManager.Token(ctx)

	return app.redis.Set(ctx, purchaseSessionKey(sessionToken), data, purchaseSessionTTL).Err()
}

func (app *Application) storePaymentPage(ctx context.Context, preferenceID string, summary domain.PurchaseSummary) error {
	summaryData, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	sessionToken := app.sessionManager.Token(ctx)

	err = app.redis.Set(ctx, preferenceKey(sessionToken), preferenceID, paymentPageTTL).Err()
	if err != nil {
		return err
	}

	return app.redis.Set(ctx, summaryKey(sessionToken), summaryData, paymentPageTTL).Err()
}

type receiptEmailData struct {
	BuyerName       string
	Movie           string
	ShowtimeDisplay string
	Seats           string
	TicketCount     int
	PricePerTicket  float64
	HasCoupon       bool
	CouponDiscount  int
	Total           float64
	PreferenceID    string
}

func (app *Application) sendPurchaseReceipt(session *domain.PurchaseSession, summary domain.PurchaseSummary, preferenceID string) {
	data := receiptEmailData{
		BuyerName:       session.BuyerName,
		Movie:           summary.Movie,
		ShowtimeDisplay: session.Showtime.DisplayTime(),
		Seats:           strings.Join(summary.Seats, ", "),
		TicketCount:     summary.TicketCount,
		PricePerTicket:  summary.PricePerTicket,
		Total:           summary.Total,
		PreferenceID:    preferenceID,
	}

	if summary.Coupon != nil {
		data.HasCoupon = true
		data.CouponDiscount = summary.Coupon.Discount
	}

	recipient := session.BuyerEmail

	app.background(func() {
		var attachments []mailer.Attachment

		qr, err := mailer.PreferenceQR(preferenceID)
		if err != nil {
			app.logger.Error("failed to render preference QR", "error", err)
		} else {
			attachments = append(attachments, qr)
		}

		err = app.mailer.Send(recipient, "purchase_receipt.tmpl", data, attachments...)
		if err != nil {
			app.logger.Error("failed to send purchase receipt", "error", err)
		}
	})
}

func (app *Application) purchaseSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		app.notFoundResponseWithErr(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) writePurchaseSessionResponse(w http.ResponseWriter, r *http.Request, session *domain.PurchaseSession, dropped []domain.SeatAvailability) {
	resp := toPurchaseSessionResponse(session, dropped)

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPurchaseSessionResponse(session *domain.PurchaseSession, dropped []domain.SeatAvailability) api.PurchaseSessionResponse {
	quote := session.Quote()

	resp := api.PurchaseSessionResponse{
		SessionId:    session.ID,
		State:        string(session.State),
		ShowtimeId:   session.Showtime.ID,
		MovieName:    session.Showtime.Movie.Name,
		ShowtimeDate: session.Showtime.StartTime,
		Presentation: string(session.Showtime.Type),
		BuyerName:    session.BuyerName,
		BuyerEmail:   session.BuyerEmail,
		SeatMap:      toSeatMapRows(domain.ProjectSeatMap(session.Availability)),
		Pricing: api.PurchasePricing{
			PricePerTicket: session.Showtime.Price,
			TicketCount:    quote.SeatCount,
			Subtotal:       quote.Subtotal.Round(2),
			Discount:       quote.Discount.Round(2),
			Total:          quote.Total.Round(2),
		},
	}

	for _, seat := range session.SelectedSeats() {
		resp.Selection = append(resp.Selection, api.SelectedSeat{
			Id:    seat.ID,
			Label: seat.Seat.Label(),
		})
	}

	for _, coupon := range session.Coupons {
		resp.Coupons = append(resp.Coupons, api.CouponOption{
			Id:        coupon.ID,
			Code:      coupon.Code,
			Discount:  coupon.Discount,
			ExpiresAt: coupon.ExpiresAt,
			Label:     coupon.DisplayLabel(),
			Selected:  coupon.ID == session.CouponID,
		})
	}

	for _, seat := range dropped {
		resp.DroppedSeats = append(resp.DroppedSeats, seat.Seat.Label())
	}

	return resp
}
