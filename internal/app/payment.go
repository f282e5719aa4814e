package app

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinegood/purchase-api/api"
	"github.com/cinegood/purchase-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// GetPaymentPageHandler returns the hand-off stored by a confirmed purchase:
// the provider's preference reference plus the purchase summary. A missing
// preference is a 404; a corrupt stored summary only degrades the response to
// a summary-less payload, since the reference alone is enough to pay.
func (app *Application) GetPaymentPageHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	sessionToken := app.sessionManager.Token(r.Context())

	preferenceID, err := app.redis.Get(r.Context(), preferenceKey(sessionToken)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)

		return
	}

	resp := api.PaymentPageResponse{
		PreferenceId: preferenceID,
	}

	summaryData, err := app.redis.Get(r.Context(), summaryKey(sessionToken)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		app.serverErrorResponse(w, r, err)
		return
	}

	if err == nil {
		var summary domain.PurchaseSummary

		err = json.Unmarshal(summaryData, &summary)
		if err != nil {
			logger.Warn("stored purchase summary is corrupt, omitting it", "error", err)
		} else {
			resp.Summary = toApiSummary(summary)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiSummary(summary domain.PurchaseSummary) *api.PurchaseSummary {
	apiSummary := &api.PurchaseSummary{
		Movie:          summary.Movie,
		Showtime:       summary.Showtime,
		PricePerTicket: summary.PricePerTicket,
		TicketCount:    summary.TicketCount,
		Seats:          summary.Seats,
		Subtotal:       summary.Subtotal,
		Total:          summary.Total,
	}

	if summary.Coupon != nil {
		apiSummary.Coupon = &api.CouponSummary{
			Id:       summary.Coupon.ID,
			Discount: summary.Coupon.Discount,
		}
	}

	return apiSummary
}
