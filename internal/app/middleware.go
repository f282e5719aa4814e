package app

import (
	"fmt"
	"net/http"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authenticate binds the identity asserted by the gateway to the session.
// Identity itself is owned by the external auth service; this service only
// carries the user id it is handed. Binding a new identity renews the session
// token, which also guarantees handlers see a non-empty token on the first
// request of a fresh session.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := r.Header.Get("X-User-Id")

		if userId != "" && userId != app.sessionManager.GetString(r.Context(), SessionKeyUserId.String()) {
			err := app.sessionManager.RenewToken(r.Context())
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}

			app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), userId)
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := app.sessionManager.GetString(r.Context(), SessionKeyUserId.String())
		if userId == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
