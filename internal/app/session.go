package app

import "net/http"

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
)

func (s sessionKey) String() string {
	return string(s)
}

// contextGetUserId reads the authenticated user from the scs session. It is
// only called behind requireAuthentication, so an empty value is a
// programming error.
func (app *Application) contextGetUserId(r *http.Request) string {
	userId := app.sessionManager.GetString(r.Context(), SessionKeyUserId.String())
	if userId == "" {
		panic("missing user id from session")
	}

	return userId
}
