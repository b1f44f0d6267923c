package auth

import "net/http"

// SessionCookieName is the cookie carrying the session token. The name
// matches the historical deployment so existing sessions survive an upgrade.
const SessionCookieName = "token"

// SetSessionCookie stores a freshly issued session token. HttpOnly keeps the
// token away from page scripts.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false, // set true when served over HTTPS
	})
}

// ClearSessionCookie discards a stored session token, used when a request
// arrives with a token that no longer verifies.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ReadSessionCookie returns the session token carried by the request, or the
// empty string when there is none.
func ReadSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
