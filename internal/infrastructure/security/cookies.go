package security

import (
	"net/http"
	"time"
)

// The browser holds two cookies of identical scope and expiry: the signed
// session token, and a plaintext email copy the edge gate uses for its
// coarse role pre-check. Only the token is a trust boundary.
const (
	SessionCookieName = "token"
	EmailCookieName   = "email"
)

func SetSessionCookies(w http.ResponseWriter, token, email string, ttl time.Duration, secure bool) {
	maxAge := int(ttl.Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure, // prod=true, dev=false
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     EmailCookieName,
		Value:    email,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func ClearSessionCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{SessionCookieName, EmailCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

func ReadSessionToken(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func ReadEmailCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(EmailCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
