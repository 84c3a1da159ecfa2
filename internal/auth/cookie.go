package auth

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieCodec signs the session id before it goes into the cookie, so a
// client cannot forge or swap session ids. The signing key is derived
// from the configured session secret.
type CookieCodec struct {
	sc *securecookie.SecureCookie
}

func NewCookieCodec(secret string) *CookieCodec {
	key := sha256.Sum256([]byte(secret))
	return &CookieCodec{sc: securecookie.New(key[:], nil)}
}

// Set writes the signed session cookie.
func (c *CookieCodec) Set(w http.ResponseWriter, sessionID string) error {
	encoded, err := c.sc.Encode(SessionCookie, sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
	return nil
}

// Read returns the session id from the request cookie, or "" when the
// cookie is absent, unsigned, or tampered with.
func (c *CookieCodec) Read(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	var sid string
	if err := c.sc.Decode(SessionCookie, cookie.Value, &sid); err != nil {
		return ""
	}
	return sid
}

// Clear expires the session cookie.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
