package auth

import (
	"net/http"
	"time"
)

// SessionCookie carries the session token between browser and API. The
// cookie is always HttpOnly; Secure and SameSite come from configuration.
//
// Clearing the cookie does not revoke the token it carried: a copy taken
// before logout stays valid until its own expiry.
type SessionCookie struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite

	now func() time.Time
}

// NewSessionCookie returns a SessionCookie scoped to path "/".
func NewSessionCookie(name, domain string, secure bool, sameSite http.SameSite) *SessionCookie {
	return &SessionCookie{
		Name:     name,
		Path:     "/",
		Domain:   domain,
		Secure:   secure,
		SameSite: sameSite,
		now:      time.Now,
	}
}

// Set writes token with Expires and Max-Age mirroring expiresAt.
func (c *SessionCookie) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(c.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	cookie := c.base()
	cookie.Value = token
	cookie.Expires = expiresAt.UTC()
	cookie.MaxAge = maxAge
	http.SetCookie(w, cookie)
}

// Clear overwrites the cookie with an empty, already expired one using the
// same name, path, domain and flags, so the browser discards it.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	cookie := c.base()
	cookie.Value = ""
	cookie.Expires = time.Unix(0, 0).UTC()
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

// Read returns the token from the request cookie, or "" when absent.
func (c *SessionCookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (c *SessionCookie) base() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Path:     c.Path,
		Domain:   c.Domain,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: c.SameSite,
	}
}
