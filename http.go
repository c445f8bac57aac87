package authkit

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieTransport binds tokens to an HTTP cookie instead of an
// Authorization header. The cookie is either fully set or not set; there is
// no partial state to roll back.
type CookieTransport struct {
	cookieName string
}

// NewCookieTransport returns a transport bound to the configured cookie name.
func NewCookieTransport(cfg Config) *CookieTransport {
	return &CookieTransport{cookieName: cfg.GetCookieName()}
}

// CookieName exposes the configured cookie name.
func (t *CookieTransport) CookieName() string {
	return t.cookieName
}

// Attach sets the session cookie on the outgoing response. The cookie
// expiry matches the token's own expiry instant.
func (t *CookieTransport) Attach(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     t.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Extract reads the token from the inbound request cookie. The second
// return is false when the cookie is absent or empty.
func (t *CookieTransport) Extract(c *fiber.Ctx) (string, bool) {
	token := c.Cookies(t.cookieName)
	if token == "" {
		return "", false
	}
	return token, true
}

// Clear expires the session cookie. Logging out without an active session
// is a caller error: when the request carried no cookie, Clear returns
// ErrNoSessionCookie and mutates nothing.
func (t *CookieTransport) Clear(c *fiber.Ctx) error {
	if _, ok := t.Extract(c); !ok {
		return ErrNoSessionCookie
	}

	c.Cookie(&fiber.Cookie{
		Name:     t.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return nil
}
