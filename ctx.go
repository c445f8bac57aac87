package authkit

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// ClaimsContextKey is the fiber locals key protected routes store validated
// claims under.
const ClaimsContextKey = "auth_claims"

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(ctx context.Context, claims AuthClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// ClaimsFromFiber extracts validated claims stored by the protected-route
// middleware.
func ClaimsFromFiber(c *fiber.Ctx) (AuthClaims, bool) {
	raw := c.Locals(ClaimsContextKey)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}
