package authkit

import (
	"github.com/gofiber/fiber/v2"
)

// MiddlewareConfig configures the protected-route middleware.
type MiddlewareConfig struct {
	Validator TokenValidator
	Transport *CookieTransport
	// ErrorHandler receives every authentication failure. Defaults to a
	// uniform 401 that leaks no validation sub-reason.
	ErrorHandler fiber.ErrorHandler
}

// Protected returns a middleware that extracts the token from the session
// cookie, validates it, and attaches the claims to the request before the
// handler runs. A missing cookie and every validation failure surface the
// same unauthorized outcome.
func Protected(cfg MiddlewareConfig) fiber.Handler {
	if cfg.Validator == nil {
		panic("authkit: Protected requires a TokenValidator")
	}
	if cfg.Transport == nil {
		panic("authkit: Protected requires a CookieTransport")
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultAuthErrorHandler
	}

	return func(c *fiber.Ctx) error {
		raw, ok := cfg.Transport.Extract(c)
		if !ok {
			return cfg.ErrorHandler(c, ErrTokenMalformed)
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(ClaimsContextKey, claims)
		c.SetUserContext(WithClaimsContext(c.UserContext(), claims))

		return c.Next()
	}
}

func defaultAuthErrorHandler(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
