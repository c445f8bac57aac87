package authkit

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimKind tags a claim value.
type ClaimKind string

const (
	// ClaimEmail is the subject email claim. Every token carries exactly one.
	ClaimEmail ClaimKind = "email"
	// ClaimRole is a role membership claim. Tokens carry one per assigned role.
	ClaimRole ClaimKind = "role"
)

// Claim is a tagged (kind, value) pair. Tokens embed an ordered sequence of
// claims rather than a polymorphic object.
type Claim struct {
	Kind  ClaimKind
	Value string
}

// BuildClaims produces the claim sequence for an authenticated identity:
// the email claim first, then one role claim per entry in roles, preserving
// the store's order. Duplicates are kept as-is.
func BuildClaims(identity Identity, roles []string) []Claim {
	claims := make([]Claim, 0, len(roles)+1)
	claims = append(claims, Claim{Kind: ClaimEmail, Value: identity.Email()})

	for _, role := range roles {
		claims = append(claims, Claim{Kind: ClaimRole, Value: role})
	}

	return claims
}

// AuthClaims represents the validated claims of a token
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Roles() []string
	HasRole(role string) bool
	ClaimSet() []Claim
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UserEmail string   `json:"email,omitempty"`
	UserRoles []string `json:"roles,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID carried in the subject claim
func (c *JWTClaims) UserID() string {
	return c.Subject()
}

// Email returns the subject email
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Roles returns the role claims in issuance order
func (c *JWTClaims) Roles() []string {
	return c.UserRoles
}

// HasRole checks if the token carries a specific role claim
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ClaimSet reconstructs the ordered (kind, value) sequence the token was
// issued with: email first, then roles.
func (c *JWTClaims) ClaimSet() []Claim {
	claims := make([]Claim, 0, len(c.UserRoles)+1)
	claims = append(claims, Claim{Kind: ClaimEmail, Value: c.UserEmail})

	for _, role := range c.UserRoles {
		claims = append(claims, Claim{Kind: ClaimRole, Value: role})
	}

	return claims
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
