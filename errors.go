package authkit

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrTokenMalformed is returned when a token is not in compact JWT wire form.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrBadSignature is returned when the token signature does not match the
// configured signing key or the token was signed with a different algorithm.
var ErrBadSignature = goerrors.New("token signature mismatch", goerrors.CategoryAuth).
	WithTextCode("BAD_SIGNATURE").
	WithCode(goerrors.CodeUnauthorized)

// ErrIssuerMismatch is returned when the token issuer differs from the
// configured issuer.
var ErrIssuerMismatch = goerrors.New("token issuer mismatch", goerrors.CategoryAuth).
	WithTextCode("ISSUER_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrAudienceMismatch is returned when the token audience differs from the
// configured audience.
var ErrAudienceMismatch = goerrors.New("token audience mismatch", goerrors.CategoryAuth).
	WithTextCode("AUDIENCE_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when the current time is at or past the token
// expiry. Expiry is exclusive and validated with zero clock-skew tolerance.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// response carries no account enumeration signal.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the store-level password comparison failure.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrNoSessionCookie is returned when an operation requires an active
// session cookie and the request carried none. Surfaced as a client error,
// not a server fault.
var ErrNoSessionCookie = goerrors.New("no active session", goerrors.CategoryValidation).
	WithTextCode("NO_ACTIVE_SESSION").
	WithCode(goerrors.CodeBadRequest)

// ErrDuplicateEmail is the store rejection for an already registered email.
var ErrDuplicateEmail = goerrors.New("email is already registered", goerrors.CategoryConflict).
	WithTextCode("DUPLICATE_EMAIL").
	WithCode(goerrors.CodeConflict)

// ErrEmptySigningSecret is a fatal startup misconfiguration.
var ErrEmptySigningSecret = goerrors.New("signing secret is required", goerrors.CategoryValidation).
	WithTextCode("INVALID_CONFIGURATION").
	WithCode(goerrors.CodeInternal)

// ErrSigningKeyTooShort is a fatal startup misconfiguration: HMAC-SHA-512
// requires a key at least as long as its output size.
var ErrSigningKeyTooShort = goerrors.New("signing secret is too short for HS512", goerrors.CategoryValidation).
	WithTextCode("INVALID_CONFIGURATION").
	WithCode(goerrors.CodeInternal)

// ErrSigningKeyMissing is returned when token issuance is attempted with an
// empty key.
var ErrSigningKeyMissing = goerrors.New("signing key is empty", goerrors.CategoryInternal).
	WithTextCode("SIGNING_KEY_MISSING").
	WithCode(goerrors.CodeInternal)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryValidation).
	WithTextCode("EMPTY_VALUE").
	WithCode(goerrors.CodeBadRequest)

// IsConfigurationError reports whether err is a fatal startup
// misconfiguration rather than a runtime failure.
func IsConfigurationError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == "INVALID_CONFIGURATION"
}

// IsAuthError reports whether err should surface as an unauthorized
// response without exposing its sub-reason.
func IsAuthError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryAuth || richErr.Category == goerrors.CategoryAuthz
}
