package authkit

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	TokenValidator
	Issue(subject string, claims []Claim) (string, time.Time, error)
	SignClaims(claims *JWTClaims) (string, error)
}

// TokenServiceImpl implements the TokenService interface using HS512
// compact JWTs. It holds no mutable state after construction, so a single
// instance is safe for unsynchronized concurrent use.
type TokenServiceImpl struct {
	signingKey    []byte
	expiryMinutes int
	issuer        string
	audience      jwt.ClaimStrings
	logger        Logger
	now           func() time.Time
}

var _ TokenService = (*TokenServiceImpl)(nil)

// NewTokenService creates a new TokenService instance. Expiry is expressed
// in whole minutes.
func NewTokenService(signingKey []byte, expiryMinutes int, issuer, audience string, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey:    signingKey,
		expiryMinutes: expiryMinutes,
		issuer:        issuer,
		audience:      jwt.ClaimStrings{audience},
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the issuance and validation clock. Used by tests to
// pin timestamps.
func (ts *TokenServiceImpl) WithClock(now func() time.Time) *TokenServiceImpl {
	if now != nil {
		ts.now = now
	}
	return ts
}

// Issue builds and signs a token for the given subject. The claim sequence
// must contain the email claim produced by BuildClaims; role claims are
// embedded in order. The returned time is the token's expiry instant,
// computed at issuance as now + expiryMinutes.
func (ts *TokenServiceImpl) Issue(subject string, claims []Claim) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(time.Duration(ts.expiryMinutes) * time.Minute)

	jwtClaims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subject,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	for _, claim := range claims {
		switch claim.Kind {
		case ClaimEmail:
			jwtClaims.UserEmail = claim.Value
		case ClaimRole:
			jwtClaims.UserRoles = append(jwtClaims.UserRoles, claim.Value)
		}
	}

	signed, err := ts.SignClaims(jwtClaims)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	if len(ts.signingKey) == 0 {
		return "", ErrSigningKeyMissing
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured
// claims. The signature is verified before any claim is trusted, and each
// failure maps to a distinct reason: malformed wire form, signature
// mismatch, issuer mismatch, audience mismatch, or expiry. Expiry is
// checked against the current instant with no leeway.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(ts.now),
		jwt.WithExpirationRequired(),
	}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, ErrBadSignature
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		return nil, ts.mapValidationError(err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}

func (ts *TokenServiceImpl) mapValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudienceMismatch
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrTokenExpired
	default:
		return goerrors.Wrap(err, goerrors.CategoryAuth, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(goerrors.CodeUnauthorized)
	}
}
