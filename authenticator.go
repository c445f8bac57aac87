package authkit

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Authenticator converts verified credentials into signed tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult carries everything the HTTP boundary needs after a
// successful login: the signed token, its expiry instant for the cookie,
// and a profile view that never includes the password or key material.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  Identity
	Roles     []string
}

// Auther orchestrates login: verify password, build claims, issue token.
type Auther struct {
	store  UserStore
	tokens TokenService
	logger Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Auther.
func NewAuthenticator(store UserStore, tokens TokenService) *Auther {
	return &Auther{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Login verifies the email/password pair and issues a signed token.
// Unknown email and wrong password both return ErrInvalidCredentials so the
// caller cannot enumerate accounts. A failed login is terminal for the
// request; nothing is retried.
func (a *Auther) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			a.logger.Debug("login for unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		a.logger.Error("login user lookup failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := a.store.VerifyPassword(ctx, user, password); err != nil {
		a.logger.Debug("login password verification failed", "user_id", user.ID.String())
		return nil, ErrInvalidCredentials
	}

	roles, err := a.store.ListRoles(ctx, user.ID)
	if err != nil {
		a.logger.Error("login failed to list roles", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list user roles")
	}

	identity := IdentityFromUser(user)
	claims := BuildClaims(identity, roles)

	token, expiresAt, err := a.tokens.Issue(identity.ID(), claims)
	if err != nil {
		a.logger.Error("login token issuance failed", "error", err)
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  identity,
		Roles:     roles,
	}, nil
}
