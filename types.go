package authkit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Identity is the read-only view of an authenticated user that the token
// layer consumes. The store owns the backing record.
type Identity interface {
	ID() string
	Username() string
	Email() string
	FirstName() string
	LastName() string
}

// UserStore is the capability interface the authentication flow depends on.
// Any backing store satisfying this contract is substitutable.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// VerifyPassword compares the cleartext password against the stored
	// hash. It returns ErrMismatchedHashAndPassword on failure.
	VerifyPassword(ctx context.Context, user *User, password string) error
	// Create registers a new user, hashing the password and assigning the
	// default role when the user carries none.
	Create(ctx context.Context, user *User, password string) (*User, error)
	ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
	Update(ctx context.Context, user *User) (*User, error)
}

// Config holds auth options
type Config interface {
	GetSigningSecret() string
	GetIssuer() string
	GetAudience() string
	GetExpiryMinutes() int
	GetCookieName() string
}

type defLogger struct{}

func (d defLogger) Debug(msg string, args ...any) { d.print("DBG", msg, args...) }
func (d defLogger) Info(msg string, args ...any)  { d.print("INF", msg, args...) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("WRN", msg, args...) }
func (d defLogger) Error(msg string, args ...any) { d.print("ERR", msg, args...) }

func (d defLogger) print(level, msg string, args ...any) {
	out := fmt.Sprintf("[%s] AUTH %s", level, msg)
	for i := 0; i+1 < len(args); i += 2 {
		out += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	fmt.Println(out)
}
