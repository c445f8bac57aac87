package authkit_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/abeldan/authkit"
)

// MockIdentity implements authkit.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) FirstName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) LastName() string {
	args := m.Called()
	return args.String(0)
}

// MockUserStore implements authkit.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*authkit.User, error) {
	args := m.Called(ctx, email)
	var user *authkit.User
	if v := args.Get(0); v != nil {
		user = v.(*authkit.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*authkit.User, error) {
	args := m.Called(ctx, id)
	var user *authkit.User
	if v := args.Get(0); v != nil {
		user = v.(*authkit.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]*authkit.User, error) {
	args := m.Called(ctx)
	var users []*authkit.User
	if v := args.Get(0); v != nil {
		users = v.([]*authkit.User)
	}
	return users, args.Error(1)
}

func (m *MockUserStore) VerifyPassword(ctx context.Context, user *authkit.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserStore) Create(ctx context.Context, user *authkit.User, password string) (*authkit.User, error) {
	args := m.Called(ctx, user, password)
	var created *authkit.User
	if v := args.Get(0); v != nil {
		created = v.(*authkit.User)
	}
	return created, args.Error(1)
}

func (m *MockUserStore) ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	var roles []string
	if v := args.Get(0); v != nil {
		roles = v.([]string)
	}
	return roles, args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *authkit.User) (*authkit.User, error) {
	args := m.Called(ctx, user)
	var updated *authkit.User
	if v := args.Get(0); v != nil {
		updated = v.(*authkit.User)
	}
	return updated, args.Error(1)
}

// MockLogger implements authkit.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Warn(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.Called(msg, args)
}
