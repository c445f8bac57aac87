package authkit

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunUserStore is the bun-backed UserStore implementation.
type BunUserStore struct {
	db     *bun.DB
	logger Logger
}

var _ UserStore = (*BunUserStore)(nil)

// NewUserStore creates a bun-backed user store. It registers the m2m join
// model so role relations resolve.
func NewUserStore(db *bun.DB) *BunUserStore {
	db.RegisterModel((*UserRoleAssignment)(nil))
	return &BunUserStore{
		db:     db,
		logger: defLogger{},
	}
}

func (s *BunUserStore) WithLogger(logger Logger) *BunUserStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// CreateSchema creates the users, roles, and user_roles tables when absent.
func (s *BunUserStore) CreateSchema(ctx context.Context) error {
	models := []any{
		(*User)(nil),
		(*Role)(nil),
		(*UserRoleAssignment)(nil),
	}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create schema")
		}
	}
	return nil
}

func (s *BunUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Relation("Roles").
		Where("usr.email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return user, nil
}

func (s *BunUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrIdentityNotFound
	}

	user := &User{}
	err = s.db.NewSelect().
		Model(user).
		Relation("Roles").
		Where("usr.id = ?", uid).
		Scan(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return user, nil
}

func (s *BunUserStore) List(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.db.NewSelect().
		Model(&users).
		Relation("Roles").
		Order("usr.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return users, nil
}

// VerifyPassword compares the cleartext password against the stored hash.
func (s *BunUserStore) VerifyPassword(_ context.Context, user *User, password string) error {
	if user == nil {
		return ErrIdentityNotFound
	}
	return ComparePasswordAndHash(password, user.PasswordHash)
}

// Create registers a new user. The password is hashed before the insert,
// the username falls back to the email local part, and the default role is
// created and assigned when the user carries none.
func (s *BunUserStore) Create(ctx context.Context, user *User, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = hash
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Username == "" {
		user.Username = usernameFromEmail(user.Email)
	}

	roleNames := user.RoleNames()
	if len(roleNames) == 0 {
		roleNames = []string{RoleUser}
	}
	user.Roles = nil

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*User)(nil)).
			Where("usr.email = ?", user.Email).
			Exists(ctx)
		if err != nil {
			return mapStoreError(err)
		}
		if exists {
			return ErrDuplicateEmail
		}

		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		for _, name := range roleNames {
			role, err := s.ensureRoleTx(ctx, tx, name)
			if err != nil {
				return err
			}

			assignment := &UserRoleAssignment{
				UserID: user.ID,
				RoleID: role.ID,
			}
			if _, err := tx.NewInsert().Model(assignment).Exec(ctx); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "could not assign role")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(ctx, user.ID.String())
}

func (s *BunUserStore) ListRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var roles []*Role
	err := s.db.NewSelect().
		Model(&roles).
		Join("JOIN user_roles AS usrol ON usrol.role_id = rol.id").
		Where("usrol.user_id = ?", userID).
		OrderExpr("usrol.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names, nil
}

// Update persists profile fields. Only first and last name are mutable
// through this path.
func (s *BunUserStore) Update(ctx context.Context, user *User) (*User, error) {
	now := time.Now()
	user.UpdatedAt = &now

	res, err := s.db.NewUpdate().
		Model(user).
		Column("first_name", "last_name", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrIdentityNotFound
	}

	return s.FindByID(ctx, user.ID.String())
}

// ensureRoleTx fetches a role by name, creating it when missing.
func (s *BunUserStore) ensureRoleTx(ctx context.Context, tx bun.Tx, name string) (*Role, error) {
	role := &Role{}
	err := tx.NewSelect().
		Model(role).
		Where("rol.name = ?", name).
		Scan(ctx)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, mapStoreError(err)
	}

	role = &Role{ID: uuid.New(), Name: name}
	if _, err := tx.NewInsert().Model(role).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create role")
	}

	s.logger.Info("created role", "role", name)
	return role, nil
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func mapStoreError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrIdentityNotFound
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "store query failed")
}
