package authkit

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// AccountController exposes the account HTTP surface: login, logout,
// registration, and profile reads/updates.
type AccountController struct {
	Debug     bool
	Logger    Logger
	Store     UserStore
	Auther    Authenticator
	Transport *CookieTransport
	Validator TokenValidator
}

type AccountControllerOption func(*AccountController) *AccountController

func NewAccountController(opts ...AccountControllerOption) *AccountController {
	c := &AccountController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Store == nil {
		panic("Missing UserStore in account controller...")
	}
	if c.Auther == nil {
		panic("Missing Authenticator in account controller...")
	}
	if c.Transport == nil {
		panic("Missing CookieTransport in account controller...")
	}
	if c.Validator == nil {
		panic("Missing TokenValidator in account controller...")
	}

	return c
}

func WithControllerLogger(l Logger) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func WithStore(store UserStore) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Store = store
		return c
	}
}

func WithAuthenticator(auther Authenticator) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Auther = auther
		return c
	}
}

func WithTransport(transport *CookieTransport) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Transport = transport
		return c
	}
}

func WithValidator(validator TokenValidator) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Validator = validator
		return c
	}
}

// RegisterAccountRoutes mounts the account routes. Profile routes require a
// valid session cookie; login, logout, and registration do not run the
// middleware (logout checks the cookie itself so a missing cookie is a 400,
// not a 401).
func RegisterAccountRoutes(app fiber.Router, controller *AccountController) {
	protected := Protected(MiddlewareConfig{
		Validator: controller.Validator,
		Transport: controller.Transport,
	})

	account := app.Group("/account")
	account.Post("/login", controller.LoginPost)
	account.Post("/logout", controller.LogoutPost)
	account.Post("/register", controller.RegisterPost)
	account.Get("/users", protected, controller.UsersList)
	account.Get("/users/:id", protected, controller.UserShow)
	account.Put("/users/:id", protected, controller.UserUpdate)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// LoginResponse is the successful login body. DisplayName is the first
// name; password and key material never appear here.
type LoginResponse struct {
	IsAuthenticationSuccessful bool     `json:"isAuthenticationSuccessful"`
	ErrorMessage               string   `json:"errorMessage,omitempty"`
	UserID                     string   `json:"userId,omitempty"`
	UserName                   string   `json:"userName,omitempty"`
	DisplayName                string   `json:"displayName,omitempty"`
	Email                      string   `json:"email,omitempty"`
	Roles                      []string `json:"roles,omitempty"`
}

// RegisterRequest payload
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			validation.RuneLength(0, 256),
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.RuneLength(8, 72),
		),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(func(value any) error {
				if value != r.Password {
					return errors.New("the password and confirmation password must match")
				}
				return nil
			}),
		),
	)
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ProfileResponse is the profile DTO. Names are null until the first
// profile update.
type ProfileResponse struct {
	ID        string  `json:"id"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     string  `json:"email"`
}

func profileFromUser(user *User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID.String(),
		FirstName: nullableString(user.FirstName),
		LastName:  nullableString(user.LastName),
		Email:     user.Email,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *AccountController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Debug("login body parse failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"request body must be valid JSON"},
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": validationMessages(err),
		})
	}

	if a.Debug {
		a.Logger.Debug("login request", "payload", print.MaybePrettyJSON(LoginRequest{Email: payload.Email}))
	}

	result, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if IsAuthError(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(LoginResponse{
				IsAuthenticationSuccessful: false,
				ErrorMessage:               "invalid email or password",
			})
		}
		return a.renderError(c, err)
	}

	a.Transport.Attach(c, result.Token, result.ExpiresAt)

	return c.JSON(LoginResponse{
		IsAuthenticationSuccessful: true,
		UserID:                     result.Identity.ID(),
		UserName:                   result.Identity.Username(),
		DisplayName:                result.Identity.FirstName(),
		Email:                      result.Identity.Email(),
		Roles:                      result.Roles,
	})
}

// LogoutPost requires an existing session cookie: a logout attempt without
// one is a client error and mutates nothing.
func (a *AccountController) LogoutPost(c *fiber.Ctx) error {
	raw, ok := a.Transport.Extract(c)
	if !ok {
		return a.renderError(c, ErrNoSessionCookie)
	}

	if _, err := a.Validator.Validate(raw); err != nil {
		return a.renderError(c, err)
	}

	if err := a.Transport.Clear(c); err != nil {
		return a.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterPost creates a new identity. Registration does not issue a token:
// the new account logs in separately.
func (a *AccountController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"request body must be valid JSON"},
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": validationMessages(err),
		})
	}

	user := &User{Email: payload.Email}

	created, err := a.Store.Create(c.UserContext(), user, payload.Password)
	if err != nil {
		// Store rejections (duplicate email, weak password) surface as a
		// list of human-readable reasons, same shape as request validation.
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) &&
			(richErr.Category == goerrors.CategoryConflict || richErr.Category == goerrors.CategoryValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []string{richErr.Message},
			})
		}
		return a.renderError(c, err)
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/account/users/%s", created.ID))
	return c.Status(fiber.StatusCreated).JSON(profileFromUser(created))
}

func (a *AccountController) UsersList(c *fiber.Ctx) error {
	users, err := a.Store.List(c.UserContext())
	if err != nil {
		return a.renderError(c, err)
	}

	profiles := make([]ProfileResponse, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, profileFromUser(user))
	}

	return c.JSON(profiles)
}

func (a *AccountController) UserShow(c *fiber.Ctx) error {
	user, err := a.Store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(profileFromUser(user))
}

// UserUpdate persists profile names. The caller's email claim must match
// the target user's email.
func (a *AccountController) UserUpdate(c *fiber.Ctx) error {
	claims, ok := ClaimsFromFiber(c)
	if !ok {
		return a.renderError(c, ErrTokenMalformed)
	}

	user, err := a.Store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.renderError(c, err)
	}

	if claims.Email() == "" || claims.Email() != user.Email {
		return a.renderError(c, ErrInvalidCredentials)
	}

	payload := new(UpdateProfileRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"request body must be valid JSON"},
		})
	}

	user.FirstName = payload.FirstName
	user.LastName = payload.LastName

	updated, err := a.Store.Update(c.UserContext(), user)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.JSON(profileFromUser(updated))
}

// renderError maps rich errors to HTTP responses. Authentication failures
// are rendered uniformly so no validation sub-reason leaks to the client.
func (a *AccountController) renderError(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	if IsAuthError(richErr) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	if status >= fiber.StatusInternalServerError {
		a.Logger.Error("account controller error", "error", err, "category", richErr.Category)
		return c.Status(status).JSON(fiber.Map{
			"error": "An unexpected server error occurred",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": richErr.Message,
	})
}

func validationMessages(err error) []string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for field, ferr := range verrs {
		out = append(out, fmt.Sprintf("%s: %s", field, ferr.Error()))
	}
	sort.Strings(out)
	return out
}
