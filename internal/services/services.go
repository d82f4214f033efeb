package services

import (
	"context"
	"errors"
	"time"

	"todocore/internal/models"
	"todocore/internal/query"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrValidation         = errors.New("validation failed")
)

// Identity is the authenticated caller extracted from an access token.
type Identity struct {
	UserID string
	Role   models.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type AuthService interface {
	// Login verifies the credentials against the user store and mints
	// a signed, time-bounded access token carrying the user's role.
	//
	// It returns ErrInvalidCredentials for an unknown email as well
	// as for a password mismatch; callers cannot tell the two apart.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ParseToken validates the signature and expiry of an access
	// token and extracts the caller's identity. Any failure, a
	// malformed, tampered or expired token alike, is reported as
	// ErrUnauthenticated. Validation is a pure computation with no
	// server-side lookup.
	ParseToken(token string) (*Identity, error)

	// CurrentUser returns the caller's profile, or ErrUserNotFound
	// if the account behind a still-valid token is gone.
	CurrentUser(ctx context.Context, identity Identity) (*models.User, error)

	// ListUsers returns every account. Admin only; other callers get
	// ErrForbidden.
	ListUsers(ctx context.Context, identity Identity) ([]models.User, error)
}

type LoginResult struct {
	UserID      string
	Role        models.Role
	Name        string
	AccessToken string
	ExpiresAt   time.Time
}

type TodoService interface {
	// Create stores a new todo owned by the caller. The title must be
	// non-empty (ErrValidation) and a due date, if set, is normalized
	// to its noon-UTC anchor before storage.
	Create(ctx context.Context, identity Identity, params CreateTodoParams) (*models.Todo, error)

	// Get returns a todo by id. Reading someone else's todo requires
	// the admin role, otherwise ErrForbidden.
	Get(ctx context.Context, identity Identity, id string) (*models.Todo, error)

	// Update applies the non-nil patch fields. Only the owner or an
	// admin may mutate (ErrForbidden); unknown ids yield
	// ErrTodoNotFound. Due dates are normalized as on create.
	Update(ctx context.Context, identity Identity, id string, patch TodoPatch) (*models.Todo, error)

	// Delete removes a todo with the same authorization rules as
	// Update. Deleting an already deleted id yields ErrTodoNotFound,
	// never a silent success.
	Delete(ctx context.Context, identity Identity, id string) error

	// Query runs the filter/sort/page engine over the caller's own
	// todos, or over another user's when an admin sets ActingAs.
	Query(ctx context.Context, identity Identity, params QueryParams) (*query.Result, error)
}

type CreateTodoParams struct {
	Title       string
	Description string
	Status      models.Status
	Duration    string
	DueDate     *time.Time
}

type TodoPatch struct {
	Title       *string
	Description *string
	Status      *models.Status
	Duration    *string
	DueDate     *time.Time
}

type QueryParams struct {
	// ActingAs scopes the query to another user's todos. Admin only;
	// a non-admin setting it gets ErrForbidden rather than a silent
	// fallback to their own scope.
	ActingAs string

	query.Params
}
