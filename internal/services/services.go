package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrTaskNotFound covers both a missing task and a task the caller
	// may not touch, so an unauthorized caller cannot probe existence.
	ErrTaskNotFound      = errors.New("task not found or not authorized")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidSchedule   = errors.New("task start must precede its end")

	ErrCommentNotFound  = errors.New("comment not found")
	ErrEmptyComment     = errors.New("comment text must not be empty")
	ErrParentMismatch   = errors.New("parent comment belongs to another task")
	ErrPermissionDenied = errors.New("permission denied")
)

// AccessTokenClaims is the payload of an issued bearer token.
type AccessTokenClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Register creates a user with a unique username and email.
	//
	// It hashes the password before storage and returns
	// ErrUsernameTaken or ErrEmailRegistered on a duplicate.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login verifies the credentials and issues a signed bearer token.
	//
	// Unknown username and wrong password both return
	// ErrInvalidCredentials so usernames cannot be enumerated.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// VerifyToken parses and validates a bearer token and returns
	// its claims, or ErrInvalidToken.
	VerifyToken(token string) (*AccessTokenClaims, error)
}

type TaskService interface {
	// Create stores a new task owned by the caller. The start instant
	// must precede the end instant.
	Create(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// List returns the tasks visible to the user: their own plus every
	// shared task, with the owner's username attached.
	List(ctx context.Context, userID string, filter TaskFilter) ([]*models.Task, error)

	// Update replaces the task fields. Owner only; a task that is
	// missing or owned by someone else returns ErrTaskNotFound.
	Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// SetStatus updates only the status. Owner only.
	SetStatus(ctx context.Context, taskID int64, userID, status string) error

	// SetShared toggles the shared flag. Owner only.
	SetShared(ctx context.Context, taskID int64, userID string, shared bool) error

	// Delete removes the task and, by cascade, its comments. Owner only.
	Delete(ctx context.Context, taskID int64, userID string) error

	// SweepOverdue transitions every pending or in-progress task whose
	// end instant is before now to overdue. A single task's failure
	// does not abort the sweep. Returns the number of transitions.
	SweepOverdue(ctx context.Context, now time.Time) (int, error)
}

type CommentService interface {
	// Add attaches a comment (or a reply, when ParentID is set) to a
	// task the caller can read.
	Add(ctx context.Context, params AddCommentParams) (*models.Comment, error)

	// ListByTask returns the task's comments with author usernames.
	ListByTask(ctx context.Context, taskID int64, userID string) ([]*models.Comment, error)

	// Delete removes a comment. Allowed for its author, or for the
	// task owner when the task is shared.
	Delete(ctx context.Context, taskID, commentID int64, userID string) error
}

type UserService interface {
	// List returns all registered users, without password hashes.
	List(ctx context.Context) ([]*models.User, error)
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

type LoginParams struct {
	Username string
	Password string
}

type LoginResult struct {
	UserID    string
	Username  string
	Token     string
	ExpiresAt time.Time
}

type CreateTaskParams struct {
	UserID      string
	Name        string
	Description string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Status      string
	Priority    string
	Category    string
}

type UpdateTaskParams struct {
	ID int64
	CreateTaskParams
}

type AddCommentParams struct {
	TaskID   int64
	UserID   string
	ParentID *int64
	Text     string
}

// TaskFilter narrows the task listing. Zero value means no filtering.
type TaskFilter struct {
	Status   string
	Category string
}

// Store interfaces implemented by internal/storage/postgres. Conditional
// mutations report whether a row matched, so the services can map zero
// matches to ErrTaskNotFound without a prior existence probe.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	ByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	ByID(ctx context.Context, id int64) (*models.Task, error)
	VisibleTo(ctx context.Context, userID string, filter TaskFilter) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (bool, error)
	SetStatus(ctx context.Context, id int64, userID, status string, updatedAt time.Time) (bool, error)
	SetShared(ctx context.Context, id int64, userID string, shared bool, updatedAt time.Time) (bool, error)
	Delete(ctx context.Context, id int64, userID string) (bool, error)

	// Active returns tasks still subject to the overdue transition.
	Active(ctx context.Context) ([]*models.Task, error)
	// MarkOverdue conditionally transitions one task; it matches only
	// while the status is still pending or in-progress, so a completed
	// status set concurrently is never overwritten.
	MarkOverdue(ctx context.Context, id int64, updatedAt time.Time) (bool, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ByID(ctx context.Context, id int64) (*models.Comment, error)
	ByTask(ctx context.Context, taskID int64) ([]*models.Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
