package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Shravan-Padale771/QuickBackend/internal/model"
)

// ErrNotFound is returned when no row matches the query.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateCode is returned when an insert is rejected by the unique
// constraint on the code column. The service treats this as a signal to
// retry with a fresh code rather than as a failure.
var ErrDuplicateCode = errors.New("repository: duplicate code")

// MessageRepository defines the store operations required by the relay.
type MessageRepository interface {
	// Create persists msg and fills in the store-assigned ID and CreatedAt.
	Create(ctx context.Context, msg *model.Message) error
	// CodeExists reports whether any row already holds the given code,
	// live or expired.
	CodeExists(ctx context.Context, code string) (bool, error)
	// GetLiveByCode returns the row with the given code whose expiry is
	// strictly after now, or ErrNotFound.
	GetLiveByCode(ctx context.Context, code string, now time.Time) (*model.Message, error)
	// ListAll returns every row, newest first.
	ListAll(ctx context.Context) ([]model.Message, error)
	// DeleteByID removes the row with the given id, or ErrNotFound.
	DeleteByID(ctx context.Context, id int64) error
}
