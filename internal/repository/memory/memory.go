// Package memory provides an in-memory MessageRepository used by tests. It
// mirrors the PostgreSQL implementation's observable behavior, including
// rejection of duplicate codes and read-time expiry filtering.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Shravan-Padale771/QuickBackend/internal/model"
	"github.com/Shravan-Padale771/QuickBackend/internal/repository"
)

var _ repository.MessageRepository = (*MessageRepository)(nil)

// MessageRepository stores messages in a slice guarded by a RWMutex.
type MessageRepository struct {
	mu       sync.RWMutex
	nextID   int64
	messages []model.Message
}

// NewMessageRepository creates an empty in-memory repository.
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{nextID: 1}
}

// Create assigns an id and created_at and appends the row. Duplicate codes
// are rejected the way the database's unique constraint would reject them.
func (r *MessageRepository) Create(_ context.Context, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.messages {
		if m.Code == msg.Code {
			return repository.ErrDuplicateCode
		}
	}

	msg.ID = r.nextID
	r.nextID++
	msg.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *msg)
	return nil
}

// CodeExists reports whether any row holds the code.
func (r *MessageRepository) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.messages {
		if m.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// GetLiveByCode returns the row for code if it has not expired.
func (r *MessageRepository) GetLiveByCode(_ context.Context, code string, now time.Time) (*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.messages {
		if m.Code == code && m.ExpiresAt.After(now) {
			found := m
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListAll returns a copy of every row, newest first.
func (r *MessageRepository) ListAll(_ context.Context) ([]model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Message, len(r.messages))
	for i, m := range r.messages {
		out[len(r.messages)-1-i] = m
	}
	return out, nil
}

// DeleteByID removes the row with the given id.
func (r *MessageRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
