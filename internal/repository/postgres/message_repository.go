package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shravan-Padale771/QuickBackend/internal/model"
	"github.com/Shravan-Padale771/QuickBackend/internal/repository"
)

// Postgres class 23505: unique_violation.
const uniqueViolationCode = "23505"

var _ repository.MessageRepository = (*MessageRepository)(nil)

// MessageRepository provides PostgreSQL backed message operations.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new repository instance.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a message row and fills in the assigned id and created_at.
// A rejection by the unique constraint on code maps to ErrDuplicateCode.
func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO messages (topic, author, message, code, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`,
		msg.Topic, msg.Author, msg.Content, msg.Code, msg.ExpiresAt,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateCode
		}
		return err
	}
	return nil
}

// CodeExists reports whether any row, live or expired, holds the code.
func (r *MessageRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM messages WHERE code = $1)`, code,
	).Scan(&exists)
	return exists, err
}

// GetLiveByCode returns the non-expired row for code. Expiry is filtered in
// the query so an expired row and a missing row are the same outcome.
func (r *MessageRepository) GetLiveByCode(ctx context.Context, code string, now time.Time) (*model.Message, error) {
	var msg model.Message
	err := r.db.QueryRowContext(ctx, `
        SELECT id, topic, author, message, code, created_at, expires_at
        FROM messages
        WHERE code = $1 AND expires_at > $2`,
		code, now,
	).Scan(&msg.ID, &msg.Topic, &msg.Author, &msg.Content, &msg.Code, &msg.CreatedAt, &msg.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// ListAll returns every row, newest first.
func (r *MessageRepository) ListAll(ctx context.Context) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, topic, author, message, code, created_at, expires_at
        FROM messages
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.Topic, &msg.Author, &msg.Content, &msg.Code, &msg.CreatedAt, &msg.ExpiresAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// DeleteByID removes a row by id.
func (r *MessageRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
