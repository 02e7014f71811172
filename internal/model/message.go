package model

import "time"

// Message represents a relayed message row in PostgreSQL. Content is the
// sender-supplied body; the column and wire name is "message".
type Message struct {
	ID        int64     `db:"id" json:"id"`
	Topic     string    `db:"topic" json:"topic"`
	Author    string    `db:"author" json:"author"`
	Content   string    `db:"message" json:"message"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}
