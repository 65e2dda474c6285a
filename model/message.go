package model

import "time"

// MessageEntity represents the admin_messages table entity
type MessageEntity struct {
	ID        uint64    `db:"id" json:"id"`
	SenderID  uint64    `db:"sender_id" json:"sender_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SendMessageRequest for users writing to the admin inbox
type SendMessageRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Body  string `json:"body" validate:"required"`
}
