package models

import "time"

// Message is one entry in a conversation between a worker and the agency or
// a client contact.
type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	SenderID       string    `db:"sender_id" json:"sender_id"`
	SenderName     string    `db:"sender_name" json:"sender_name"`
	RecipientID    string    `db:"recipient_id" json:"recipient_id"`
	Body           string    `db:"body" json:"body"`
	Read           bool      `db:"read" json:"read"`
	SentAt         time.Time `db:"sent_at" json:"sent_at"`
}

// Conversation summarises a message thread for list views.
type Conversation struct {
	ID          string    `db:"id" json:"id"`
	Subject     string    `db:"subject" json:"subject"`
	LastMessage string    `db:"last_message" json:"last_message"`
	LastSentAt  time.Time `db:"last_sent_at" json:"last_sent_at"`
	UnreadCount int       `db:"unread_count" json:"unread_count"`
}
