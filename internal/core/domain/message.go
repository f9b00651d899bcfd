package domain

import "time"

// MessageStatus represents the lifecycle state of a message.
type MessageStatus string

const (
	StatusSent MessageStatus = "sent"
	StatusRead MessageStatus = "read"
)

// validTransitions defines the allowed state machine transitions.
// Read is terminal.
var validTransitions = map[MessageStatus][]MessageStatus{
	StatusSent: {StatusRead},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s MessageStatus) CanTransitionTo(next MessageStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Message is a single addressed text message between two users. Messages are
// immutable except for the one transition from sent to read.
type Message struct {
	ID           string        `json:"id" bson:"_id"`
	FromUsername string        `json:"from_username" bson:"from_username"`
	ToUsername   string        `json:"to_username" bson:"to_username"`
	Body         string        `json:"body" bson:"body"`
	Status       MessageStatus `json:"status" bson:"status"`
	SentAt       time.Time     `json:"sent_at" bson:"sent_at"`
	ReadAt       *time.Time    `json:"read_at" bson:"read_at,omitempty"`
}

// HasParticipant reports whether username is the sender or the recipient.
func (m *Message) HasParticipant(username string) bool {
	return username == m.FromUsername || username == m.ToUsername
}

// IsRecipient reports whether username is the intended recipient. Only the
// recipient may mark a message read; the sender may view but never mark it.
func (m *Message) IsRecipient(username string) bool {
	return username == m.ToUsername
}
