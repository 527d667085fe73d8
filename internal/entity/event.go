package entity

import "time"

const (
	UserCreated = "created"
	UserUpdated = "updated"
	UserDeleted = "deleted"
)

// UserEvent is published on the user topic after every successful mutation.
type UserEvent struct {
	Type        string    `json:"type"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"date_of_birth"`
	OccurredAt  time.Time `json:"occurred_at"`
}
