package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/goldendrops/storefront/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp       EventType = "user_signed_up"
	EventAdminSignedUp      EventType = "admin_signed_up"
	EventUserStatusChanged  EventType = "user_status_changed"
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Actor identifies who caused an event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services. SubjectID is the
// account or order the event is about.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, subjectID string, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AccountCreatedPayload payload.
type AccountCreatedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	Items int     `json:"items"`
	Total float64 `json:"total"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	UserID string             `json:"user_id"`
	Status domain.OrderStatus `json:"status"`
}
