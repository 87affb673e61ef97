package events

import (
	"time"

	"github.com/galsan/jungang-heights-api/internal/domain"
)

// EventType identifies a domain event.
type EventType string

const (
	EventRegistrationCreated       EventType = "registration.created"
	EventRegistrationStatusChanged EventType = "registration.status_changed"
	EventRegistrationDeleted       EventType = "registration.deleted"
)

// Event is the envelope published through the dispatcher.
type Event struct {
	ID             string
	Type           EventType
	RegistrationID int64
	Timestamp      time.Time
	Payload        any
}

// RegistrationCreatedPayload describes a freshly captured lead.
type RegistrationCreatedPayload struct {
	Name         string
	Phone        string
	InterestType string
}

// RegistrationStatusChangedPayload describes an admin status change.
type RegistrationStatusChangedPayload struct {
	NewStatus domain.Status
}
