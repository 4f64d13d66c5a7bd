package events

import (
	"time"

	"github.com/spec-kit/taskboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProjectCreated       EventType = "project_created"
	EventProjectStatusChanged EventType = "project_status_changed"
	EventProjectDeleted       EventType = "project_deleted"
	EventTaskCreated          EventType = "task_created"
	EventTaskStatusChanged    EventType = "task_status_changed"
	EventTaskDeleted          EventType = "task_deleted"
)

// MutationEventTypes lists every event emitted by a write operation, in the
// order services publish them. Cache invalidation subscribes to all of them.
func MutationEventTypes() []EventType {
	return []EventType{
		EventProjectCreated,
		EventProjectStatusChanged,
		EventProjectDeleted,
		EventTaskCreated,
		EventTaskStatusChanged,
		EventTaskDeleted,
	}
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ProjectID string      `json:"project_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	Name   string        `json:"name"`
	Status domain.Status `json:"status"`
}

// ProjectStatusChangedPayload payload.
type ProjectStatusChangedPayload struct {
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
}

// ProjectDeletedPayload payload.
type ProjectDeletedPayload struct {
	Name string `json:"name"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID        string        `json:"task_id"`
	Title         string        `json:"title"`
	Status        domain.Status `json:"status"`
	AssigneeID    string        `json:"assignee_id"`
	AssigneeEmail string        `json:"assignee_email"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	TaskID    string        `json:"task_id"`
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
}

// TaskDeletedPayload payload.
type TaskDeletedPayload struct {
	TaskID string `json:"task_id"`
}
