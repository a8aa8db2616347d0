package worker

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task type identifiers. Each registered handler owns one type.
const (
	TaskSendEmail = "send_email"
)

// Task is the unit of work carried on the queue. Payload is opaque to the
// queue; the handler registered for Type decodes it.
type Task struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// NewTask wraps a payload into a Task, assigning a fresh ID.
func NewTask(taskType string, payload interface{}) (Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:         uuid.NewString(),
		Type:       taskType,
		Payload:    raw,
		EnqueuedAt: time.Now(),
	}, nil
}

// EmailPayload is the payload for TaskSendEmail.
type EmailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	HTML    bool     `json:"html"`
}
