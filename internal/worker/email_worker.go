package worker

import (
	"context"
	"encoding/json"
	"fmt"
)

// Mailer sends an email. Implemented by infra's SMTP sender.
type Mailer interface {
	Send(to []string, subject, body string, html bool) error
}

// EmailHandler delivers TaskSendEmail tasks through the configured mailer.
type EmailHandler struct {
	mailer Mailer
}

func NewEmailHandler(mailer Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

func (h *EmailHandler) Handle(_ context.Context, task Task) error {
	var p EmailPayload
	if err := json.Unmarshal(task.Payload, &p); err != nil {
		return fmt.Errorf("decode email payload: %w", err)
	}
	if len(p.To) == 0 {
		return fmt.Errorf("email task %s has no recipients", task.ID)
	}
	return h.mailer.Send(p.To, p.Subject, p.Body, p.HTML)
}
