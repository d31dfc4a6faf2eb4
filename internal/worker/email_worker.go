package worker

// email_worker.go
// Processes email jobs from QueueEmail: sends the close report PDF through
// SMTP behind a circuit breaker.

import (
	"context"
	"encoding/json"
	"fmt"

	"gympos/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer ReportMailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer ReportMailer) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: infra.NewCircuitBreaker("smtp", infra.DefaultCBConfig())}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return infra.Permanent(fmt.Errorf("email_worker: invalid payload: %w", err))
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendReporteCierre(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: close report sent")
	return nil
}
