package worker

import (
	"context"

	"gympos/internal/model"

	"github.com/google/uuid"
)

// Collaborators of the close workers. Implemented by the repositories, the
// infra mailer and publisher, and the Dispatcher.
//
//go:generate mockgen -destination=mocks/mock_worker.go -package=mocks -source=interfaces.go
type CierreFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error)
}

type ReportMailer interface {
	SendReporteCierre(to, subject, body, pdfPath string) error
}

type EventPublisher interface {
	PublishCierre(ctx context.Context, c *model.CierreCaja) error
}

type EmailQueue interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}
