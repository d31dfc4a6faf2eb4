package worker

// cierre_worker.go
// Processes complete-close jobs from QueueCierre:
//  1. Load the snapshot
//  2. Generate the PDF report
//  3. Publish caja.cerrada to the broker (when configured)
//  4. Queue the report mail (when REPORT_EMAIL_TO is set)

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gympos/internal/infra"
	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CierreJobPayload is the job envelope sent to QueueCierre.
type CierreJobPayload struct {
	CierreID string `json:"cierre_id"`
}

type CierreWorkerConfig struct {
	GymName  string
	PDFDir   string
	ReportTo string
}

type CierreWorker struct {
	cierres   CierreFinder
	publisher EventPublisher
	emails    EmailQueue
	brokerCB  *infra.CircuitBreaker
	cfg       CierreWorkerConfig

	generarPDF func(c *model.CierreCaja, gymName, dir string) (string, error)
}

// NewCierreWorker wires the close report worker. publisher may be nil.
func NewCierreWorker(cierres CierreFinder, publisher EventPublisher, emails EmailQueue, cfg CierreWorkerConfig) *CierreWorker {
	return &CierreWorker{
		cierres:    cierres,
		publisher:  publisher,
		emails:     emails,
		brokerCB:   infra.NewCircuitBreaker("amqp", infra.DefaultCBConfig()),
		cfg:        cfg,
		generarPDF: infra.GenerateCierrePDF,
	}
}

func (w *CierreWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload CierreJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return infra.Permanent(fmt.Errorf("cierre_worker: invalid payload: %w", err))
	}
	id, err := uuid.Parse(payload.CierreID)
	if err != nil {
		return infra.Permanent(fmt.Errorf("cierre_worker: invalid cierre_id %q", payload.CierreID))
	}

	cierre, err := w.cierres.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return infra.Permanent(fmt.Errorf("cierre_worker: cierre %s not found", id))
	}
	if err != nil {
		return fmt.Errorf("cierre_worker: load cierre: %w", err)
	}

	pdfPath, err := w.generarPDF(cierre, w.cfg.GymName, w.cfg.PDFDir)
	if err != nil {
		// the event and the mail body still carry the totals
		log.Warn().Err(err).Str("cierre_id", payload.CierreID).Msg("cierre_worker: PDF generation failed")
		pdfPath = ""
	} else {
		log.Info().Str("pdf", pdfPath).Str("cierre_id", payload.CierreID).Msg("cierre_worker: PDF generated")
	}

	if w.publisher != nil {
		err := w.brokerCB.Execute(func() error { return w.publisher.PublishCierre(ctx, cierre) })
		if err != nil {
			return fmt.Errorf("cierre_worker: publish: %w", err)
		}
	}

	if w.cfg.ReportTo != "" {
		job := EmailJobPayload{
			ToEmail: w.cfg.ReportTo,
			Subject: fmt.Sprintf("%s - Cierre de caja %s", w.cfg.GymName, cierre.Fecha),
			Body:    cuerpoReporte(cierre),
			PDFPath: pdfPath,
		}
		if err := w.emails.EnqueueEmail(ctx, job); err != nil {
			return fmt.Errorf("cierre_worker: enqueue email: %w", err)
		}
	}
	return nil
}

func cuerpoReporte(c *model.CierreCaja) string {
	body := fmt.Sprintf(
		"Cierre de caja del %s\n\nCuotas: $%s\nBebidas: $%s\nTotal ingresos: $%s\nGastos: $%s\nTotal neto: $%s\n\nNeto en efectivo: $%s\nNeto electronico: $%s\n",
		c.Fecha,
		c.TotalCuotas.StringFixed(2),
		c.TotalBebidas.StringFixed(2),
		c.TotalGeneral.StringFixed(2),
		c.TotalGastos.StringFixed(2),
		c.TotalNeto.StringFixed(2),
		c.NetoEfectivo.StringFixed(2),
		c.NetoElectronico.StringFixed(2),
	)
	if c.Desvio != nil && c.ClasificacionDesvio != nil && !c.Desvio.IsZero() {
		body += fmt.Sprintf("\nDesvio contra lo informado: $%s (%s)\n", c.Desvio.StringFixed(2), *c.ClasificacionDesvio)
	}
	return body
}
