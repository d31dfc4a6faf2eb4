package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gympos/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// QueueCajaCerrada receives one message per complete close.
const QueueCajaCerrada = "caja.cerrada"

// CajaCerradaEvent is the message body published on QueueCajaCerrada.
type CajaCerradaEvent struct {
	CierreID        string `json:"cierre_id"`
	CajaID          string `json:"caja_id"`
	Fecha           string `json:"fecha"`
	TotalGeneral    string `json:"total_general"`
	TotalNeto       string `json:"total_neto"`
	NetoEfectivo    string `json:"neto_efectivo"`
	NetoElectronico string `json:"neto_electronico"`
	Clasificacion   string `json:"clasificacion_desvio,omitempty"`
	CerradaAt       string `json:"cerrada_at"`
}

func NewCajaCerradaEvent(c *model.CierreCaja) CajaCerradaEvent {
	ev := CajaCerradaEvent{
		CierreID:        c.ID.String(),
		CajaID:          c.CajaID.String(),
		Fecha:           c.Fecha,
		TotalGeneral:    c.TotalGeneral.StringFixed(2),
		TotalNeto:       c.TotalNeto.StringFixed(2),
		NetoEfectivo:    c.NetoEfectivo.StringFixed(2),
		NetoElectronico: c.NetoElectronico.StringFixed(2),
		CerradaAt:       c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.ClasificacionDesvio != nil {
		ev.Clasificacion = *c.ClasificacionDesvio
	}
	return ev
}

// EventPublisher publishes register events to RabbitMQ. The connection is
// dialed lazily and redialed after a failure.
type EventPublisher struct {
	url  string
	mu   sync.Mutex
	conn *amqp.Connection
}

func NewEventPublisher(url string) *EventPublisher {
	return &EventPublisher{url: url}
}

// PublishCierre publishes a persistent caja.cerrada message.
func (p *EventPublisher) PublishCierre(ctx context.Context, c *model.CierreCaja) error {
	body, err := json.Marshal(NewCajaCerradaEvent(c))
	if err != nil {
		return fmt.Errorf("amqp: marshal event: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(QueueCajaCerrada, true, false, false, false, nil); err != nil {
		p.reset()
		return fmt.Errorf("amqp: queue declare: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", QueueCajaCerrada, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    c.ID.String(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("amqp: publish: %w", err)
	}
	log.Info().Str("cierre_id", c.ID.String()).Msg("amqp: caja.cerrada published")
	return nil
}

func (p *EventPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("amqp: dial: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		_ = p.conn.Close()
		p.conn = nil
		return nil, fmt.Errorf("amqp: channel: %w", err)
	}
	return ch, nil
}

func (p *EventPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close closes the broker connection, if any.
func (p *EventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
