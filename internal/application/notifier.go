package application

import (
	"context"
	"time"

	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/logger"
)

type EventType string

const (
	EventShipmentCreated EventType = "shipment.created"
	EventShipmentSigned  EventType = "shipment.signed"
)

type Event struct {
	Type       EventType       `json:"type"`
	ShipmentID string          `json:"shipmentId"`
	Shipment   domain.Shipment `json:"shipment"`
	At         time.Time       `json:"at"`
}

// Notifier is fire-and-forget: implementations deal with their own failures.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ev Event) {
	logger.Info("shipment event", "type", ev.Type, "shipment", ev.ShipmentID, "status", ev.Shipment.Status)
}

type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, ev Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, ev)
		}
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Event) {}
