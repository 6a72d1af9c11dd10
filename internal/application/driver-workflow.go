package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/logger"
)

// SigningSession is the open signature dialog. There is at most one.
type SigningSession struct {
	ShipmentID string `json:"shipmentId"`
	SignerName string `json:"signerName"`
}

type DriverOptions struct {
	Notifier Notifier
	Now      func() time.Time
}

type overrideKey struct {
	shipmentID string
	itemID     string
}

// DriverWorkflow records delivered quantities and signs pending shipments.
type DriverWorkflow struct {
	store *ShipmentStore
	opts  DriverOptions

	mu        sync.Mutex
	session   *SigningSession
	overrides map[overrideKey]int
}

func NewDriverWorkflow(store *ShipmentStore, opts DriverOptions) *DriverWorkflow {
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &DriverWorkflow{
		store:     store,
		opts:      opts,
		overrides: make(map[overrideKey]int),
	}
}

func (d *DriverWorkflow) Begin(shipmentID string) (SigningSession, error) {
	sh, err := d.store.Get(shipmentID)
	if err != nil {
		return SigningSession{}, err
	}
	if !sh.IsPending() {
		return SigningSession{}, domain.ErrNotPending
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil && d.session.ShipmentID != shipmentID {
		return SigningSession{}, domain.ErrSigningInProgress
	}
	if d.session == nil {
		d.session = &SigningSession{ShipmentID: shipmentID}
	}
	return *d.session, nil
}

func (d *DriverWorkflow) Session() (SigningSession, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return SigningSession{}, false
	}
	return *d.session, true
}

func (d *DriverWorkflow) SetSignerName(name string) (SigningSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return SigningSession{}, domain.ErrNoSigningSession
	}
	d.session.SignerName = name
	return *d.session, nil
}

// Cancel dismisses the dialog and drops uncommitted quantities for its shipment.
func (d *DriverWorkflow) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return
	}
	d.dropOverridesLocked(d.session.ShipmentID)
	d.session = nil
}

// SetDeliveredQuantity stores value clamped to [0, item quantity] and returns what was stored.
// d.mu is held across the pending check so an override never lands after Sign has committed.
func (d *DriverWorkflow) SetDeliveredQuantity(shipmentID, itemID string, value int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sh, err := d.store.Get(shipmentID)
	if err != nil {
		return 0, err
	}
	if !sh.IsPending() {
		return 0, domain.ErrNotPending
	}
	it, ok := sh.Item(itemID)
	if !ok {
		return 0, domain.ErrItemNotFound
	}

	v := domain.ClampDelivered(value, it.Quantity)
	d.overrides[overrideKey{shipmentID, itemID}] = v
	return v, nil
}

// Overrides returns the item quantities the driver adjusted for one shipment.
func (d *DriverWorkflow) Overrides(shipmentID string) map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]int)
	for k, v := range d.overrides {
		if k.shipmentID == shipmentID {
			out[k.itemID] = v
		}
	}
	return out
}

// AllOverrides returns every adjusted quantity, by shipment id then item id.
// Quantities can be adjusted on any pending shipment, not only the one in the open dialog.
func (d *DriverWorkflow) AllOverrides() map[string]map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]map[string]int)
	for k, v := range d.overrides {
		if out[k.shipmentID] == nil {
			out[k.shipmentID] = make(map[string]int)
		}
		out[k.shipmentID][k.itemID] = v
	}
	return out
}

// Sign marks a pending shipment signed. Items without an override count as fully delivered.
func (d *DriverWorkflow) Sign(ctx context.Context, shipmentID, signerName, signature string) (domain.Shipment, error) {
	if strings.TrimSpace(signerName) == "" {
		return domain.Shipment{}, domain.ErrNoSignerName
	}
	if signature == "" {
		return domain.Shipment{}, domain.ErrNoSignature
	}

	d.mu.Lock()
	arrival := d.opts.Now().Format(domain.ArrivalLayout)
	var signed domain.Shipment
	err := d.store.Replace(shipmentID, func(sh domain.Shipment) (domain.Shipment, error) {
		if !sh.IsPending() {
			return sh, domain.ErrNotPending
		}
		partial := false
		for i := range sh.Items {
			it := &sh.Items[i]
			v, ok := d.overrides[overrideKey{shipmentID, it.ID}]
			if !ok {
				v = it.Quantity
			}
			v = domain.ClampDelivered(v, it.Quantity)
			if v < it.Quantity {
				partial = true
			}
			it.Delivered = &v
		}
		sh.Status = domain.StatusSigned
		sh.Signature = signature
		sh.SignatureName = signerName
		sh.ActualTimeOfArrival = arrival
		sh.IsPartialDelivery = partial
		signed = sh
		return sh, nil
	})
	if err != nil {
		d.mu.Unlock()
		logger.Warn("sign failed", "shipment", shipmentID, "err", err)
		return domain.Shipment{}, err
	}
	d.dropOverridesLocked(shipmentID)
	if d.session != nil && d.session.ShipmentID == shipmentID {
		d.session = nil
	}
	d.mu.Unlock()

	logger.Info("shipment signed", "id", shipmentID, "signer", signerName, "partial", signed.IsPartialDelivery)

	d.opts.Notifier.Notify(ctx, Event{
		Type:       EventShipmentSigned,
		ShipmentID: shipmentID,
		Shipment:   signed.Clone(),
		At:         d.opts.Now(),
	})
	return signed, nil
}

func (d *DriverWorkflow) dropOverridesLocked(shipmentID string) {
	for k := range d.overrides {
		if k.shipmentID == shipmentID {
			delete(d.overrides, k)
		}
	}
}
