package application

import (
	"context"
	"sync"
	"time"

	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/logger"
)

// DraftPatch carries the form fields a company user changed. Nil means untouched.
type DraftPatch struct {
	Date             *string `json:"date"`
	DriverName       *string `json:"driverName"`
	Project          *string `json:"project"`
	TransportCompany *string `json:"transportCompany"`
	Address          *string `json:"address"`
}

type ItemPatch struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	Unit     *string `json:"unit"`
}

type CompanyOptions struct {
	IDs        IDGenerator
	ItemIDs    IDGenerator
	Validation domain.ValidationOptions
	Notifier   Notifier
	Now        func() time.Time
}

// CompanyWorkflow builds shipments from drafts and appends them to the store.
// It also keeps the dashboard's in-progress draft.
type CompanyWorkflow struct {
	store *ShipmentStore
	opts  CompanyOptions

	mu    sync.Mutex
	draft domain.Draft
}

func NewCompanyWorkflow(store *ShipmentStore, opts CompanyOptions) *CompanyWorkflow {
	if opts.IDs == nil {
		opts.IDs = NewSequenceIDs(store.Len())
	}
	if opts.ItemIDs == nil {
		opts.ItemIDs = UUIDs{}
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CompanyWorkflow{
		store: store,
		opts:  opts,
		draft: domain.NewDraft(opts.Now()),
	}
}

// CreateShipment validates draft and appends a pending shipment. Nothing changes on error.
func (c *CompanyWorkflow) CreateShipment(ctx context.Context, draft domain.Draft) (domain.Shipment, error) {
	// Checked here as well as in NewShipment so a rejected draft does not use up an id.
	if err := draft.Validate(c.opts.Validation); err != nil {
		return domain.Shipment{}, err
	}
	draft = c.withUniqueItemIDs(draft)
	sh, err := domain.NewShipment(c.opts.IDs.NewID(), draft, c.opts.Validation)
	if err != nil {
		return domain.Shipment{}, err
	}
	c.store.Append(sh)
	logger.Info("shipment created", "id", sh.ID, "driver", sh.DriverName, "items", len(sh.Items))

	c.opts.Notifier.Notify(ctx, Event{
		Type:       EventShipmentCreated,
		ShipmentID: sh.ID,
		Shipment:   sh.Clone(),
		At:         c.opts.Now(),
	})
	return sh, nil
}

// withUniqueItemIDs gives every item with an empty or repeated id a fresh one.
// Delivered quantities are keyed by item id, so ids must not collide within a shipment.
func (c *CompanyWorkflow) withUniqueItemIDs(d domain.Draft) domain.Draft {
	d = d.Clone()
	seen := make(map[string]struct{}, len(d.Items))
	for i := range d.Items {
		it := &d.Items[i]
		_, dup := seen[it.ID]
		for it.ID == "" || dup {
			it.ID = c.opts.ItemIDs.NewID()
			_, dup = seen[it.ID]
		}
		seen[it.ID] = struct{}{}
	}
	return d
}

func (c *CompanyWorkflow) Draft() domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

func (c *CompanyWorkflow) UpdateDraft(p DraftPatch) domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Date != nil {
		c.draft.Date = *p.Date
	}
	if p.DriverName != nil {
		c.draft.DriverName = *p.DriverName
	}
	if p.Project != nil {
		c.draft.Project = *p.Project
	}
	if p.TransportCompany != nil {
		c.draft.TransportCompany = *p.TransportCompany
	}
	if p.Address != nil {
		c.draft.Address = *p.Address
	}
	return c.draft.Clone()
}

func (c *CompanyWorkflow) AddItem() domain.ShipmentItem {
	it := domain.NewDraftItem(c.opts.ItemIDs.NewID())

	c.mu.Lock()
	c.draft.Items = append(c.draft.Items, it)
	c.mu.Unlock()
	return it
}

func (c *CompanyWorkflow) UpdateItem(itemID string, p ItemPatch) (domain.ShipmentItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.draft.Items {
		it := &c.draft.Items[i]
		if it.ID != itemID {
			continue
		}
		if p.Name != nil {
			it.Name = *p.Name
		}
		if p.Quantity != nil {
			it.Quantity = *p.Quantity
		}
		if p.Unit != nil {
			it.Unit = *p.Unit
		}
		return it.Clone(), nil
	}
	return domain.ShipmentItem{}, domain.ErrItemNotFound
}

func (c *CompanyWorkflow) RemoveItem(itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, it := range c.draft.Items {
		if it.ID == itemID {
			c.draft.Items = append(c.draft.Items[:i], c.draft.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// Submit creates a shipment from the held draft and resets the form on success.
func (c *CompanyWorkflow) Submit(ctx context.Context) (domain.Shipment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sh, err := c.CreateShipment(ctx, c.draft)
	if err != nil {
		return domain.Shipment{}, err
	}
	c.draft = domain.NewDraft(c.opts.Now())
	return sh, nil
}
