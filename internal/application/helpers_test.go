package application

import (
	"context"
	"sync"
	"time"

	"github.com/RaikyD/digital-link/internal/domain"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recordingNotifier) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

type fixedIDs struct {
	ids []string
	n   int
}

func (f *fixedIDs) NewID() string {
	id := f.ids[f.n]
	f.n++
	return id
}

func boxDraft() domain.Draft {
	return domain.Draft{
		Date:             "2024-01-20",
		Items:            []domain.ShipmentItem{{ID: "box", Name: "Box", Quantity: 5, Unit: "boxes"}},
		DriverName:       "Driver 1",
		Project:          "Equinor",
		TransportCompany: "Schenker",
		Address:          "X",
	}
}

type fixture struct {
	store    *ShipmentStore
	company  *CompanyWorkflow
	driver   *DriverWorkflow
	manifest *ManifestSelection
	events   *recordingNotifier
}

func newFixture() *fixture {
	store := NewShipmentStore()
	events := &recordingNotifier{}
	return &fixture{
		store: store,
		company: NewCompanyWorkflow(store, CompanyOptions{
			IDs:        NewSequenceIDs(0),
			ItemIDs:    NewSequenceIDs(100),
			Validation: domain.DefaultValidationOptions(),
			Notifier:   events,
			Now:        clock,
		}),
		driver:   NewDriverWorkflow(store, DriverOptions{Notifier: events, Now: clock}),
		manifest: NewManifestSelection(store),
		events:   events,
	}
}
