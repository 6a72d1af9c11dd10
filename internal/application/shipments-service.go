package application

import (
	"time"

	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/logger"
)

type ServiceConfig struct {
	SeedDemo   bool
	IDStrategy string
	Validation domain.ValidationOptions
	Notifier   Notifier
	Now        func() time.Time
}

// ShipmentsService wires the store and the workflows that share it.
type ShipmentsService struct {
	Store    *ShipmentStore
	Company  *CompanyWorkflow
	Driver   *DriverWorkflow
	Manifest *ManifestSelection
}

func NewShipmentsService(cfg ServiceConfig) (*ShipmentsService, error) {
	store := NewShipmentStore()
	if cfg.SeedDemo {
		n := SeedDemo(store)
		logger.Info("demo shipments seeded", "count", n)
	}

	ids, err := NewIDGenerator(cfg.IDStrategy, store.Len())
	if err != nil {
		return nil, err
	}

	return &ShipmentsService{
		Store: store,
		Company: NewCompanyWorkflow(store, CompanyOptions{
			IDs:        ids,
			Validation: cfg.Validation,
			Notifier:   cfg.Notifier,
			Now:        cfg.Now,
		}),
		Driver: NewDriverWorkflow(store, DriverOptions{
			Notifier: cfg.Notifier,
			Now:      cfg.Now,
		}),
		Manifest: NewManifestSelection(store),
	}, nil
}
