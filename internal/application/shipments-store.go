package application

import (
	"sync"

	"github.com/RaikyD/digital-link/internal/domain"
)

// ShipmentStore is the single in-memory source of truth for a session.
// Records come back as copies; the only way to change one is Replace.
type ShipmentStore struct {
	mu    sync.RWMutex
	list  []domain.Shipment
	index map[string]int
}

func NewShipmentStore() *ShipmentStore {
	return &ShipmentStore{index: make(map[string]int)}
}

// Append adds s to the end. Callers are responsible for a fresh id.
func (s *ShipmentStore) Append(sh domain.Shipment) {
	s.mu.Lock()
	s.index[sh.ID] = len(s.list)
	s.list = append(s.list, sh.Clone())
	s.mu.Unlock()
}

// Replace applies updater to the record with the given id under one write lock.
func (s *ShipmentStore) Replace(id string, updater func(domain.Shipment) (domain.Shipment, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	next, err := updater(s.list[i].Clone())
	if err != nil {
		return err
	}
	next.ID = id
	s.list[i] = next.Clone()
	return nil
}

func (s *ShipmentStore) Get(id string) (domain.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Shipment{}, domain.ErrShipmentNotFound
	}
	return s.list[i].Clone(), nil
}

// All returns every record in insertion order.
func (s *ShipmentStore) All() []domain.Shipment {
	return s.filter(func(domain.Shipment) bool { return true })
}

// ForDriver returns the shipments assigned to driver. An empty name matches everything.
func (s *ShipmentStore) ForDriver(driver string) []domain.Shipment {
	if driver == "" {
		return s.All()
	}
	return s.filter(func(sh domain.Shipment) bool { return sh.DriverName == driver })
}

func (s *ShipmentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

func (s *ShipmentStore) filter(keep func(domain.Shipment) bool) []domain.Shipment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Shipment, 0, len(s.list))
	for _, sh := range s.list {
		if keep(sh) {
			out = append(out, sh.Clone())
		}
	}
	return out
}
