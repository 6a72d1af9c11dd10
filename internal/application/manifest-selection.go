package application

import (
	"sync"

	"github.com/RaikyD/digital-link/internal/domain"
)

type ManifestEntry struct {
	ShipmentID string                `json:"shipmentId"`
	Date       string                `json:"date"`
	Items      []domain.ShipmentItem `json:"items"`
}

// ManifestSelection is the driver's set of shipments ticked for a manifest.
type ManifestSelection struct {
	store *ShipmentStore

	mu       sync.Mutex
	selected map[string]struct{}
}

func NewManifestSelection(store *ShipmentStore) *ManifestSelection {
	return &ManifestSelection{
		store:    store,
		selected: make(map[string]struct{}),
	}
}

// Toggle flips one shipment in or out of the selection and reports the new state.
func (m *ManifestSelection) Toggle(shipmentID string) (bool, error) {
	if _, err := m.store.Get(shipmentID); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.selected[shipmentID]; ok {
		delete(m.selected, shipmentID)
		return false, nil
	}
	m.selected[shipmentID] = struct{}{}
	return true, nil
}

// Selected lists the selected ids in store order.
func (m *ManifestSelection) Selected() []string {
	ids := make([]string, 0)
	for _, sh := range m.selectedShipments() {
		ids = append(ids, sh.ID)
	}
	return ids
}

func (m *ManifestSelection) Clear() {
	m.mu.Lock()
	m.selected = make(map[string]struct{})
	m.mu.Unlock()
}

// CreateManifest shapes the selected shipments for export. The store is only read.
func (m *ManifestSelection) CreateManifest() ([]ManifestEntry, error) {
	shipments := m.selectedShipments()
	if len(shipments) == 0 {
		return nil, domain.ErrEmptySelection
	}

	out := make([]ManifestEntry, 0, len(shipments))
	for _, sh := range shipments {
		out = append(out, ManifestEntry{
			ShipmentID: sh.ID,
			Date:       sh.Date,
			Items:      sh.Items,
		})
	}
	return out, nil
}

func (m *ManifestSelection) selectedShipments() []domain.Shipment {
	m.mu.Lock()
	selected := make(map[string]struct{}, len(m.selected))
	for id := range m.selected {
		selected[id] = struct{}{}
	}
	m.mu.Unlock()

	var out []domain.Shipment
	for _, sh := range m.store.All() {
		if _, ok := selected[sh.ID]; ok {
			out = append(out, sh)
		}
	}
	return out
}
