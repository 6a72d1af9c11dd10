package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/digital-link/internal/domain"
)

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewShipmentStore()
	for _, id := range []string{"b", "a", "c"} {
		s.Append(domain.Shipment{ID: id, Status: domain.StatusPending})
	}

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
	assert.Equal(t, 3, s.Len())
}

func TestStoreReplace(t *testing.T) {
	s := NewShipmentStore()
	s.Append(domain.Shipment{ID: "1", Status: domain.StatusPending})
	s.Append(domain.Shipment{ID: "2", Status: domain.StatusPending})

	err := s.Replace("2", func(sh domain.Shipment) (domain.Shipment, error) {
		sh.Status = domain.StatusSigned
		sh.ID = "ignored"
		return sh, nil
	})
	require.NoError(t, err)

	all := s.All()
	assert.Equal(t, domain.StatusPending, all[0].Status)
	assert.Equal(t, domain.StatusSigned, all[1].Status)
	assert.Equal(t, "2", all[1].ID)
}

func TestStoreReplaceUnknownIDFailsLoudly(t *testing.T) {
	s := NewShipmentStore()
	s.Append(domain.Shipment{ID: "1", Status: domain.StatusPending})
	before := s.All()

	called := false
	err := s.Replace("nope", func(sh domain.Shipment) (domain.Shipment, error) {
		called = true
		return sh, nil
	})

	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
	assert.False(t, called)
	assert.Equal(t, before, s.All())
}

func TestStoreReplaceUpdaterErrorLeavesRecord(t *testing.T) {
	s := NewShipmentStore()
	s.Append(domain.Shipment{ID: "1", Status: domain.StatusPending})
	boom := errors.New("boom")

	err := s.Replace("1", func(sh domain.Shipment) (domain.Shipment, error) {
		sh.Status = domain.StatusSigned
		return sh, boom
	})

	assert.ErrorIs(t, err, boom)
	got, _ := s.Get("1")
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewShipmentStore()
	s.Append(domain.Shipment{ID: "1", Items: []domain.ShipmentItem{{ID: "a", Name: "A"}}})

	got, err := s.Get("1")
	require.NoError(t, err)
	got.Items[0].Name = "mutated"

	all := s.All()
	all[0].Items[0].Name = "mutated too"

	again, _ := s.Get("1")
	assert.Equal(t, "A", again.Items[0].Name)
}

func TestStoreForDriver(t *testing.T) {
	s := NewShipmentStore()
	SeedDemo(s)

	mine := s.ForDriver("Driver 1")
	require.Len(t, mine, 2)
	assert.Equal(t, "1", mine[0].ID)
	assert.Equal(t, "4", mine[1].ID)

	assert.Len(t, s.ForDriver(""), 5)
	assert.Empty(t, s.ForDriver("Nobody"))
}

func TestStoreGetUnknown(t *testing.T) {
	_, err := NewShipmentStore().Get("x")
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
}

func TestSeedDemoOnlyOnEmptyStore(t *testing.T) {
	s := NewShipmentStore()
	assert.Equal(t, 5, SeedDemo(s))
	assert.Equal(t, 0, SeedDemo(s))
	assert.Equal(t, 5, s.Len())
}
