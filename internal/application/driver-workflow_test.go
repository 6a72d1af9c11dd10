package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/digital-link/internal/domain"
)

const sig = "data:image/png;base64,iVBORw0KGgo="

func seededFixture(t *testing.T) (*fixture, domain.Shipment) {
	t.Helper()
	f := newFixture()
	d := boxDraft()
	d.Items = append(d.Items, domain.ShipmentItem{ID: "pallet", Name: "Pallet", Quantity: 2, Unit: "pallets"})
	sh, err := f.company.CreateShipment(context.Background(), d)
	require.NoError(t, err)
	return f, sh
}

func TestSignWithoutOverridesDeliversEverything(t *testing.T) {
	f, sh := seededFixture(t)

	signed, err := f.driver.Sign(context.Background(), sh.ID, "Jane", sig)
	require.NoError(t, err)

	for _, it := range signed.Items {
		require.NotNil(t, it.Delivered, it.ID)
		assert.Equal(t, it.Quantity, *it.Delivered, it.ID)
	}
	assert.False(t, signed.IsPartialDelivery)

	stored, _ := f.store.Get(sh.ID)
	assert.Equal(t, signed, stored)
}

func TestSignPartialDelivery(t *testing.T) {
	f, sh := seededFixture(t)

	v, err := f.driver.SetDeliveredQuantity(sh.ID, "box", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	signed, err := f.driver.Sign(context.Background(), sh.ID, "Jane", sig)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSigned, signed.Status)
	assert.Equal(t, "Jane", signed.SignatureName)
	assert.Equal(t, sig, signed.Signature)
	assert.Equal(t, "2026-10-15 09:30", signed.ActualTimeOfArrival)
	assert.True(t, signed.IsPartialDelivery)

	box, _ := signed.Item("box")
	pallet, _ := signed.Item("pallet")
	assert.Equal(t, 3, *box.Delivered)
	assert.Equal(t, 2, *pallet.Delivered)

	assert.Empty(t, f.driver.Overrides(sh.ID))

	events := f.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventShipmentSigned, events[1].Type)
	assert.Equal(t, domain.StatusSigned, events[1].Shipment.Status)
}

func TestSetDeliveredQuantityClamps(t *testing.T) {
	f, sh := seededFixture(t)

	v, err := f.driver.SetDeliveredQuantity(sh.ID, "box", 50)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, map[string]int{"box": 5}, f.driver.Overrides(sh.ID))

	v, err = f.driver.SetDeliveredQuantity(sh.ID, "box", -7)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = f.driver.SetDeliveredQuantity(sh.ID, "box", domain.ParseQuantity("lots"))
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestSetDeliveredQuantityUnknownTargets(t *testing.T) {
	f, sh := seededFixture(t)

	_, err := f.driver.SetDeliveredQuantity("nope", "box", 1)
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)

	_, err = f.driver.SetDeliveredQuantity(sh.ID, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestSignRequiresSignerName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		f, sh := seededFixture(t)
		_, err := f.driver.SetDeliveredQuantity(sh.ID, "box", 3)
		require.NoError(t, err)
		_, err = f.driver.Begin(sh.ID)
		require.NoError(t, err)
		before := f.store.All()

		_, err = f.driver.Sign(context.Background(), sh.ID, name, sig)

		assert.ErrorIs(t, err, domain.ErrNoSignerName)
		assert.Equal(t, before, f.store.All())
		stored, _ := f.store.Get(sh.ID)
		assert.Equal(t, domain.StatusPending, stored.Status)
		for _, it := range stored.Items {
			assert.Nil(t, it.Delivered)
		}
		_, open := f.driver.Session()
		assert.True(t, open, "dialog stays open")
		assert.Equal(t, map[string]int{"box": 3}, f.driver.Overrides(sh.ID))
	}
}

func TestSignRequiresSignature(t *testing.T) {
	f, sh := seededFixture(t)

	_, err := f.driver.Sign(context.Background(), sh.ID, "Jane", "")

	assert.ErrorIs(t, err, domain.ErrNoSignature)
	stored, _ := f.store.Get(sh.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestSignUnknownShipment(t *testing.T) {
	f, _ := seededFixture(t)
	_, err := f.driver.Sign(context.Background(), "nope", "Jane", sig)
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
}

func TestSignTwiceIsRejected(t *testing.T) {
	f, sh := seededFixture(t)
	first, err := f.driver.Sign(context.Background(), sh.ID, "Jane", sig)
	require.NoError(t, err)

	_, err = f.driver.Sign(context.Background(), sh.ID, "John", sig)
	assert.ErrorIs(t, err, domain.ErrNotPending)

	stored, _ := f.store.Get(sh.ID)
	assert.Equal(t, first, stored)

	_, err = f.driver.SetDeliveredQuantity(sh.ID, "box", 1)
	assert.ErrorIs(t, err, domain.ErrNotPending)
}

func TestSigningSession(t *testing.T) {
	f, sh := seededFixture(t)
	other, err := f.company.CreateShipment(context.Background(), boxDraft())
	require.NoError(t, err)

	_, open := f.driver.Session()
	assert.False(t, open)

	s, err := f.driver.Begin(sh.ID)
	require.NoError(t, err)
	assert.Equal(t, sh.ID, s.ShipmentID)

	_, err = f.driver.Begin(other.ID)
	assert.ErrorIs(t, err, domain.ErrSigningInProgress)

	s, err = f.driver.SetSignerName("Jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane", s.SignerName)

	_, err = f.driver.Sign(context.Background(), sh.ID, s.SignerName, sig)
	require.NoError(t, err)

	_, open = f.driver.Session()
	assert.False(t, open, "signing dismisses the dialog")

	_, err = f.driver.Begin(sh.ID)
	assert.ErrorIs(t, err, domain.ErrNotPending)
	_, err = f.driver.Begin(other.ID)
	assert.NoError(t, err)
}

func TestCancelDiscardsDraftState(t *testing.T) {
	f, sh := seededFixture(t)
	before := f.store.All()

	_, err := f.driver.Begin(sh.ID)
	require.NoError(t, err)
	_, err = f.driver.SetSignerName("Jane")
	require.NoError(t, err)
	_, err = f.driver.SetDeliveredQuantity(sh.ID, "box", 1)
	require.NoError(t, err)

	f.driver.Cancel()

	_, open := f.driver.Session()
	assert.False(t, open)
	assert.Empty(t, f.driver.Overrides(sh.ID))
	assert.Equal(t, before, f.store.All())

	_, err = f.driver.SetSignerName("late")
	assert.ErrorIs(t, err, domain.ErrNoSigningSession)
}

func TestSigningLeavesOtherShipmentsAlone(t *testing.T) {
	f, sh := seededFixture(t)
	other, err := f.company.CreateShipment(context.Background(), boxDraft())
	require.NoError(t, err)
	_, err = f.driver.SetDeliveredQuantity(other.ID, "box", 2)
	require.NoError(t, err)

	_, err = f.driver.Sign(context.Background(), sh.ID, "Jane", sig)
	require.NoError(t, err)

	untouched, _ := f.store.Get(other.ID)
	assert.Equal(t, other, untouched)
	assert.Equal(t, map[string]int{"box": 2}, f.driver.Overrides(other.ID))
}

func TestConcurrentSignSucceedsOnce(t *testing.T) {
	f, sh := seededFixture(t)
	const workers = 50

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		signed  int
		rejects []error
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.driver.SetDeliveredQuantity(sh.ID, "box", i%6)
			_, err := f.driver.Sign(context.Background(), sh.ID, "Jane", sig)
			_ = f.store.All()

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				signed++
			} else {
				rejects = append(rejects, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, signed)
	require.Len(t, rejects, workers-1)
	for _, err := range rejects {
		assert.ErrorIs(t, err, domain.ErrNotPending)
	}

	var signedEvents int
	for _, ev := range f.events.Events() {
		if ev.Type == EventShipmentSigned {
			signedEvents++
		}
	}
	assert.Equal(t, 1, signedEvents)

	stored, err := f.store.Get(sh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSigned, stored.Status)
	assert.Empty(t, f.driver.Overrides(sh.ID))
}

func TestAllOverridesIncludesShipmentsOutsideTheDialog(t *testing.T) {
	f, sh := seededFixture(t)
	other, err := f.company.CreateShipment(context.Background(), boxDraft())
	require.NoError(t, err)

	_, err = f.driver.SetDeliveredQuantity(other.ID, "box", 2)
	require.NoError(t, err)
	_, err = f.driver.Begin(sh.ID)
	require.NoError(t, err)
	_, err = f.driver.SetDeliveredQuantity(sh.ID, "pallet", 1)
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]int{
		sh.ID:    {"pallet": 1},
		other.ID: {"box": 2},
	}, f.driver.AllOverrides())

	f.driver.Cancel()
	assert.Equal(t, map[string]map[string]int{other.ID: {"box": 2}}, f.driver.AllOverrides())
}
