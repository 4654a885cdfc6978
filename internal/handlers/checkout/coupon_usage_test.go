package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCouponStore reproduit la sémantique compare-and-set de la LWT ScyllaDB
// sur used_count.
type memCouponStore struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMemCouponStore() *memCouponStore {
	return &memCouponStore{counts: make(map[string]int)}
}

func (m *memCouponStore) UsedCount(_ context.Context, code string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[code], nil
}

func (m *memCouponStore) CompareAndSet(_ context.Context, code string, old, new int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts[code] != old {
		return false, nil
	}
	m.counts[code] = new
	return true, nil
}

func TestConsumeCouponIncrementsOnce(t *testing.T) {
	store := newMemCouponStore()
	store.counts["TET2026"] = 7

	require.NoError(t, consumeCoupon(context.Background(), store, "TET2026"))
	assert.Equal(t, 8, store.counts["TET2026"])
}

// Deux checkouts simultanés avec le même coupon: chaque utilisation est
// comptée, jamais d'écrasement lecture-modification-écriture.
func TestConsumeCouponConcurrent(t *testing.T) {
	store := newMemCouponStore()

	const checkouts = 4
	var wg sync.WaitGroup
	errs := make([]error, checkouts)
	for i := 0; i < checkouts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = consumeCoupon(context.Background(), store, "TET2026")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "checkout %d", i)
	}
	assert.Equal(t, checkouts, store.counts["TET2026"])
}

// contendedCouponStore fait perdre les premiers CAS, comme un coupon disputé
// par d'autres checkouts.
type contendedCouponStore struct {
	memCouponStore
	losses int
}

func (c *contendedCouponStore) CompareAndSet(ctx context.Context, code string, old, new int) (bool, error) {
	c.mu.Lock()
	if c.losses > 0 {
		c.losses--
		c.counts[code]++ // un concurrent est passé entre lecture et écriture
		c.mu.Unlock()
		return false, nil
	}
	c.mu.Unlock()
	return c.memCouponStore.CompareAndSet(ctx, code, old, new)
}

func TestConsumeCouponRetriesAfterLostCAS(t *testing.T) {
	store := &contendedCouponStore{
		memCouponStore: memCouponStore{counts: map[string]int{"TET2026": 0}},
		losses:         2,
	}

	require.NoError(t, consumeCoupon(context.Background(), store, "TET2026"))
	// 2 incréments concurrents + le nôtre
	assert.Equal(t, 3, store.counts["TET2026"])
}

func TestConsumeCouponGivesUpAfterMaxRetries(t *testing.T) {
	store := &contendedCouponStore{
		memCouponStore: memCouponStore{counts: map[string]int{"TET2026": 0}},
		losses:         maxCouponCASRetries + 1,
	}

	err := consumeCoupon(context.Background(), store, "TET2026")
	require.Error(t, err)
}
