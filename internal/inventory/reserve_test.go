package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore reproduit la sémantique compare-and-set des LWT ScyllaDB.
type memStore struct {
	mu     sync.Mutex
	stocks map[gocql.UUID]int
}

func newMemStore() *memStore {
	return &memStore{stocks: make(map[gocql.UUID]int)}
}

func (m *memStore) key(line Line) gocql.UUID {
	if line.VariationID != nil {
		return *line.VariationID
	}
	return line.ProductID
}

func (m *memStore) Stock(_ context.Context, line Line) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stocks[m.key(line)], nil
}

func (m *memStore) CompareAndSet(_ context.Context, line Line, old, new int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stocks[m.key(line)] != old {
		return false, nil
	}
	m.stocks[m.key(line)] = new
	return true, nil
}

func TestReserveDecrementsStock(t *testing.T) {
	store := newMemStore()
	productID := gocql.TimeUUID()
	store.stocks[productID] = 10

	line := Line{ProductID: productID, Name: "Théière", Quantity: 3}
	require.NoError(t, Reserve(context.Background(), store, []Line{line}))
	assert.Equal(t, 7, store.stocks[productID])
}

func TestReserveShortage(t *testing.T) {
	store := newMemStore()
	productID := gocql.TimeUUID()
	store.stocks[productID] = 2

	line := Line{ProductID: productID, Name: "Théière", Quantity: 3}
	err := Reserve(context.Background(), store, []Line{line})

	var shortage *ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 2, shortage.Available)
	assert.Equal(t, 3, shortage.Requested)
	// Rien n'a été décrémenté
	assert.Equal(t, 2, store.stocks[productID])
}

func TestReserveRollsBackOnPartialShortage(t *testing.T) {
	store := newMemStore()
	okID := gocql.TimeUUID()
	shortID := gocql.TimeUUID()
	store.stocks[okID] = 10
	store.stocks[shortID] = 0

	err := Reserve(context.Background(), store, []Line{
		{ProductID: okID, Name: "Théière", Quantity: 2},
		{ProductID: shortID, Name: "Áo dài", Quantity: 1},
	})

	var shortage *ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, "Áo dài", shortage.Name)
	// La première ligne réservée a été rendue: tout ou rien
	assert.Equal(t, 10, store.stocks[okID])
}

func TestReserveVariationLine(t *testing.T) {
	store := newMemStore()
	productID := gocql.TimeUUID()
	variationID := gocql.TimeUUID()
	store.stocks[variationID] = 5

	line := Line{ProductID: productID, VariationID: &variationID, Name: "Áo dài Rouge/S", Quantity: 2}
	require.NoError(t, Reserve(context.Background(), store, []Line{line}))
	assert.Equal(t, 3, store.stocks[variationID])
}

// Deux checkouts simultanés sur la dernière unité: exactement un succès et un
// échec, jamais deux succès.
func TestReserveConcurrentLastUnit(t *testing.T) {
	for run := 0; run < 50; run++ {
		store := newMemStore()
		productID := gocql.TimeUUID()
		store.stocks[productID] = 1

		line := Line{ProductID: productID, Name: "Dernière théière", Quantity: 1}

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = Reserve(context.Background(), store, []Line{line})
			}(i)
		}
		wg.Wait()

		successes := 0
		shortages := 0
		for _, err := range results {
			if err == nil {
				successes++
				continue
			}
			var shortage *ShortageError
			if assert.ErrorAs(t, err, &shortage) {
				shortages++
			}
		}

		assert.Equal(t, 1, successes, "run %d", run)
		assert.Equal(t, 1, shortages, "run %d", run)
		assert.Equal(t, 0, store.stocks[productID], "run %d", run)
	}
}

func TestReleaseRestoresStock(t *testing.T) {
	store := newMemStore()
	productID := gocql.TimeUUID()
	store.stocks[productID] = 4

	lines := []Line{{ProductID: productID, Name: "Théière", Quantity: 4}}
	require.NoError(t, Reserve(context.Background(), store, lines))
	assert.Equal(t, 0, store.stocks[productID])

	Release(context.Background(), store, lines)
	assert.Equal(t, 4, store.stocks[productID])
}
