package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus_back_end/internal/inventory"
)

// memStockStore: même sémantique compare-and-set que les LWT ScyllaDB.
type memStockStore struct {
	mu     sync.Mutex
	stocks map[gocql.UUID]int
}

func (m *memStockStore) Stock(_ context.Context, line inventory.Line) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stocks[line.ProductID], nil
}

func (m *memStockStore) CompareAndSet(_ context.Context, line inventory.Line, old, new int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stocks[line.ProductID] != old {
		return false, nil
	}
	m.stocks[line.ProductID] = new
	return true, nil
}

// Une commande qui échoue après la création du paiement doit rendre le stock
// ET annuler le PaymentIntent, sinon le client reste avec un paiement en
// attente sur une commande inexistante.
func TestRollbackCheckoutReleasesStockAndCancelsIntent(t *testing.T) {
	productID := gocql.TimeUUID()
	store := &memStockStore{stocks: map[gocql.UUID]int{productID: 3}}
	lines := []inventory.Line{{ProductID: productID, Name: "Théière", Quantity: 2}}

	require.NoError(t, inventory.Reserve(context.Background(), store, lines))
	require.Equal(t, 1, store.stocks[productID])

	var cancelled []string
	orig := cancelIntent
	cancelIntent = func(id string) error {
		cancelled = append(cancelled, id)
		return nil
	}
	defer func() { cancelIntent = orig }()

	rollbackCheckout(context.Background(), store, lines, "pi_test_123")

	assert.Equal(t, 3, store.stocks[productID])
	assert.Equal(t, []string{"pi_test_123"}, cancelled)
}

func TestRollbackCheckoutWithoutIntent(t *testing.T) {
	productID := gocql.TimeUUID()
	store := &memStockStore{stocks: map[gocql.UUID]int{productID: 5}}
	lines := []inventory.Line{{ProductID: productID, Name: "Théière", Quantity: 5}}

	require.NoError(t, inventory.Reserve(context.Background(), store, lines))

	var cancelled []string
	orig := cancelIntent
	cancelIntent = func(id string) error {
		cancelled = append(cancelled, id)
		return nil
	}
	defer func() { cancelIntent = orig }()

	// Échec avant la création du paiement: rien à annuler côté Stripe
	rollbackCheckout(context.Background(), store, lines, "")

	assert.Equal(t, 5, store.stocks[productID])
	assert.Empty(t, cancelled)
}
