package inventory

import (
	"context"

	"github.com/gocql/gocql"
)

// ScyllaStore applique les réservations sur ks_catalog via des transactions
// légères (LWT). Le CAS cible la table products ou product_variations selon
// la ligne.
type ScyllaStore struct {
	Session *gocql.Session
}

func (s *ScyllaStore) Stock(ctx context.Context, line Line) (int, error) {
	var stock int
	var err error

	if line.VariationID != nil {
		err = s.Session.Query(
			`SELECT stock FROM ks_catalog.product_variations WHERE product_id = ? AND variation_id = ?`,
			line.ProductID, *line.VariationID,
		).WithContext(ctx).Scan(&stock)
	} else {
		err = s.Session.Query(
			`SELECT stock FROM ks_catalog.products WHERE product_id = ?`,
			line.ProductID,
		).WithContext(ctx).Scan(&stock)
	}

	return stock, err
}

func (s *ScyllaStore) CompareAndSet(ctx context.Context, line Line, old, new int) (bool, error) {
	var prev int

	if line.VariationID != nil {
		return s.Session.Query(
			`UPDATE ks_catalog.product_variations SET stock = ? WHERE product_id = ? AND variation_id = ? IF stock = ?`,
			new, line.ProductID, *line.VariationID, old,
		).WithContext(ctx).ScanCAS(&prev)
	}

	return s.Session.Query(
		`UPDATE ks_catalog.products SET stock = ? WHERE product_id = ? IF stock = ?`,
		new, line.ProductID, old,
	).WithContext(ctx).ScanCAS(&prev)
}
