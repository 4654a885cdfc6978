package checkout

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
)

const maxCouponCASRetries = 5

// couponStore: lecture et incrément conditionnel du compteur d'utilisation
// d'un coupon. L'implémentation ScyllaDB passe par une LWT, les tests par un
// compteur en mémoire avec la même sémantique compare-and-set.
type couponStore interface {
	UsedCount(ctx context.Context, code string) (int, error)
	CompareAndSet(ctx context.Context, code string, old, new int) (bool, error)
}

type scyllaCouponStore struct {
	session *gocql.Session
}

func (s *scyllaCouponStore) UsedCount(ctx context.Context, code string) (int, error) {
	var count int
	err := s.session.Query(`SELECT used_count FROM coupons WHERE code = ?`, code).
		WithContext(ctx).Scan(&count)
	return count, err
}

func (s *scyllaCouponStore) CompareAndSet(ctx context.Context, code string, old, new int) (bool, error) {
	var prev int
	return s.session.Query(`UPDATE coupons SET used_count = ? WHERE code = ? IF used_count = ?`,
		new, code, old).WithContext(ctx).ScanCAS(&prev)
}

// consumeCoupon incrémente used_count d'exactement 1 par commande. Un échec
// CAS signifie qu'un checkout concurrent a consommé le même coupon entre
// lecture et écriture: on relit et on retente.
func consumeCoupon(ctx context.Context, store couponStore, code string) error {
	for attempt := 0; attempt < maxCouponCASRetries; attempt++ {
		current, err := store.UsedCount(ctx, code)
		if err != nil {
			return err
		}

		applied, err := store.CompareAndSet(ctx, code, current, current+1)
		if err != nil {
			return err
		}
		if applied {
			return nil
		}
	}

	return fmt.Errorf("consommation du coupon %s impossible après %d essais", code, maxCouponCASRetries)
}
