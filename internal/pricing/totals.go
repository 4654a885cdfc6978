package pricing

import (
	"fmt"
	"sort"
	"time"

	"lotus_back_end/internal/models"
)

// Totals: décomposition du total d'une commande, en devise de base.
type Totals struct {
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

// ValidateCoupon vérifie qu'un coupon est applicable à un sous-total donné.
// Retourne une erreur descriptive (affichable au client) sinon nil.
func ValidateCoupon(coupon models.Coupon, subtotal float64, now time.Time) error {
	if !coupon.IsActive {
		return fmt.Errorf("ce coupon n'est plus actif")
	}
	if !coupon.StartsAt.IsZero() && now.Before(coupon.StartsAt) {
		return fmt.Errorf("ce coupon n'est pas encore valide")
	}
	if now.After(coupon.ExpiresAt) {
		return fmt.Errorf("ce coupon a expiré")
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return fmt.Errorf("ce coupon a atteint sa limite d'utilisation")
	}
	if subtotal < coupon.MinAmount {
		return fmt.Errorf("montant minimum requis: %.0f", coupon.MinAmount)
	}
	return nil
}

// CouponDiscount calcule la réduction d'un coupon déjà validé.
// percentage: plafonnée par max_amount et par le sous-total.
// fixed: jamais supérieure au sous-total.
// free_shipping: aucune réduction sur le sous-total (géré sur les frais de port).
func CouponDiscount(coupon models.Coupon, subtotal float64) float64 {
	switch coupon.Type {
	case models.CouponPercentage:
		discount := subtotal * (coupon.Value / 100)
		if coupon.MaxAmount != nil && discount > *coupon.MaxAmount {
			discount = *coupon.MaxAmount
		}
		if discount > subtotal {
			discount = subtotal
		}
		return discount
	case models.CouponFixed:
		if coupon.Value > subtotal {
			return subtotal
		}
		return coupon.Value
	default:
		return 0
	}
}

// AggregateTotals combine lignes, frais de port, coupon et taxes.
//
// Le sous-total utilise les prix instantanés des lignes (jamais de relecture
// catalogue). Les taux de taxe s'appliquent par priorité croissante, chacun
// sur la base imposable augmentée des taxes déjà accumulées (composition).
// Un coupon free_shipping annule les frais de port au lieu de réduire le
// sous-total. Aucun arrondi intermédiaire: l'arrondi se fait à la
// présentation (RoundTo).
func AggregateTotals(items []models.OrderItem, shippingCost float64, coupon *models.Coupon, rates []models.TaxRate) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	var discount float64
	if coupon != nil {
		discount = CouponDiscount(*coupon, subtotal)
		if coupon.Type == models.CouponFreeShipping {
			shippingCost = 0
		}
	}

	active := make([]models.TaxRate, 0, len(rates))
	for _, r := range rates {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Priority < active[j].Priority })

	var tax float64
	for _, r := range active {
		base := subtotal - discount + tax
		if r.AppliesToShipping {
			base += shippingCost
		}
		tax += base * (r.Rate / 100)
	}

	return Totals{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shippingCost,
		Tax:          tax,
		Total:        subtotal - discount + shippingCost + tax,
	}
}
