package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lotus_back_end/internal/models"
)

func lineItems() []models.OrderItem {
	return []models.OrderItem{
		{Name: "Théière", UnitPrice: 19900, Quantity: 2},
		{Name: "Áo dài", UnitPrice: 450000, Quantity: 1},
	}
}

func percentCoupon() models.Coupon {
	return models.Coupon{
		Code:      "TET10",
		Type:      models.CouponPercentage,
		Value:     10,
		IsActive:  true,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func TestAggregateSubtotalOnly(t *testing.T) {
	totals := AggregateTotals(lineItems(), 0, nil, nil)

	assert.Equal(t, 489800.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 489800.0, totals.Total)
}

func TestAggregateWithShippingAndPercentCoupon(t *testing.T) {
	coupon := percentCoupon()
	totals := AggregateTotals(lineItems(), 35000, &coupon, nil)

	assert.Equal(t, 489800.0, totals.Subtotal)
	assert.InDelta(t, 48980.0, totals.Discount, 0.001)
	assert.Equal(t, 35000.0, totals.ShippingCost)
	assert.InDelta(t, 475820.0, totals.Total, 0.001)
}

func TestAggregateIdempotent(t *testing.T) {
	coupon := percentCoupon()
	rates := []models.TaxRate{{Name: "TVA", Rate: 10, Priority: 1, IsActive: true}}

	first := AggregateTotals(lineItems(), 35000, &coupon, rates)
	second := AggregateTotals(lineItems(), 35000, &coupon, rates)
	assert.Equal(t, first, second)
}

func TestFixedCouponNeverExceedsSubtotal(t *testing.T) {
	coupon := models.Coupon{Type: models.CouponFixed, Value: 100000, IsActive: true, ExpiresAt: time.Now().Add(time.Hour)}
	items := []models.OrderItem{{UnitPrice: 19900, Quantity: 1}}

	totals := AggregateTotals(items, 0, &coupon, nil)
	assert.Equal(t, 19900.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Total)
}

func TestPercentCouponCappedByMaxAmount(t *testing.T) {
	coupon := percentCoupon()
	coupon.MaxAmount = fl(20000)

	totals := AggregateTotals(lineItems(), 0, &coupon, nil)
	assert.Equal(t, 20000.0, totals.Discount)
}

func TestFreeShippingCouponZeroesShipping(t *testing.T) {
	coupon := models.Coupon{Type: models.CouponFreeShipping, IsActive: true, ExpiresAt: time.Now().Add(time.Hour)}

	totals := AggregateTotals(lineItems(), 35000, &coupon, nil)
	assert.Equal(t, 0.0, totals.ShippingCost)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 489800.0, totals.Total)
}

func TestTaxOnSubtotalMinusDiscount(t *testing.T) {
	coupon := models.Coupon{Type: models.CouponFixed, Value: 89800, IsActive: true, ExpiresAt: time.Now().Add(time.Hour)}
	rates := []models.TaxRate{{Name: "TVA", Rate: 10, Priority: 1, IsActive: true}}

	totals := AggregateTotals(lineItems(), 0, &coupon, rates)
	// (489800 - 89800) * 10% = 40000
	assert.InDelta(t, 40000.0, totals.Tax, 0.001)
	assert.InDelta(t, 440000.0, totals.Total, 0.001)
}

func TestTaxIncludesShippingWhenFlagged(t *testing.T) {
	rates := []models.TaxRate{{Name: "TVA", Rate: 10, Priority: 1, AppliesToShipping: true, IsActive: true}}
	items := []models.OrderItem{{UnitPrice: 100000, Quantity: 1}}

	totals := AggregateTotals(items, 35000, nil, rates)
	assert.InDelta(t, 13500.0, totals.Tax, 0.001)
}

func TestCompoundTaxAppliedByAscendingPriority(t *testing.T) {
	rates := []models.TaxRate{
		{Name: "Surtaxe", Rate: 5, Priority: 2, IsActive: true},
		{Name: "TVA", Rate: 10, Priority: 1, IsActive: true},
	}
	items := []models.OrderItem{{UnitPrice: 100000, Quantity: 1}}

	totals := AggregateTotals(items, 0, nil, rates)
	// TVA d'abord: 10000. Surtaxe composée: (100000 + 10000) * 5% = 5500
	assert.InDelta(t, 15500.0, totals.Tax, 0.001)
}

func TestInactiveTaxRateIgnored(t *testing.T) {
	rates := []models.TaxRate{{Name: "TVA", Rate: 10, Priority: 1, IsActive: false}}
	totals := AggregateTotals(lineItems(), 0, nil, rates)
	assert.Equal(t, 0.0, totals.Tax)
}

func TestValidateCoupon(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		coupon   models.Coupon
		subtotal float64
		wantErr  bool
	}{
		{"valide", models.Coupon{IsActive: true, ExpiresAt: now.Add(time.Hour)}, 100000, false},
		{"inactif", models.Coupon{IsActive: false, ExpiresAt: now.Add(time.Hour)}, 100000, true},
		{"expiré", models.Coupon{IsActive: true, ExpiresAt: now.Add(-time.Hour)}, 100000, true},
		{"pas encore valide", models.Coupon{IsActive: true, StartsAt: now.Add(time.Hour), ExpiresAt: now.Add(2 * time.Hour)}, 100000, true},
		{"épuisé", models.Coupon{IsActive: true, ExpiresAt: now.Add(time.Hour), MaxUses: 5, UsedCount: 5}, 100000, true},
		{"sous le minimum", models.Coupon{IsActive: true, ExpiresAt: now.Add(time.Hour), MinAmount: 500000}, 100000, true},
		{"au minimum exact", models.Coupon{IsActive: true, ExpiresAt: now.Add(time.Hour), MinAmount: 100000}, 100000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoupon(tt.coupon, tt.subtotal, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
