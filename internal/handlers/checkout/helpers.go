package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/database"
	"lotus_back_end/internal/handlers/product"
	"lotus_back_end/internal/inventory"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/pricing"
	"lotus_back_end/internal/shipping"
)

// Codes d'erreur stables du checkout, consommés par le front
const (
	CodeOutOfStock           = "OUT_OF_STOCK"
	CodeNoShippingZone       = "NO_SHIPPING_ZONE"
	CodeCouponInvalid        = "COUPON_INVALID"
	CodeVariationNotSelected = "VARIATION_NOT_SELECTED"
)

type lineItemInput struct {
	ProductID string            `json:"productId" binding:"required"`
	Options   map[string]string `json:"options"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
}

type checkoutInput struct {
	LineItems        []lineItemInput    `json:"lineItems" binding:"required,min=1"`
	Destination      models.Destination `json:"destination" binding:"required"`
	CouponCode       string             `json:"couponCode"`
	ShippingMethodID string             `json:"shippingMethodId"`
	Currency         string             `json:"currency"`
}

// checkoutError porte un code stable en plus du message affichable
type checkoutError struct {
	Code    string
	Message string
}

func (e *checkoutError) Error() string { return e.Message }

// quote: résultat complet de la tarification d'un panier
type quote struct {
	Items          []models.OrderItem
	Lines          []inventory.Line
	Products       map[string]models.Product // par product_id, pour les alertes stock
	Totals         pricing.Totals
	Zone           *models.ShippingZone
	Method         *shipping.RateQuote
	Options        []shipping.RateQuote
	Coupon         *models.Coupon
	Currency       models.Currency
}

// buildQuote résout prix, zone, livraison, coupon et taxes pour un panier.
// Chaque étape bloquante retourne un checkoutError avec son code.
func buildQuote(ctx context.Context, in checkoutInput) (*quote, error) {
	q := &quote{Products: map[string]models.Product{}}

	// 1️⃣ Résolution des prix (instantanés) ligne par ligne
	var subtotal float64
	for _, li := range in.LineItems {
		productID, err := gocql.ParseUUID(li.ProductID)
		if err != nil {
			return nil, &checkoutError{Code: CodeVariationNotSelected, Message: "ID produit invalide: " + li.ProductID}
		}

		p, err := product.LoadProduct(productID)
		if err != nil {
			return nil, fmt.Errorf("produit introuvable: %s", li.ProductID)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("produit indisponible: %s", p.Name)
		}

		var variations []models.ProductVariation
		if p.HasVariations {
			variations, err = product.LoadVariations(productID)
			if err != nil {
				return nil, err
			}
		}

		info, err := pricing.ResolvePrice(p, variations, li.Options)
		if err != nil {
			if errors.Is(err, pricing.ErrIncompleteSelection) {
				return nil, &checkoutError{
					Code:    CodeVariationNotSelected,
					Message: "Veuillez choisir une option pour chaque attribut de " + p.Name,
				}
			}
			return nil, err
		}

		if p.ManageStock && (info.StockStatus == models.StockOutOfStock || info.StockQuantity < li.Quantity) {
			return nil, &checkoutError{
				Code:    CodeOutOfStock,
				Message: fmt.Sprintf("Stock insuffisant pour %s: %d disponible(s)", p.Name, info.StockQuantity),
			}
		}

		item := models.OrderItem{
			ProductID:   productID,
			VariationID: info.VariationID,
			Name:        p.Name,
			SKU:         info.SKU,
			UnitPrice:   info.UnitPrice,
			Quantity:    li.Quantity,
		}
		q.Items = append(q.Items, item)
		subtotal += info.UnitPrice * float64(li.Quantity)

		if p.ManageStock {
			q.Lines = append(q.Lines, inventory.Line{
				ProductID:   productID,
				VariationID: info.VariationID,
				Name:        p.Name,
				Quantity:    li.Quantity,
			})
		}
		q.Products[productID.String()] = p
	}

	// 2️⃣ Zone de livraison
	zones, err := cache.GetShippingZones(ctx)
	if err != nil {
		return nil, err
	}
	zone, err := shipping.MatchZone(in.Destination, zones)
	if err != nil {
		return nil, &checkoutError{
			Code:    CodeNoShippingZone,
			Message: "Aucune zone de livraison ne couvre cette destination",
		}
	}
	q.Zone = zone

	// 3️⃣ Options de livraison, méthode choisie (ou la moins chère)
	q.Options = shipping.CalculateRates(*zone, subtotal)
	if len(q.Options) > 0 {
		q.Method = &q.Options[0]
		if in.ShippingMethodID != "" {
			found := false
			for i := range q.Options {
				if q.Options[i].MethodID.String() == in.ShippingMethodID {
					q.Method = &q.Options[i]
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("méthode de livraison indisponible pour cette zone")
			}
		}
	}

	shippingCost := 0.0
	if q.Method != nil {
		shippingCost = q.Method.Cost
	}

	// 4️⃣ Coupon
	if in.CouponCode != "" {
		coupon, err := LoadCouponByCode(in.CouponCode)
		if err != nil {
			return nil, &checkoutError{Code: CodeCouponInvalid, Message: "Code promo inconnu"}
		}
		if err := pricing.ValidateCoupon(coupon, subtotal, time.Now()); err != nil {
			return nil, &checkoutError{Code: CodeCouponInvalid, Message: err.Error()}
		}
		q.Coupon = &coupon
	}

	// 5️⃣ Taxes (si activées dans les réglages)
	var rates []models.TaxRate
	settings, err := cache.GetStoreSettings(ctx)
	if err == nil && settings.TaxesEnabled {
		rates, err = cache.GetTaxRates(ctx)
		if err != nil {
			return nil, err
		}
	}

	q.Totals = pricing.AggregateTotals(q.Items, shippingCost, q.Coupon, rates)

	// 6️⃣ Devise d'affichage
	q.Currency, err = cache.GetDisplayCurrency(ctx, in.Currency)
	if err != nil {
		return nil, err
	}

	return q, nil
}

// LoadCouponByCode charge un coupon depuis ks_orders
func LoadCouponByCode(code string) (models.Coupon, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return models.Coupon{}, err
	}

	var cp models.Coupon
	err = session.Query(`SELECT coupon_id, code, type, value, min_amount, max_amount, max_uses, used_count,
		max_uses_per_user, starts_at, expires_at, is_active, created_by, created_at, updated_at
		FROM coupons WHERE code = ?`, code).Scan(
		&cp.ID, &cp.Code, &cp.Type, &cp.Value, &cp.MinAmount, &cp.MaxAmount, &cp.MaxUses, &cp.UsedCount,
		&cp.MaxUsesPerUser, &cp.StartsAt, &cp.ExpiresAt, &cp.IsActive, &cp.CreatedBy, &cp.CreatedAt, &cp.UpdatedAt)
	return cp, err
}

// displayTotals formate la décomposition dans la devise d'affichage
func displayTotals(t pricing.Totals, cur models.Currency) map[string]string {
	return map[string]string{
		"subtotal":      pricing.FormatAmount(t.Subtotal, cur),
		"discount":      pricing.FormatAmount(t.Discount, cur),
		"shipping_cost": pricing.FormatAmount(t.ShippingCost, cur),
		"tax":           pricing.FormatAmount(t.Tax, cur),
		"total":         pricing.FormatAmount(t.Total, cur),
	}
}
