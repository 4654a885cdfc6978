package pricing

import (
	"errors"
	"math"

	"github.com/gocql/gocql"

	"lotus_back_end/internal/models"
)

// ErrIncompleteSelection: le client n'a pas choisi une option pour chaque
// attribut de variation, ou aucune variation ne correspond au choix complet.
// Ce n'est pas une erreur serveur: l'UI doit bloquer l'achat et redemander.
var ErrIncompleteSelection = errors.New("sélection de variation incomplète")

// PriceInfo: résultat de la résolution de prix d'un produit (ou d'une de ses
// variations). Tous les montants sont en devise de base.
type PriceInfo struct {
	UnitPrice       float64     `json:"unit_price"`
	OriginalPrice   float64     `json:"original_price"`
	DiscountPercent int         `json:"discount_percent"`
	StockStatus     string      `json:"stock_status"`
	StockQuantity   int         `json:"stock_quantity"`
	SKU             string      `json:"sku"`
	VariationID     *gocql.UUID `json:"variation_id,omitempty"`
}

// ResolvePrice détermine le prix unitaire effectif d'un produit.
//
// Produit simple: salePrice si le produit est en promo, sinon regularPrice.
// Produit variable: chaque attribut marqué variation=true doit avoir une
// option choisie, et une seule variation doit matcher TOUTES ces options
// un match partiel ne résout rien (ErrIncompleteSelection).
func ResolvePrice(p models.Product, variations []models.ProductVariation, selected map[string]string) (PriceInfo, error) {
	variationAttrs := []string{}
	for _, attr := range p.Attributes {
		if attr.Variation {
			variationAttrs = append(variationAttrs, attr.Name)
		}
	}

	if len(variationAttrs) == 0 {
		return resolveSimple(p), nil
	}

	// Toutes les options de variation doivent être fournies
	for _, name := range variationAttrs {
		if selected[name] == "" {
			return PriceInfo{}, ErrIncompleteSelection
		}
	}

	for _, v := range variations {
		if !v.IsActive {
			continue
		}
		if matchesAll(v, variationAttrs, selected) {
			return resolveVariation(p, v), nil
		}
	}

	return PriceInfo{}, ErrIncompleteSelection
}

func matchesAll(v models.ProductVariation, attrs []string, selected map[string]string) bool {
	for _, name := range attrs {
		if v.Options[name] != selected[name] {
			return false
		}
	}
	return true
}

func resolveSimple(p models.Product) PriceInfo {
	unit := p.RegularPrice
	if p.OnSale && p.SalePrice != nil {
		unit = *p.SalePrice
	}

	info := PriceInfo{
		UnitPrice:       unit,
		OriginalPrice:   p.RegularPrice,
		DiscountPercent: discountPercent(unit, p.RegularPrice),
		StockStatus:     p.StockStatus,
		StockQuantity:   p.Stock,
		SKU:             p.SKU,
	}
	applyStockGating(&info, p)
	return info
}

func resolveVariation(p models.Product, v models.ProductVariation) PriceInfo {
	unit := v.Price
	if v.SalePrice != nil {
		unit = *v.SalePrice
	}

	// Sans regular_price propre, la variation n'affiche aucune remise
	original := v.Price
	if v.RegularPrice != nil {
		original = *v.RegularPrice
	}

	id := v.ID
	info := PriceInfo{
		UnitPrice:       unit,
		OriginalPrice:   original,
		DiscountPercent: discountPercent(unit, original),
		StockStatus:     v.StockStatus,
		StockQuantity:   v.Stock,
		SKU:             v.SKU,
		VariationID:     &id,
	}
	applyStockGating(&info, p)
	return info
}

// applyStockGating force in_stock quand le produit ne gère pas son stock:
// il reste achetable quelle que soit la quantité enregistrée.
func applyStockGating(info *PriceInfo, p models.Product) {
	if !p.ManageStock {
		info.StockStatus = models.StockInStock
	}
}

func discountPercent(unit, original float64) int {
	if original <= unit || original <= 0 {
		return 0
	}
	return int(math.Round((1 - unit/original) * 100))
}
