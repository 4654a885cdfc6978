package shipping

import (
	"sort"

	"github.com/gocql/gocql"

	"lotus_back_end/internal/models"
)

// RateQuote: coût calculé d'une méthode de livraison pour un sous-total donné.
type RateQuote struct {
	MethodID      gocql.UUID `json:"method_id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Cost          float64    `json:"cost"`
	EstimatedDays int        `json:"estimated_days"`
	IsFree        bool       `json:"is_free"`
}

// CalculateRates calcule les options de livraison d'une zone pour un sous-total.
//
// Par méthode active, triée par position:
//   - free_shipping: coût 0 inconditionnel;
//   - min_amount atteint: coût 0 (seuil de livraison gratuite);
//   - sinon: coût de base de la méthode.
//
// max_amount borne l'éligibilité: une méthode dont le plafond est dépassé par
// le sous-total est exclue (ex: retrait en magasin sous X seulement).
//
// Une liste vide est un état valide: zone configurée mais sans méthode
// active, à signaler à l'admin, pas à masquer.
func CalculateRates(zone models.ShippingZone, subtotal float64) []RateQuote {
	methods := make([]models.ShippingMethod, 0, len(zone.Methods))
	for _, m := range zone.Methods {
		if m.IsActive {
			methods = append(methods, m)
		}
	}
	sort.SliceStable(methods, func(i, j int) bool { return methods[i].Position < methods[j].Position })

	quotes := []RateQuote{}
	for _, m := range methods {
		if m.MaxAmount != nil && *m.MaxAmount < subtotal {
			continue
		}

		cost := m.Cost
		switch {
		case m.Type == models.MethodFreeShipping:
			cost = 0
		case m.MinAmount != nil && subtotal >= *m.MinAmount:
			cost = 0
		}

		quotes = append(quotes, RateQuote{
			MethodID:      m.ID,
			Name:          m.Name,
			Type:          m.Type,
			Cost:          cost,
			EstimatedDays: m.EstimatedDays,
			IsFree:        cost == 0,
		})
	}

	return quotes
}
