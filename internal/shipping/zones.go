package shipping

import (
	"errors"
	"sort"
	"strings"

	"lotus_back_end/internal/models"
)

// ErrNoShippingZone: aucune zone active ne couvre la destination et aucune
// zone globale n'existe. Le checkout doit s'arrêter avec une erreur visible,
// jamais retomber silencieusement sur une livraison à zéro.
var ErrNoShippingZone = errors.New("aucune zone de livraison ne couvre cette destination")

// MatchZone sélectionne la première zone active qui couvre la destination,
// par priorité croissante. Le tri est stable: à priorité égale, l'ordre
// d'entrée (ordre de création des zones) départage de façon déterministe.
func MatchZone(dest models.Destination, zones []models.ShippingZone) (*models.ShippingZone, error) {
	sorted := make([]models.ShippingZone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	for i := range sorted {
		zone := &sorted[i]
		if !zone.IsActive {
			continue
		}
		if zoneCovers(zone, dest) {
			return zone, nil
		}
	}

	return nil, ErrNoShippingZone
}

func zoneCovers(zone *models.ShippingZone, dest models.Destination) bool {
	switch zone.Type {
	case models.ZoneGlobal:
		return true
	case models.ZoneInnerCity:
		return hasLocation(zone.Locations, dest.City)
	case models.ZoneProvincial:
		return hasLocation(zone.Locations, dest.Country)
	case models.ZoneContinental:
		return hasLocation(zone.Locations, ContinentOf(dest.Country))
	default:
		return false
	}
}

func hasLocation(locations []models.ShippingLocation, code string) bool {
	if code == "" {
		return false
	}
	for _, loc := range locations {
		if strings.EqualFold(loc.Code, code) {
			return true
		}
	}
	return false
}

// continents: classification ISO 3166-1 alpha-2 → code continent.
var continents = map[string]string{
	// Asie
	"VN": "AS", "TH": "AS", "KH": "AS", "LA": "AS", "MM": "AS", "MY": "AS",
	"SG": "AS", "ID": "AS", "PH": "AS", "CN": "AS", "JP": "AS", "KR": "AS",
	"TW": "AS", "HK": "AS", "IN": "AS", "BD": "AS", "LK": "AS", "AE": "AS",
	"SA": "AS", "IL": "AS", "TR": "AS",
	// Europe
	"FR": "EU", "DE": "EU", "GB": "EU", "IT": "EU", "ES": "EU", "PT": "EU",
	"NL": "EU", "BE": "EU", "LU": "EU", "CH": "EU", "AT": "EU", "PL": "EU",
	"CZ": "EU", "SE": "EU", "NO": "EU", "DK": "EU", "FI": "EU", "IE": "EU",
	"GR": "EU", "RO": "EU", "HU": "EU", "UA": "EU", "RU": "EU",
	// Amérique du Nord
	"US": "NA", "CA": "NA", "MX": "NA",
	// Amérique du Sud
	"BR": "SA", "AR": "SA", "CL": "SA", "CO": "SA", "PE": "SA",
	// Afrique
	"ZA": "AF", "EG": "AF", "MA": "AF", "NG": "AF", "KE": "AF", "CM": "AF",
	// Océanie
	"AU": "OC", "NZ": "OC",
}

// ContinentOf retourne le code continent d'un pays (vide si inconnu).
func ContinentOf(country string) string {
	return continents[strings.ToUpper(country)]
}
