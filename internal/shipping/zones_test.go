package shipping

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus_back_end/internal/models"
)

func zone(name, zoneType string, priority int, codes ...string) models.ShippingZone {
	z := models.ShippingZone{
		ID:       gocql.TimeUUID(),
		Name:     name,
		Type:     zoneType,
		Priority: priority,
		IsActive: true,
	}
	kind := "country"
	switch zoneType {
	case models.ZoneInnerCity:
		kind = "city"
	case models.ZoneContinental:
		kind = "continent"
	}
	for _, code := range codes {
		z.Locations = append(z.Locations, models.ShippingLocation{ZoneID: z.ID, Code: code, Kind: kind})
	}
	return z
}

func sampleZones() []models.ShippingZone {
	return []models.ShippingZone{
		zone("Hô Chi Minh-Ville", models.ZoneInnerCity, 0, "HCM"),
		zone("Vietnam provinces", models.ZoneProvincial, 1, "VN"),
		zone("Asie", models.ZoneContinental, 2, "AS"),
		zone("International", models.ZoneGlobal, 3),
	}
}

func TestMatchZoneInnerCityBeforeGlobal(t *testing.T) {
	matched, err := MatchZone(models.Destination{Country: "VN", City: "HCM"}, sampleZones())
	require.NoError(t, err)
	assert.Equal(t, "Hô Chi Minh-Ville", matched.Name)
}

func TestMatchZoneProvincial(t *testing.T) {
	matched, err := MatchZone(models.Destination{Country: "VN", City: "Hue"}, sampleZones())
	require.NoError(t, err)
	assert.Equal(t, "Vietnam provinces", matched.Name)
}

func TestMatchZoneContinental(t *testing.T) {
	matched, err := MatchZone(models.Destination{Country: "TH", City: "Bangkok"}, sampleZones())
	require.NoError(t, err)
	assert.Equal(t, "Asie", matched.Name)
}

func TestMatchZoneGlobalCatchAll(t *testing.T) {
	// Avec une zone globale présente, toute destination résout quelque part
	for _, dest := range []models.Destination{
		{Country: "FR", City: "Paris"},
		{Country: "US"},
		{Country: "XX"}, // pays inconnu de la classification
	} {
		matched, err := MatchZone(dest, sampleZones())
		require.NoError(t, err, "destination %+v", dest)
		assert.Equal(t, "International", matched.Name, "destination %+v", dest)
	}
}

func TestMatchZoneNoneAvailable(t *testing.T) {
	zones := []models.ShippingZone{
		zone("Hô Chi Minh-Ville", models.ZoneInnerCity, 0, "HCM"),
	}

	_, err := MatchZone(models.Destination{Country: "FR", City: "Paris"}, zones)
	assert.ErrorIs(t, err, ErrNoShippingZone)
}

func TestMatchZoneInactiveSkipped(t *testing.T) {
	zones := sampleZones()
	zones[0].IsActive = false

	matched, err := MatchZone(models.Destination{Country: "VN", City: "HCM"}, zones)
	require.NoError(t, err)
	assert.Equal(t, "Vietnam provinces", matched.Name)
}

func TestMatchZonePriorityOrder(t *testing.T) {
	// Une zone globale prioritaire passe avant une zone ville moins prioritaire
	zones := []models.ShippingZone{
		zone("Hô Chi Minh-Ville", models.ZoneInnerCity, 5, "HCM"),
		zone("Tout", models.ZoneGlobal, 1),
	}

	matched, err := MatchZone(models.Destination{Country: "VN", City: "HCM"}, zones)
	require.NoError(t, err)
	assert.Equal(t, "Tout", matched.Name)
}

func TestMatchZoneEqualPriorityDeterministic(t *testing.T) {
	// À priorité égale, l'ordre d'entrée départage (tri stable)
	zones := []models.ShippingZone{
		zone("Zone A", models.ZoneProvincial, 1, "VN"),
		zone("Zone B", models.ZoneProvincial, 1, "VN"),
	}

	for i := 0; i < 10; i++ {
		matched, err := MatchZone(models.Destination{Country: "VN"}, zones)
		require.NoError(t, err)
		assert.Equal(t, "Zone A", matched.Name)
	}
}

func TestMatchZoneCityCodeCaseInsensitive(t *testing.T) {
	matched, err := MatchZone(models.Destination{Country: "VN", City: "hcm"}, sampleZones())
	require.NoError(t, err)
	assert.Equal(t, "Hô Chi Minh-Ville", matched.Name)
}

func TestContinentOf(t *testing.T) {
	assert.Equal(t, "AS", ContinentOf("VN"))
	assert.Equal(t, "AS", ContinentOf("vn"))
	assert.Equal(t, "EU", ContinentOf("FR"))
	assert.Equal(t, "", ContinentOf("XX"))
}
