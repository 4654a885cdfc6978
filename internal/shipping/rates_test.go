package shipping

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus_back_end/internal/models"
)

func fl(v float64) *float64 { return &v }

func method(name, methodType string, cost float64, position int) models.ShippingMethod {
	return models.ShippingMethod{
		ID:            gocql.TimeUUID(),
		Name:          name,
		Type:          methodType,
		Cost:          cost,
		Position:      position,
		EstimatedDays: 3,
		IsActive:      true,
	}
}

func TestCalculateRatesFlatRate(t *testing.T) {
	z := models.ShippingZone{Methods: []models.ShippingMethod{
		method("Standard", models.MethodFlatRate, 35000, 0),
	}}

	quotes := CalculateRates(z, 100000)
	require.Len(t, quotes, 1)
	assert.Equal(t, 35000.0, quotes[0].Cost)
	assert.False(t, quotes[0].IsFree)
}

func TestCalculateRatesFreeShippingThreshold(t *testing.T) {
	m := method("Standard", models.MethodFlatRate, 35000, 0)
	m.MinAmount = fl(500000)
	z := models.ShippingZone{Methods: []models.ShippingMethod{m}}

	// Sous-total 600000 ≥ seuil 500000: gratuit
	quotes := CalculateRates(z, 600000)
	require.Len(t, quotes, 1)
	assert.Equal(t, 0.0, quotes[0].Cost)
	assert.True(t, quotes[0].IsFree)

	// Sous le seuil: coût de base
	quotes = CalculateRates(z, 400000)
	require.Len(t, quotes, 1)
	assert.Equal(t, 35000.0, quotes[0].Cost)

	// Au seuil exact: gratuit
	quotes = CalculateRates(z, 500000)
	assert.Equal(t, 0.0, quotes[0].Cost)
}

func TestCalculateRatesFreeShippingUnconditional(t *testing.T) {
	m := method("Offerte", models.MethodFreeShipping, 99999, 0)
	z := models.ShippingZone{Methods: []models.ShippingMethod{m}}

	quotes := CalculateRates(z, 1)
	require.Len(t, quotes, 1)
	assert.Equal(t, 0.0, quotes[0].Cost)
}

func TestCalculateRatesMaxAmountExcludes(t *testing.T) {
	pickup := method("Retrait boutique", models.MethodLocalPickup, 0, 0)
	pickup.MaxAmount = fl(200000)
	standard := method("Standard", models.MethodFlatRate, 35000, 1)
	z := models.ShippingZone{Methods: []models.ShippingMethod{pickup, standard}}

	// Sous le plafond: les deux options
	quotes := CalculateRates(z, 150000)
	assert.Len(t, quotes, 2)

	// Plafond dépassé: le retrait disparaît
	quotes = CalculateRates(z, 300000)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Standard", quotes[0].Name)
}

func TestCalculateRatesOrderedByPosition(t *testing.T) {
	z := models.ShippingZone{Methods: []models.ShippingMethod{
		method("Express", models.MethodExpress, 70000, 2),
		method("Standard", models.MethodFlatRate, 35000, 1),
	}}

	quotes := CalculateRates(z, 100000)
	require.Len(t, quotes, 2)
	assert.Equal(t, "Standard", quotes[0].Name)
	assert.Equal(t, "Express", quotes[1].Name)
}

func TestCalculateRatesInactiveSkipped(t *testing.T) {
	m := method("Standard", models.MethodFlatRate, 35000, 0)
	m.IsActive = false
	z := models.ShippingZone{Methods: []models.ShippingMethod{m}}

	// Zone sans méthode active: liste vide, état valide ("pas prête à expédier")
	quotes := CalculateRates(z, 100000)
	assert.NotNil(t, quotes)
	assert.Empty(t, quotes)
}
