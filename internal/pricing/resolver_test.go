package pricing

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus_back_end/internal/models"
)

func fl(v float64) *float64 { return &v }

func simpleProduct() models.Product {
	return models.Product{
		ID:           gocql.TimeUUID(),
		Name:         "Théière en céramique",
		SKU:          "THE-001",
		RegularPrice: 29900,
		SalePrice:    fl(19900),
		OnSale:       true,
		ManageStock:  true,
		Stock:        12,
		StockStatus:  models.StockInStock,
	}
}

func variableProduct() (models.Product, []models.ProductVariation) {
	p := models.Product{
		ID:           gocql.TimeUUID(),
		Name:         "Áo dài",
		SKU:          "AOD-000",
		RegularPrice: 450000,
		ManageStock:  true,
		Attributes: []models.ProductAttribute{
			{Name: "Couleur", Value: "Rouge, Bleu", Visible: true, Variation: true},
			{Name: "Taille", Value: "S, M, L", Visible: true, Variation: true},
			{Name: "Matière", Value: "Soie", Visible: true, Variation: false},
		},
		HasVariations: true,
	}

	variations := []models.ProductVariation{
		{
			ID: gocql.TimeUUID(), ProductID: p.ID, SKU: "AOD-RS",
			Price: 450000, RegularPrice: fl(500000), SalePrice: fl(450000),
			Stock: 3, StockStatus: models.StockInStock, IsActive: true,
			Options: map[string]string{"Couleur": "Rouge", "Taille": "S"},
		},
		{
			ID: gocql.TimeUUID(), ProductID: p.ID, SKU: "AOD-BM",
			Price: 480000,
			Stock: 0, StockStatus: models.StockOutOfStock, IsActive: true,
			Options: map[string]string{"Couleur": "Bleu", "Taille": "M"},
		},
	}
	return p, variations
}

func TestResolveSimpleOnSale(t *testing.T) {
	info, err := ResolvePrice(simpleProduct(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 19900.0, info.UnitPrice)
	assert.Equal(t, 29900.0, info.OriginalPrice)
	assert.Equal(t, 33, info.DiscountPercent) // round((1 - 19900/29900) * 100)
	assert.Equal(t, "THE-001", info.SKU)
	assert.Nil(t, info.VariationID)
}

func TestResolveSimpleNotOnSale(t *testing.T) {
	p := simpleProduct()
	p.OnSale = false
	p.SalePrice = nil

	info, err := ResolvePrice(p, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 29900.0, info.UnitPrice)
	assert.Equal(t, 0, info.DiscountPercent)
}

func TestResolveVariationFullMatch(t *testing.T) {
	p, variations := variableProduct()

	info, err := ResolvePrice(p, variations, map[string]string{"Couleur": "Rouge", "Taille": "S"})
	require.NoError(t, err)

	assert.Equal(t, 450000.0, info.UnitPrice)
	assert.Equal(t, 500000.0, info.OriginalPrice)
	assert.Equal(t, 10, info.DiscountPercent)
	assert.Equal(t, "AOD-RS", info.SKU)
	require.NotNil(t, info.VariationID)
	assert.Equal(t, variations[0].ID, *info.VariationID)
}

func TestResolveVariationWithoutRegularPriceShowsNoDiscount(t *testing.T) {
	p, variations := variableProduct()

	info, err := ResolvePrice(p, variations, map[string]string{"Couleur": "Bleu", "Taille": "M"})
	require.NoError(t, err)

	assert.Equal(t, 480000.0, info.UnitPrice)
	assert.Equal(t, 480000.0, info.OriginalPrice)
	assert.Equal(t, 0, info.DiscountPercent)
	assert.Equal(t, models.StockOutOfStock, info.StockStatus)
}

func TestResolvePartialSelectionFails(t *testing.T) {
	p, variations := variableProduct()

	// Une seule option sur les deux requises: pas de résolution
	_, err := ResolvePrice(p, variations, map[string]string{"Couleur": "Rouge"})
	assert.ErrorIs(t, err, ErrIncompleteSelection)

	_, err = ResolvePrice(p, variations, nil)
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestResolveNoMatchingVariationFails(t *testing.T) {
	p, variations := variableProduct()

	// Combinaison complète mais inexistante: jamais une variation "proche"
	_, err := ResolvePrice(p, variations, map[string]string{"Couleur": "Rouge", "Taille": "M"})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestResolveNonVariationAttributeIgnored(t *testing.T) {
	p, variations := variableProduct()

	// "Matière" n'est pas un attribut de variation, son absence ne bloque pas
	info, err := ResolvePrice(p, variations, map[string]string{"Couleur": "Rouge", "Taille": "S"})
	require.NoError(t, err)
	assert.Equal(t, "AOD-RS", info.SKU)
}

func TestResolveUnmanagedStockAlwaysPurchasable(t *testing.T) {
	p := simpleProduct()
	p.ManageStock = false
	p.Stock = 0
	p.StockStatus = models.StockOutOfStock

	info, err := ResolvePrice(p, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StockInStock, info.StockStatus)
}

func TestResolveInactiveVariationSkipped(t *testing.T) {
	p, variations := variableProduct()
	variations[0].IsActive = false

	_, err := ResolvePrice(p, variations, map[string]string{"Couleur": "Rouge", "Taille": "S"})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}
