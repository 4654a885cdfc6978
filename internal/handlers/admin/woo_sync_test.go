package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lotus_back_end/internal/models"
)

func TestWooPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"prix entier", "150000", 150000},
		{"prix décimal", "99.5", 99.5},
		{"chaîne vide", "", 0},
		{"non numérique", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wooPrice(tt.in))
		})
	}
}

func TestWooStock(t *testing.T) {
	qty := 12
	assert.Equal(t, 12, wooStock(&qty))
	assert.Equal(t, 0, wooStock(nil))
}

func TestWooStockStatus(t *testing.T) {
	assert.Equal(t, models.StockInStock, wooStockStatus("instock"))
	assert.Equal(t, models.StockOutOfStock, wooStockStatus("outofstock"))
	assert.Equal(t, models.StockOnBackorder, wooStockStatus("onbackorder"))
	// Valeur inconnue: on considère le produit disponible
	assert.Equal(t, models.StockInStock, wooStockStatus(""))
}
