package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyInputValidate(t *testing.T) {
	base := currencyInput{Code: "VND", Symbol: "₫", SymbolPosition: "after", ExchangeRate: 1, DecimalPlaces: 0}

	tests := []struct {
		name   string
		mutate func(*currencyInput)
		wantOK bool
	}{
		{"valide", func(in *currencyInput) {}, true},
		{"position symbole invalide", func(in *currencyInput) { in.SymbolPosition = "middle" }, false},
		{"taux nul", func(in *currencyInput) { in.ExchangeRate = 0 }, false},
		{"taux négatif", func(in *currencyInput) { in.ExchangeRate = -2 }, false},
		{"trop de décimales", func(in *currencyInput) { in.DecimalPlaces = 5 }, false},
		{"base avec taux différent de 1", func(in *currencyInput) { in.IsBase = true; in.ExchangeRate = 25000 }, false},
		{"base avec taux 1", func(in *currencyInput) { in.IsBase = true }, true},
		{"devise secondaire taux libre", func(in *currencyInput) { in.Code = "USD"; in.ExchangeRate = 0.00004 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			msg := in.validate()
			if tt.wantOK {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestCouponInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		input  couponInput
		wantOK bool
	}{
		{"pourcentage valide", couponInput{Type: "percentage", Value: 10}, true},
		{"pourcentage au-dessus de 100", couponInput{Type: "percentage", Value: 150}, false},
		{"pourcentage nul", couponInput{Type: "percentage", Value: 0}, false},
		{"montant fixe valide", couponInput{Type: "fixed", Value: 50000}, true},
		{"montant fixe négatif", couponInput{Type: "fixed", Value: -5}, false},
		{"livraison gratuite sans valeur", couponInput{Type: "free_shipping"}, true},
		{"type inconnu", couponInput{Type: "bogo", Value: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.input.validate()
			if tt.wantOK {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
