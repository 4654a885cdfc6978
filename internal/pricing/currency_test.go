package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lotus_back_end/internal/models"
)

var (
	vnd = models.Currency{
		Code:           "VND",
		Symbol:         "₫",
		SymbolPosition: "after",
		ExchangeRate:   1,
		DecimalPlaces:  0,
		IsBase:         true,
		IsActive:       true,
	}
	usd = models.Currency{
		Code:           "USD",
		Symbol:         "$",
		SymbolPosition: "before",
		ExchangeRate:   1.0 / 25400,
		DecimalPlaces:  2,
		ThousandSep:    ",",
		DecimalSep:     ".",
		IsActive:       true,
	}
	eur = models.Currency{
		Code:           "EUR",
		Symbol:         "€",
		SymbolPosition: "after",
		ExchangeRate:   1.0 / 27000,
		DecimalPlaces:  2,
		ThousandSep:    ".",
		DecimalSep:     ",",
		IsActive:       true,
	}
)

func TestFormatAmountBaseCurrency(t *testing.T) {
	// Prix promo 19900 VND, taux 1, symbole après, pas de décimales
	assert.Equal(t, "19900₫", FormatAmount(19900, vnd))
}

func TestFormatAmountConversion(t *testing.T) {
	// 19900 VND ≈ 0.78 USD au taux 1/25400
	assert.Equal(t, "$0.78", FormatAmount(19900, usd))
}

func TestFormatAmountZeroDecimalsNoSeparator(t *testing.T) {
	// decimal_places=0: jamais de séparateur décimal, même sur un montant rond
	for _, amount := range []float64{0, 1, 999, 19900, 600000, 1234567} {
		got := FormatAmount(amount, vnd)
		assert.NotContains(t, got, ".", "montant %v", amount)
		assert.NotContains(t, got, ",", "montant %v", amount)
	}
}

func TestFormatAmountThousandGrouping(t *testing.T) {
	withSep := vnd
	withSep.ThousandSep = "."
	assert.Equal(t, "1.234.567₫", FormatAmount(1234567, withSep))
	assert.Equal(t, "600.000₫", FormatAmount(600000, withSep))
	assert.Equal(t, "999₫", FormatAmount(999, withSep))
}

func TestFormatAmountSymbolPosition(t *testing.T) {
	assert.True(t, strings.HasPrefix(FormatAmount(100000, usd), "$"))
	assert.True(t, strings.HasSuffix(FormatAmount(100000, eur), "€"))
}

func TestFormatAmountEuropeanSeparators(t *testing.T) {
	// 54000000 VND → 2000.00 EUR → "2.000,00€"
	assert.Equal(t, "2.000,00€", FormatAmount(54000000, eur))
}

func TestFormatAmountHalfUpRounding(t *testing.T) {
	cur := models.Currency{ExchangeRate: 1, DecimalPlaces: 2, DecimalSep: ".", Symbol: "$", SymbolPosition: "before"}
	assert.Equal(t, "$1.13", FormatAmount(1.125, cur))
	assert.Equal(t, "$1.00", FormatAmount(1.004, cur))
}

func TestFormatAmountFractionPadding(t *testing.T) {
	cur := models.Currency{ExchangeRate: 1, DecimalPlaces: 2, DecimalSep: ".", Symbol: "$", SymbolPosition: "before"}
	assert.Equal(t, "$5.05", FormatAmount(5.05, cur))
	assert.Equal(t, "$5.00", FormatAmount(5, cur))
}

// Le VND est une devise sans sous-unité: le montant envoyé au prestataire de
// paiement est le montant en đồng lui-même, jamais multiplié par 100.
func TestSubUnitAmountZeroDecimalCurrency(t *testing.T) {
	assert.Equal(t, int64(489800), SubUnitAmount(489800, vnd))
	assert.Equal(t, int64(19900), SubUnitAmount(19900, vnd))
	assert.Equal(t, int64(0), SubUnitAmount(0, vnd))
}

func TestSubUnitAmountTwoDecimalCurrency(t *testing.T) {
	cur := models.Currency{Code: "EUR", DecimalPlaces: 2, ExchangeRate: 1}
	assert.Equal(t, int64(1999), SubUnitAmount(19.99, cur))
	assert.Equal(t, int64(113), SubUnitAmount(1.125, cur)) // half-up
	assert.Equal(t, int64(500), SubUnitAmount(5, cur))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.13, RoundTo(1.125, 2))
	assert.Equal(t, 10.56, RoundTo(10.564, 2))
	assert.Equal(t, float64(11), RoundTo(10.5, 0))
}
