package pricing

import (
	"math"
	"strconv"
	"strings"

	"lotus_back_end/internal/models"
)

// FormatAmount convertit un montant en devise de base vers la devise cible et
// le rend au format d'affichage (séparateurs + symbole). Arrondi half-up,
// appliqué une seule fois ici: les montants stockés ne sont jamais arrondis.
// La validité de la devise (active ou non) est la responsabilité de l'appelant:
// une devise inactive doit être remplacée par la devise de base en amont.
func FormatAmount(amount float64, cur models.Currency) string {
	converted := amount * cur.ExchangeRate

	factor := math.Pow(10, float64(cur.DecimalPlaces))
	negative := converted < 0
	cents := int64(math.Round(math.Abs(converted) * factor))

	intPart := cents / int64(factor)
	fracPart := cents % int64(factor)

	body := groupDigits(strconv.FormatInt(intPart, 10), cur.ThousandSep)

	// decimal_places=0 (VND, KRW...): pas de séparateur décimal du tout
	if cur.DecimalPlaces > 0 {
		frac := strconv.FormatInt(fracPart, 10)
		for len(frac) < cur.DecimalPlaces {
			frac = "0" + frac
		}
		body += cur.DecimalSep + frac
	}

	if negative {
		body = "-" + body
	}

	if cur.SymbolPosition == "before" {
		return cur.Symbol + body
	}
	return body + cur.Symbol
}

// groupDigits insère le séparateur de milliers tous les 3 chiffres.
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// SubUnitAmount convertit un montant en devise de base vers la plus petite
// unité attendue par les prestataires de paiement. Pour une devise à deux
// décimales le montant est en centimes; une devise sans décimale (VND, KRW...)
// s'envoie telle quelle, jamais multipliée par 100.
func SubUnitAmount(amount float64, cur models.Currency) int64 {
	factor := math.Pow(10, float64(cur.DecimalPlaces))
	return int64(math.Round(amount * factor))
}

// RoundTo arrondit half-up à n décimales. Utilisé uniquement pour la
// présentation finale des totaux, pas pour les étapes intermédiaires.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
