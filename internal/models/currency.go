package models

import "time"

// Currency: devise d'affichage. Tous les montants stockés sont dans la devise
// de base (IsBase=true, ExchangeRate=1); la conversion ne se fait qu'à
// l'affichage, jamais à la persistance.
type Currency struct {
	Code           string    `json:"code" db:"code"`
	Symbol         string    `json:"symbol" db:"symbol"`
	SymbolPosition string    `json:"symbol_position" db:"symbol_position"` // "before" ou "after"
	ExchangeRate   float64   `json:"exchange_rate" db:"exchange_rate"`
	DecimalPlaces  int       `json:"decimal_places" db:"decimal_places"`
	ThousandSep    string    `json:"thousand_sep" db:"thousand_sep"`
	DecimalSep     string    `json:"decimal_sep" db:"decimal_sep"`
	IsBase         bool      `json:"is_base" db:"is_base"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
