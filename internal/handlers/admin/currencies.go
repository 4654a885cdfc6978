package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
)

// GET /api/currencies: devises actives, côté boutique
func GetActiveCurrencies(c *gin.Context) {
	currencies, err := cache.GetCurrencies(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devises"})
		return
	}

	active := []models.Currency{}
	for _, cur := range currencies {
		if cur.IsActive {
			active = append(active, cur)
		}
	}

	c.JSON(http.StatusOK, gin.H{"currencies": active})
}

// GET /api/admin/currencies: toutes les devises
func GetAllCurrencies(c *gin.Context) {
	currencies, err := cache.GetCurrencies(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devises"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

type currencyInput struct {
	Code           string  `json:"code" binding:"required"`
	Symbol         string  `json:"symbol" binding:"required"`
	SymbolPosition string  `json:"symbol_position"`
	ExchangeRate   float64 `json:"exchange_rate"`
	DecimalPlaces  int     `json:"decimal_places"`
	ThousandSep    string  `json:"thousand_sep"`
	DecimalSep     string  `json:"decimal_sep"`
	IsBase         bool    `json:"is_base"`
	IsActive       *bool   `json:"is_active"`
}

func (in *currencyInput) validate() string {
	if in.SymbolPosition != "" && in.SymbolPosition != "before" && in.SymbolPosition != "after" {
		return "symbol_position doit être 'before' ou 'after'"
	}
	if in.ExchangeRate <= 0 {
		return "Le taux de change doit être strictement positif"
	}
	if in.DecimalPlaces < 0 || in.DecimalPlaces > 4 {
		return "decimal_places doit être entre 0 et 4"
	}
	// Invariant: la devise de base a toujours un taux de 1
	if in.IsBase && in.ExchangeRate != 1 {
		return "La devise de base doit avoir un taux de change de 1"
	}
	return ""
}

// POST /api/admin/currencies: ajoute une devise. Si is_base est demandé,
// l'ancienne devise de base est rétrogradée (une seule base à la fois).
func CreateCurrency(c *gin.Context) {
	var input currencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	ctx := context.Background()
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	existing, err := cache.GetCurrencies(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devises"})
		return
	}
	for _, cur := range existing {
		if cur.Code == input.Code {
			c.JSON(http.StatusConflict, gin.H{"error": "Cette devise existe déjà"})
			return
		}
	}

	if input.IsBase {
		if err := demoteCurrentBase(session, existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur bascule devise de base"})
			return
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	symbolPosition := input.SymbolPosition
	if symbolPosition == "" {
		symbolPosition = "after"
	}

	cur := models.Currency{
		Code:           input.Code,
		Symbol:         input.Symbol,
		SymbolPosition: symbolPosition,
		ExchangeRate:   input.ExchangeRate,
		DecimalPlaces:  input.DecimalPlaces,
		ThousandSep:    input.ThousandSep,
		DecimalSep:     input.DecimalSep,
		IsBase:         input.IsBase,
		IsActive:       isActive,
		UpdatedAt:      time.Now(),
	}

	if err := session.Query(`INSERT INTO currencies (code, symbol, symbol_position, exchange_rate, decimal_places,
		thousand_sep, decimal_sep, is_base, is_active, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cur.Code, cur.Symbol, cur.SymbolPosition, cur.ExchangeRate, cur.DecimalPlaces,
		cur.ThousandSep, cur.DecimalSep, cur.IsBase, cur.IsActive, cur.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création devise: " + err.Error()})
		return
	}

	cache.InvalidateCurrencies(ctx)
	c.JSON(http.StatusOK, cur)
}

// PUT /api/admin/currencies/:code
func UpdateCurrency(c *gin.Context) {
	code := c.Param("code")

	var input currencyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Code = code
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	ctx := context.Background()
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	existing, err := cache.GetCurrencies(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devises"})
		return
	}

	var current *models.Currency
	for i := range existing {
		if existing[i].Code == code {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devise introuvable"})
		return
	}

	// La base ne peut pas être rétrogradée directement: il faut promouvoir
	// une autre devise, qui rétrograde l'ancienne.
	if current.IsBase && !input.IsBase {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Promouvez une autre devise de base au lieu de rétrograder celle-ci"})
		return
	}

	if input.IsBase && !current.IsBase {
		if err := demoteCurrentBase(session, existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur bascule devise de base"})
			return
		}
	}

	isActive := current.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	if input.IsBase && !isActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La devise de base doit rester active"})
		return
	}

	if err := session.Query(`UPDATE currencies SET symbol = ?, symbol_position = ?, exchange_rate = ?,
		decimal_places = ?, thousand_sep = ?, decimal_sep = ?, is_base = ?, is_active = ?, updated_at = ?
		WHERE code = ?`,
		input.Symbol, input.SymbolPosition, input.ExchangeRate, input.DecimalPlaces,
		input.ThousandSep, input.DecimalSep, input.IsBase, isActive, time.Now(), code).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour devise: " + err.Error()})
		return
	}

	cache.InvalidateCurrencies(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Devise mise à jour"})
}

// DELETE /api/admin/currencies/:code
func DeleteCurrency(c *gin.Context) {
	code := c.Param("code")
	ctx := context.Background()

	existing, err := cache.GetCurrencies(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devises"})
		return
	}
	for _, cur := range existing {
		if cur.Code == code && cur.IsBase {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La devise de base ne peut pas être supprimée"})
			return
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM currencies WHERE code = ?`, code).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression devise: " + err.Error()})
		return
	}

	cache.InvalidateCurrencies(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Devise supprimée"})
}

// demoteCurrentBase rétrograde la devise de base actuelle avant d'en
// promouvoir une autre: une seule base à la fois.
func demoteCurrentBase(session *gocql.Session, currencies []models.Currency) error {
	for _, cur := range currencies {
		if cur.IsBase {
			return session.Query(`UPDATE currencies SET is_base = false, updated_at = ? WHERE code = ?`,
				time.Now(), cur.Code).Exec()
		}
	}
	return nil
}
