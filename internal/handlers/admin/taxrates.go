package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
)

// GET /api/admin/tax-rates
func GetTaxRates(c *gin.Context) {
	rates, err := cache.GetTaxRates(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement taux de taxe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tax_rates": rates})
}

type taxRateInput struct {
	Name              string  `json:"name" binding:"required"`
	Rate              float64 `json:"rate" binding:"required"`
	Class             string  `json:"class"`
	Priority          int     `json:"priority"`
	AppliesToShipping bool    `json:"applies_to_shipping"`
	IsActive          *bool   `json:"is_active"`
}

// POST /api/admin/tax-rates
func CreateTaxRate(c *gin.Context) {
	var input taxRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Rate < 0 || input.Rate > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Taux entre 0 et 100 requis"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	rate := models.TaxRate{
		ID:                gocql.TimeUUID(),
		Name:              input.Name,
		Rate:              input.Rate,
		Class:             input.Class,
		Priority:          input.Priority,
		AppliesToShipping: input.AppliesToShipping,
		IsActive:          isActive,
	}

	if err := session.Query(`INSERT INTO tax_rates (rate_id, name, rate, class, priority, applies_to_shipping, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rate.ID, rate.Name, rate.Rate, rate.Class, rate.Priority, rate.AppliesToShipping, rate.IsActive).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création taux: " + err.Error()})
		return
	}

	cache.InvalidateTaxRates(context.Background())
	c.JSON(http.StatusOK, rate)
}

// PUT /api/admin/tax-rates/:id
func UpdateTaxRate(c *gin.Context) {
	rateID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID taux invalide"})
		return
	}

	var input taxRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Rate < 0 || input.Rate > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Taux entre 0 et 100 requis"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	if err := session.Query(`UPDATE tax_rates SET name = ?, rate = ?, class = ?, priority = ?,
		applies_to_shipping = ?, is_active = ? WHERE rate_id = ?`,
		input.Name, input.Rate, input.Class, input.Priority, input.AppliesToShipping,
		isActive, rateID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour taux: " + err.Error()})
		return
	}

	cache.InvalidateTaxRates(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Taux mis à jour"})
}

// DELETE /api/admin/tax-rates/:id
func DeleteTaxRate(c *gin.Context) {
	rateID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID taux invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM tax_rates WHERE rate_id = ?`, rateID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression taux: " + err.Error()})
		return
	}

	cache.InvalidateTaxRates(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Taux supprimé"})
}
