package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
)

// GET /api/admin/settings
func GetStoreSettings(c *gin.Context) {
	settings, err := cache.GetStoreSettings(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement réglages"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PUT /api/admin/settings: remplace le snapshot entier, pas de mise à jour
// partielle clé par clé.
func UpdateStoreSettings(c *gin.Context) {
	var input struct {
		StoreName        string `json:"store_name" binding:"required"`
		StoreEmail       string `json:"store_email"`
		BaseCurrencyCode string `json:"base_currency_code" binding:"required"`
		TaxesEnabled     bool   `json:"taxes_enabled"`
		LowStockAlerts   bool   `json:"low_stock_alerts"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()

	// Le code de base doit désigner la devise is_base
	base, err := cache.GetBaseCurrency(ctx)
	if err != nil || base.Code != input.BaseCurrencyCode {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base_currency_code doit correspondre à la devise de base"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	settings := models.StoreSettings{
		StoreName:        input.StoreName,
		StoreEmail:       input.StoreEmail,
		BaseCurrencyCode: input.BaseCurrencyCode,
		TaxesEnabled:     input.TaxesEnabled,
		LowStockAlerts:   input.LowStockAlerts,
		UpdatedAt:        time.Now(),
	}

	if err := session.Query(`UPDATE store_settings SET store_name = ?, store_email = ?, base_currency_code = ?,
		taxes_enabled = ?, low_stock_alerts = ?, updated_at = ? WHERE id = 'store'`,
		settings.StoreName, settings.StoreEmail, settings.BaseCurrencyCode,
		settings.TaxesEnabled, settings.LowStockAlerts, settings.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour réglages: " + err.Error()})
		return
	}

	cache.InvalidateStoreSettings(ctx)
	c.JSON(http.StatusOK, settings)
}

// loadHomepageSections charge et décode les sections triées par position
func loadHomepageSections() ([]models.HomepageSection, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT section_id, type, position, is_active, settings FROM homepage_sections`).Iter()

	var sections []models.HomepageSection
	var id gocql.UUID
	var sectionType, rawSettings string
	var position int
	var isActive bool

	for iter.Scan(&id, &sectionType, &position, &isActive, &rawSettings) {
		settings, err := models.DecodeSectionSettings(sectionType, json.RawMessage(rawSettings))
		if err != nil {
			// Section corrompue: on la saute plutôt que de casser la page
			continue
		}
		sections = append(sections, models.HomepageSection{
			ID:       id,
			Type:     sectionType,
			Position: position,
			IsActive: isActive,
			Settings: settings,
		})
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Position < sections[j].Position })
	return sections, nil
}

// GET /api/settings/homepage: sections actives, côté boutique
func GetHomepage(c *gin.Context) {
	sections, err := loadHomepageSections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement page d'accueil"})
		return
	}

	active := []models.HomepageSection{}
	for _, s := range sections {
		if s.IsActive {
			active = append(active, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{"sections": active})
}

// GET /api/admin/settings/homepage: toutes les sections
func GetHomepageSections(c *gin.Context) {
	sections, err := loadHomepageSections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement sections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// POST /api/admin/settings/homepage
func CreateHomepageSection(c *gin.Context) {
	var input struct {
		Type     string          `json:"type" binding:"required"`
		Position int             `json:"position"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Valide les réglages selon le type (union étiquetée)
	settings, err := models.DecodeSectionSettings(input.Type, input.Settings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	section := models.HomepageSection{
		ID:       gocql.TimeUUID(),
		Type:     input.Type,
		Position: input.Position,
		IsActive: true,
		Settings: settings,
	}

	rawSettings, _ := json.Marshal(settings)
	if err := session.Query(`INSERT INTO homepage_sections (section_id, type, position, is_active, settings)
		VALUES (?, ?, ?, ?, ?)`,
		section.ID, section.Type, section.Position, section.IsActive, string(rawSettings)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création section: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, section)
}

// PUT /api/admin/settings/homepage/:id
func UpdateHomepageSection(c *gin.Context) {
	sectionID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID section invalide"})
		return
	}

	var input struct {
		Type     string          `json:"type" binding:"required"`
		Position int             `json:"position"`
		IsActive *bool           `json:"is_active"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := models.DecodeSectionSettings(input.Type, input.Settings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	rawSettings, _ := json.Marshal(settings)
	if err := session.Query(`UPDATE homepage_sections SET type = ?, position = ?, is_active = ?, settings = ?
		WHERE section_id = ?`,
		input.Type, input.Position, isActive, string(rawSettings), sectionID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour section: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section mise à jour"})
}

// DELETE /api/admin/settings/homepage/:id
func DeleteHomepageSection(c *gin.Context) {
	sectionID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID section invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM homepage_sections WHERE section_id = ?`, sectionID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression section: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section supprimée"})
}
