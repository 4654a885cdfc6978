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

// GET /api/admin/shipping/zones
func GetShippingZones(c *gin.Context) {
	zones, err := cache.GetShippingZones(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement zones"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"zones": zones})
}

// POST /api/admin/shipping/zones
func CreateShippingZone(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Type     string `json:"type" binding:"required"`
		Priority int    `json:"priority"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Type {
	case models.ZoneInnerCity, models.ZoneProvincial, models.ZoneContinental, models.ZoneGlobal:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de zone invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	zone := models.ShippingZone{
		ID:        gocql.TimeUUID(),
		Name:      input.Name,
		Type:      input.Type,
		Priority:  input.Priority,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Query(`INSERT INTO shipping_zones (zone_id, name, type, priority, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		zone.ID, zone.Name, zone.Type, zone.Priority, zone.IsActive, zone.CreatedAt, zone.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création zone: " + err.Error()})
		return
	}

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, zone)
}

// PUT /api/admin/shipping/zones/:id
func UpdateShippingZone(c *gin.Context) {
	zoneID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID zone invalide"})
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		Type     string `json:"type" binding:"required"`
		Priority int    `json:"priority"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
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

	if err := session.Query(`UPDATE shipping_zones SET name = ?, type = ?, priority = ?, is_active = ?, updated_at = ?
		WHERE zone_id = ?`,
		input.Name, input.Type, input.Priority, isActive, time.Now(), zoneID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour zone: " + err.Error()})
		return
	}

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Zone mise à jour"})
}

// DELETE /api/admin/shipping/zones/:id
func DeleteShippingZone(c *gin.Context) {
	zoneID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID zone invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM shipping_zones WHERE zone_id = ?`, zoneID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression zone: " + err.Error()})
		return
	}
	_ = session.Query(`DELETE FROM shipping_locations WHERE zone_id = ?`, zoneID).Exec()
	_ = session.Query(`DELETE FROM shipping_methods WHERE zone_id = ?`, zoneID).Exec()

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Zone supprimée"})
}

// POST /api/admin/shipping/zones/:id/locations
func AddZoneLocation(c *gin.Context) {
	zoneID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID zone invalide"})
		return
	}

	var input struct {
		Code string `json:"code" binding:"required"`
		Kind string `json:"kind" binding:"required"` // city, country, continent
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Kind != "city" && input.Kind != "country" && input.Kind != "continent" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kind invalide (city, country ou continent)"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	loc := models.ShippingLocation{
		ID:     gocql.TimeUUID(),
		ZoneID: zoneID,
		Code:   input.Code,
		Kind:   input.Kind,
	}

	if err := session.Query(`INSERT INTO shipping_locations (location_id, zone_id, code, kind) VALUES (?, ?, ?, ?)`,
		loc.ID, loc.ZoneID, loc.Code, loc.Kind).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout localisation: " + err.Error()})
		return
	}

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, loc)
}

// DELETE /api/admin/shipping/zones/:id/locations/:locationId
func RemoveZoneLocation(c *gin.Context) {
	zoneID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID zone invalide"})
		return
	}
	locationID, err := gocql.ParseUUID(c.Param("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID localisation invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM shipping_locations WHERE zone_id = ? AND location_id = ?`,
		zoneID, locationID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression localisation: " + err.Error()})
		return
	}

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Localisation supprimée"})
}

// POST /api/admin/shipping/zones/:id/methods
func AddZoneMethod(c *gin.Context) {
	zoneID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID zone invalide"})
		return
	}

	var input struct {
		Name          string   `json:"name" binding:"required"`
		Type          string   `json:"type" binding:"required"`
		Cost          float64  `json:"cost"`
		MinAmount     *float64 `json:"min_amount"`
		MaxAmount     *float64 `json:"max_amount"`
		EstimatedDays int      `json:"estimated_days"`
		Position      int      `json:"position"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Type {
	case models.MethodFlatRate, models.MethodFreeShipping, models.MethodExpress, models.MethodLocalPickup:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de méthode invalide"})
		return
	}
	if input.Cost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coût négatif interdit"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	m := models.ShippingMethod{
		ID:            gocql.TimeUUID(),
		ZoneID:        zoneID,
		Name:          input.Name,
		Type:          input.Type,
		Cost:          input.Cost,
		MinAmount:     input.MinAmount,
		MaxAmount:     input.MaxAmount,
		EstimatedDays: input.EstimatedDays,
		Position:      input.Position,
		IsActive:      true,
	}

	if err := session.Query(`INSERT INTO shipping_methods (method_id, zone_id, name, type, cost, min_amount,
		max_amount, estimated_days, position, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ZoneID, m.Name, m.Type, m.Cost, m.MinAmount, m.MaxAmount,
		m.EstimatedDays, m.Position, m.IsActive).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout méthode: " + err.Error()})
		return
	}

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, m)
}

// PUT /api/admin/shipping/zones/:id/methods/:methodId
func UpdateZoneMethod(c *gin.Context) {
	zoneID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID zone invalide"})
		return
	}
	methodID, err := gocql.ParseUUID(c.Param("methodId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID méthode invalide"})
		return
	}

	var input struct {
		Name          string   `json:"name" binding:"required"`
		Type          string   `json:"type" binding:"required"`
		Cost          float64  `json:"cost"`
		MinAmount     *float64 `json:"min_amount"`
		MaxAmount     *float64 `json:"max_amount"`
		EstimatedDays int      `json:"estimated_days"`
		Position      int      `json:"position"`
		IsActive      *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
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

	if err := session.Query(`UPDATE shipping_methods SET name = ?, type = ?, cost = ?, min_amount = ?,
		max_amount = ?, estimated_days = ?, position = ?, is_active = ? WHERE zone_id = ? AND method_id = ?`,
		input.Name, input.Type, input.Cost, input.MinAmount, input.MaxAmount,
		input.EstimatedDays, input.Position, isActive, zoneID, methodID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour méthode: " + err.Error()})
		return
	}

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Méthode mise à jour"})
}

// DELETE /api/admin/shipping/zones/:id/methods/:methodId
func RemoveZoneMethod(c *gin.Context) {
	zoneID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID zone invalide"})
		return
	}
	methodID, err := gocql.ParseUUID(c.Param("methodId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID méthode invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM shipping_methods WHERE zone_id = ? AND method_id = ?`,
		zoneID, methodID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression méthode: " + err.Error()})
		return
	}

	cache.InvalidateShippingZones(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Méthode supprimée"})
}
