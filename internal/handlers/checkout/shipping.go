package checkout

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/shipping"
)

// GET /api/shipping/options?country=&city=&subtotal=
func GetShippingOptions(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'country' manquant"})
		return
	}
	subtotal, _ := strconv.ParseFloat(c.DefaultQuery("subtotal", "0"), 64)

	zones, err := cache.GetShippingZones(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement zones"})
		return
	}

	dest := models.Destination{Country: country, City: c.Query("city")}
	zone, err := shipping.MatchZone(dest, zones)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":  CodeNoShippingZone,
			"error": "Aucune zone de livraison ne couvre cette destination",
		})
		return
	}

	quotes := shipping.CalculateRates(*zone, subtotal)

	c.JSON(http.StatusOK, gin.H{
		"zone": gin.H{
			"id":   zone.ID,
			"name": zone.Name,
			"type": zone.Type,
		},
		"options": quotes,
	})
}
