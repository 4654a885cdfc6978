package product

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/pricing"
)

// GET /api/products/:id/variations
func GetVariations(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	variations, err := LoadVariations(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture variations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"variations": variations})
}

// POST /api/products/:id/price: résout le prix pour une sélection
// d'options. Sélection incomplète = 422, pas une erreur serveur.
func ResolveProductPrice(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Selected map[string]string `json:"selected"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	p, err := LoadProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	variations, err := LoadVariations(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture variations"})
		return
	}

	info, err := pricing.ResolvePrice(p, variations, input.Selected)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":  "VARIATION_NOT_SELECTED",
			"error": "Veuillez choisir une option pour chaque attribut",
		})
		return
	}

	c.JSON(http.StatusOK, info)
}

// POST /api/admin/products/:id/variations
func CreateVariation(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var v models.ProductVariation
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(v.Options) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Une variation doit avoir au moins une option"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	v.ID = gocql.TimeUUID()
	v.ProductID = productID
	if v.StockStatus == "" {
		v.StockStatus = models.StockInStock
	}
	v.IsActive = true
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	if err := session.Query(`INSERT INTO product_variations (variation_id, product_id, sku, price,
		regular_price, sale_price, stock, stock_status, options, is_active, woo_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.ProductID, v.SKU, v.Price, v.RegularPrice, v.SalePrice, v.Stock, v.StockStatus,
		v.Options, v.IsActive, v.WooID, v.CreatedAt, v.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création variation: " + err.Error()})
		return
	}

	// Le produit devient variable dès sa première variation
	if err := session.Query(`UPDATE products SET has_variations = true, updated_at = ? WHERE product_id = ?`,
		now, productID).Exec(); err == nil {
		database.Redis.Del(context.Background(), "products:all")
	}

	c.JSON(http.StatusOK, v)
}

// PUT /api/admin/products/:id/variations/:variationId
func UpdateVariation(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	variationID, err := gocql.ParseUUID(c.Param("variationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID variation invalide"})
		return
	}

	var v models.ProductVariation
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	v.UpdatedAt = time.Now()
	if err := session.Query(`UPDATE product_variations SET sku = ?, price = ?, regular_price = ?,
		sale_price = ?, stock = ?, stock_status = ?, options = ?, is_active = ?, updated_at = ?
		WHERE product_id = ? AND variation_id = ?`,
		v.SKU, v.Price, v.RegularPrice, v.SalePrice, v.Stock, v.StockStatus, v.Options,
		v.IsActive, v.UpdatedAt, productID, variationID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour variation: " + err.Error()})
		return
	}

	v.ID = variationID
	v.ProductID = productID
	c.JSON(http.StatusOK, v)
}

// DELETE /api/admin/products/:id/variations/:variationId
func DeleteVariation(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	variationID, err := gocql.ParseUUID(c.Param("variationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID variation invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM product_variations WHERE product_id = ? AND variation_id = ?`,
		productID, variationID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression variation: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variation supprimée"})
}
