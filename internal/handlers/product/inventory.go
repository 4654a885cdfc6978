package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/database"
	"lotus_back_end/internal/kafka"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/utils"
)

// Canal Redis pub/sub des alertes stock bas (consommé par le websocket admin)
const LowStockChannel = "alerts:low_stock"

type LowStockAlert struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Stock     int       `json:"stock"`
	Threshold int       `json:"threshold"`
	At        time.Time `json:"at"`
}

// POST /api/admin/products/:id/stock: ajustement manuel du stock.
// type: "restock" (ajout) ou "adjustment" (valeur absolue).
func AdjustStock(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Type     string `json:"type" binding:"required"`
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Type != "restock" && input.Type != "adjustment" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de mouvement invalide (restock ou adjustment)"})
		return
	}

	p, err := LoadProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	prevStock := p.Stock
	newStock := prevStock
	switch input.Type {
	case "restock":
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité de réassort invalide"})
			return
		}
		newStock = prevStock + input.Quantity
	case "adjustment":
		if input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
			return
		}
		newStock = input.Quantity
	}

	stockStatus := p.StockStatus
	if newStock > 0 {
		stockStatus = models.StockInStock
	} else {
		stockStatus = models.StockOutOfStock
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE products SET stock = ?, stock_status = ?, updated_at = ? WHERE product_id = ?`,
		newStock, stockStatus, time.Now(), productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour stock: " + err.Error()})
		return
	}

	movement := models.StockMovement{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		PrevStock: prevStock,
		NewStock:  newStock,
		Reason:    input.Reason,
		UserID:    c.GetString("user_id"),
		CreatedAt: time.Now(),
	}
	if err := session.Query(`INSERT INTO stock_movements (movement_id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity, movement.PrevStock,
		movement.NewStock, movement.Reason, movement.UserID, movement.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Mouvement de stock non journalisé pour %s: %v", productID, err)
	}

	database.Redis.Del(context.Background(), "products:all")

	kafka.Publish(kafka.TopicStockChanged, productID.String(), gin.H{
		"product_id": productID.String(),
		"prev_stock": prevStock,
		"new_stock":  newStock,
		"type":       input.Type,
	})

	CheckLowStock(p, newStock)

	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"prev_stock": prevStock,
		"new_stock":  newStock,
		"movement":   movement,
	})
}

// CheckLowStock publie une alerte si le stock passe sous le seuil du produit.
// Appelé après ajustement manuel et après réservation checkout.
func CheckLowStock(p models.Product, newStock int) {
	if !p.ManageStock || p.LowStockThreshold <= 0 || newStock > p.LowStockThreshold {
		return
	}

	ctx := context.Background()
	settings, err := cache.GetStoreSettings(ctx)
	if err != nil || !settings.LowStockAlerts {
		return
	}

	alert := LowStockAlert{
		ProductID: p.ID.String(),
		Name:      p.Name,
		SKU:       p.SKU,
		Stock:     newStock,
		Threshold: p.LowStockThreshold,
		At:        time.Now(),
	}

	payload, _ := json.Marshal(alert)
	database.Redis.Publish(ctx, LowStockChannel, payload)

	kafka.Publish(kafka.TopicStockLow, p.ID.String(), alert)

	if settings.StoreEmail != "" {
		go func() {
			html := utils.GenerateLowStockAlertHTML(p.Name, p.SKU, newStock, p.LowStockThreshold)
			if err := utils.SendConfirmationEmail(settings.StoreEmail, "⚠️ Stock bas: "+p.Name, html, nil); err != nil {
				log.Printf("⚠️ E-mail d'alerte stock non envoyé: %v", err)
			}
		}()
	}
}

// GET /api/admin/products/:id/movements
func GetStockMovements(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT movement_id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at
		FROM stock_movements WHERE product_id = ?`, productID).Iter()

	var movements []models.StockMovement
	var m models.StockMovement
	for iter.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PrevStock, &m.NewStock, &m.Reason, &m.UserID, &m.CreatedAt) {
		movements = append(movements, m)
		m = models.StockMovement{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture mouvements: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements})
}

// GET /api/admin/stock/low: produits sous leur seuil d'alerte
func GetLowStockProducts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

	var low []models.Product
	var p models.Product
	for scanProduct(iter, &p) {
		if p.IsActive && p.ManageStock && p.LowStockThreshold > 0 && p.Stock <= p.LowStockThreshold {
			low = append(low, p)
		}
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": low, "count": len(low)})
}
