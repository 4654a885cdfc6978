package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/handlers/product"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/pricing"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string { return "cart:" + userID }

func loadCart(ctx context.Context, userID string) []models.CartItem {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		return []models.CartItem{}
	}
	var cart []models.CartItem
	_ = json.Unmarshal([]byte(data), &cart)
	return cart
}

func saveCart(ctx context.Context, userID string, cart []models.CartItem) {
	jsonData, _ := json.Marshal(cart)
	database.Redis.Set(ctx, cartKey(userID), jsonData, cartTTL)
}

// GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart := loadCart(context.Background(), userID)

	total := 0.0
	for _, item := range cart {
		total += item.UnitPrice * float64(item.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{"items": cart, "total": total})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string            `json:"productId" binding:"required"`
		Options   map[string]string `json:"options"`
		Quantity  int               `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID, err := gocql.ParseUUID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := product.LoadProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit indisponible"})
		return
	}

	var variations []models.ProductVariation
	if p.HasVariations {
		variations, err = product.LoadVariations(productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture variations"})
			return
		}
	}

	// La sélection doit résoudre un prix avant d'entrer au panier
	info, err := pricing.ResolvePrice(p, variations, input.Options)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":  "VARIATION_NOT_SELECTED",
			"error": "Veuillez choisir une option pour chaque attribut",
		})
		return
	}

	if info.StockStatus == models.StockOutOfStock {
		c.JSON(http.StatusConflict, gin.H{"code": "OUT_OF_STOCK", "error": "Produit en rupture de stock"})
		return
	}

	item := models.CartItem{
		ProductID: input.ProductID,
		Options:   input.Options,
		Name:      p.Name,
		SKU:       info.SKU,
		UnitPrice: info.UnitPrice,
		Quantity:  input.Quantity,
	}
	if info.VariationID != nil {
		item.VariationID = info.VariationID.String()
	}

	ctx := context.Background()
	cart := loadCart(ctx, userID)

	found := false
	for i := range cart {
		if cart[i].ProductID == item.ProductID && cart[i].VariationID == item.VariationID {
			cart[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, item)
	}

	saveCart(ctx, userID, cart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

// PUT /api/cart/:productId: met à jour la quantité d'une ligne
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		VariationID string `json:"variationId"`
		Quantity    int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID := c.Param("productId")
	ctx := context.Background()
	cart := loadCart(ctx, userID)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID == productID && item.VariationID == input.VariationID {
			if input.Quantity == 0 {
				continue // quantité 0 = suppression
			}
			item.Quantity = input.Quantity
		}
		newCart = append(newCart, item)
	}

	saveCart(ctx, userID, newCart)

	c.JSON(http.StatusOK, gin.H{"items": newCart})
}

// DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	variationID := c.Query("variation_id")
	ctx := context.Background()

	cart := loadCart(ctx, userID)
	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID == productID && (variationID == "" || item.VariationID == variationID) {
			continue
		}
		newCart = append(newCart, item)
	}

	saveCart(ctx, userID, newCart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   newCart,
	})
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := database.Redis.Del(context.Background(), cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
