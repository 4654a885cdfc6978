package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/pricing"
	"lotus_back_end/internal/services"
)

const productColumns = `product_id, name, description, sku, regular_price, sale_price, on_sale,
	manage_stock, stock, stock_status, low_stock_threshold, attributes, category_id, image_urls,
	tags, is_active, has_variations, woo_id, created_at, updated_at`

func scanProduct(scanner interface {
	Scan(...interface{}) bool
}, p *models.Product) bool {
	return scanner.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.RegularPrice, &p.SalePrice,
		&p.OnSale, &p.ManageStock, &p.Stock, &p.StockStatus, &p.LowStockThreshold, &p.Attributes,
		&p.CategoryID, &p.ImageURLs, &p.Tags, &p.IsActive, &p.HasVariations, &p.WooID,
		&p.CreatedAt, &p.UpdatedAt)
}

// LoadProduct charge un produit complet depuis ks_catalog
func LoadProduct(productID gocql.UUID) (models.Product, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	err = session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.RegularPrice, &p.SalePrice,
		&p.OnSale, &p.ManageStock, &p.Stock, &p.StockStatus, &p.LowStockThreshold, &p.Attributes,
		&p.CategoryID, &p.ImageURLs, &p.Tags, &p.IsActive, &p.HasVariations, &p.WooID,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// LoadVariations charge les variations d'un produit
func LoadVariations(productID gocql.UUID) ([]models.ProductVariation, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT variation_id, product_id, sku, price, regular_price, sale_price,
		stock, stock_status, options, is_active, woo_id, created_at, updated_at
		FROM product_variations WHERE product_id = ?`, productID).Iter()

	var variations []models.ProductVariation
	var v models.ProductVariation
	for iter.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Price, &v.RegularPrice, &v.SalePrice,
		&v.Stock, &v.StockStatus, &v.Options, &v.IsActive, &v.WooID, &v.CreatedAt, &v.UpdatedAt) {
		variations = append(variations, v)
		v = models.ProductVariation{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return variations, nil
}

// GET /api/products: liste paginée, filtres catégorie/promo, prix d'affichage
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "products:all"

	var products []models.Product

	// ✅ Vérifie le cache Redis
	if val, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		_ = json.Unmarshal([]byte(val), &products)
	}

	if products == nil {
		session, err := database.GetCatalogSession()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
			return
		}

		iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

		var p models.Product
		for scanProduct(iter, &p) {
			products = append(products, p)
			p = models.Product{}
		}
		if err := iter.Close(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
			return
		}

		if data, err := json.Marshal(products); err == nil {
			database.Redis.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	// Filtres en mémoire (Scylla n'a pas de requêtes secondaires arbitraires)
	categoryID := c.Query("category_id")
	onSaleOnly := c.Query("on_sale") == "true"

	filtered := []models.Product{}
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if categoryID != "" && p.CategoryID.String() != categoryID {
			continue
		}
		if onSaleOnly && !p.OnSale {
			continue
		}
		filtered = append(filtered, p)
	}

	// Pagination simple
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageItems := filtered[start:end]

	// Prix d'affichage dans la devise demandée (repli devise de base)
	currency, err := cache.GetDisplayCurrency(ctx, c.Query("currency"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devises"})
		return
	}

	results := make([]gin.H, 0, len(pageItems))
	for _, p := range pageItems {
		unit := p.RegularPrice
		if p.OnSale && p.SalePrice != nil {
			unit = *p.SalePrice
		}
		results = append(results, gin.H{
			"product":        p,
			"display_price":  pricing.FormatAmount(unit, currency),
			"display_regular": pricing.FormatAmount(p.RegularPrice, currency),
			"currency":       currency.Code,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"products": results,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GET /api/products/:id: fiche produit avec variations et prix résolu
func GetProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := LoadProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var variations []models.ProductVariation
	if p.HasVariations {
		variations, err = LoadVariations(productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture variations"})
			return
		}
	}

	currency, err := cache.GetDisplayCurrency(context.Background(), c.Query("currency"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devises"})
		return
	}

	response := gin.H{
		"product":    p,
		"variations": variations,
		"currency":   currency.Code,
	}

	// Pour un produit simple, le prix se résout sans sélection
	if !p.HasVariations {
		info, err := pricing.ResolvePrice(p, nil, nil)
		if err == nil {
			response["price"] = info
			response["display_price"] = pricing.FormatAmount(info.UnitPrice, currency)
			response["display_original"] = pricing.FormatAmount(info.OriginalPrice, currency)
		}
	}

	c.JSON(http.StatusOK, response)
}

// POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var p models.Product

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.RegularPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix régulier requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p.ID = gocql.TimeUUID()
	if p.StockStatus == "" {
		p.StockStatus = models.StockInStock
	}
	p.IsActive = true
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := session.Query(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.SKU, p.RegularPrice, p.SalePrice, p.OnSale,
		p.ManageStock, p.Stock, p.StockStatus, p.LowStockThreshold, p.Attributes, p.CategoryID,
		p.ImageURLs, p.Tags, p.IsActive, p.HasVariations, p.WooID, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// 🔄 Indexation Elasticsearch + invalidation du cache liste
	go services.IndexProduct(p)
	database.Redis.Del(context.Background(), "products:all")

	c.JSON(http.StatusOK, p)
}

// PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	existing, err := LoadProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p.ID = productID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE products SET name = ?, description = ?, sku = ?, regular_price = ?,
		sale_price = ?, on_sale = ?, manage_stock = ?, stock = ?, stock_status = ?, low_stock_threshold = ?,
		attributes = ?, category_id = ?, image_urls = ?, tags = ?, is_active = ?, has_variations = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.SKU, p.RegularPrice, p.SalePrice, p.OnSale, p.ManageStock,
		p.Stock, p.StockStatus, p.LowStockThreshold, p.Attributes, p.CategoryID, p.ImageURLs,
		p.Tags, p.IsActive, p.HasVariations, p.UpdatedAt, productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	go services.IndexProduct(p)
	database.Redis.Del(context.Background(), "products:all")

	c.JSON(http.StatusOK, p)
}

// DELETE /api/admin/products/:id: désactivation puis suppression
func DeleteProduct(c *gin.Context) {
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

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit: " + err.Error()})
		return
	}
	if err := session.Query(`DELETE FROM product_variations WHERE product_id = ?`, productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression variations: " + err.Error()})
		return
	}

	go services.RemoveProductFromIndex(productID.String())
	database.Redis.Del(context.Background(), "products:all")

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
