package admin

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/services"
)

// wooPrice convertit les prix WooCommerce (chaînes, parfois vides) en float64
func wooPrice(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func wooStock(qty *int) int {
	if qty == nil {
		return 0
	}
	return *qty
}

func wooStockStatus(status string) string {
	switch status {
	case "outofstock":
		return models.StockOutOfStock
	case "onbackorder":
		return models.StockOnBackorder
	default:
		return models.StockInStock
	}
}

// POST /api/admin/sync/woocommerce: importe le catalogue WooCommerce.
// Les produits déjà importés (même woo_id) sont mis à jour, les autres créés.
func SyncWooCommerce(c *gin.Context) {
	client := services.NewWooClient()

	wooProducts, err := client.ListProducts()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur WooCommerce: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// woo_id → product_id des produits déjà synchronisés
	existing := map[int64]gocql.UUID{}
	iter := session.Query(`SELECT product_id, woo_id FROM products`).Iter()
	var pid gocql.UUID
	var wooID int64
	for iter.Scan(&pid, &wooID) {
		if wooID != 0 {
			existing[wooID] = pid
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	created, updated, variationCount := 0, 0, 0
	now := time.Now()

	for _, wp := range wooProducts {
		if wp.Status != "publish" {
			continue
		}

		attributes := make([]models.ProductAttribute, 0, len(wp.Attributes))
		for _, attr := range wp.Attributes {
			for _, opt := range attr.Options {
				attributes = append(attributes, models.ProductAttribute{
					Name:      attr.Name,
					Value:     opt,
					Visible:   attr.Visible,
					Variation: attr.Variation,
				})
			}
		}

		imageURLs := make([]string, 0, len(wp.Images))
		for _, img := range wp.Images {
			imageURLs = append(imageURLs, img.Src)
		}

		salePrice := wooPrice(wp.SalePrice)
		var salePricePtr *float64
		if wp.OnSale && salePrice > 0 {
			salePricePtr = &salePrice
		}

		p := models.Product{
			Name:              wp.Name,
			Description:       wp.Description,
			SKU:               wp.SKU,
			RegularPrice:      wooPrice(wp.RegularPrice),
			SalePrice:         salePricePtr,
			OnSale:            wp.OnSale,
			ManageStock:       wp.ManageStock,
			Stock:             wooStock(wp.StockQty),
			StockStatus:       wooStockStatus(wp.StockStatus),
			LowStockThreshold: 5,
			Attributes:        attributes,
			ImageURLs:         imageURLs,
			IsActive:          true,
			HasVariations:     wp.Type == "variable",
			WooID:             int64(wp.ID),
			UpdatedAt:         now,
		}

		if productID, ok := existing[int64(wp.ID)]; ok {
			p.ID = productID
			if err := session.Query(`UPDATE products SET name = ?, description = ?, sku = ?, regular_price = ?,
				sale_price = ?, on_sale = ?, manage_stock = ?, stock = ?, stock_status = ?, attributes = ?,
				image_urls = ?, has_variations = ?, updated_at = ? WHERE product_id = ?`,
				p.Name, p.Description, p.SKU, p.RegularPrice, p.SalePrice, p.OnSale,
				p.ManageStock, p.Stock, p.StockStatus, p.Attributes, p.ImageURLs,
				p.HasVariations, p.UpdatedAt, p.ID).Exec(); err != nil {
				log.Println("❌ Sync Woo: mise à jour produit", wp.ID, ":", err)
				continue
			}
			updated++
		} else {
			p.ID = gocql.TimeUUID()
			p.CreatedAt = now
			if err := session.Query(`INSERT INTO products (`+productInsertColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.Name, p.Description, p.SKU, p.RegularPrice, p.SalePrice, p.OnSale,
				p.ManageStock, p.Stock, p.StockStatus, p.LowStockThreshold, p.Attributes,
				p.CategoryID, p.ImageURLs, p.Tags, p.IsActive, p.HasVariations, p.WooID,
				p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
				log.Println("❌ Sync Woo: création produit", wp.ID, ":", err)
				continue
			}
			created++
		}

		if wp.Type == "variable" {
			n, err := syncVariations(session, client, wp.ID, p.ID, now)
			if err != nil {
				log.Println("❌ Sync Woo: variations produit", wp.ID, ":", err)
			}
			variationCount += n
		}

		go services.IndexProduct(p)
	}

	database.Redis.Del(context.Background(), "products:all")
	log.Printf("✅ Sync WooCommerce: %d créés, %d mis à jour, %d variations", created, updated, variationCount)

	c.JSON(http.StatusOK, gin.H{
		"created":    created,
		"updated":    updated,
		"variations": variationCount,
	})
}

const productInsertColumns = `product_id, name, description, sku, regular_price, sale_price, on_sale,
	manage_stock, stock, stock_status, low_stock_threshold, attributes, category_id, image_urls,
	tags, is_active, has_variations, woo_id, created_at, updated_at`

func syncVariations(session *gocql.Session, client *services.WooClient, wooProductID int, productID gocql.UUID, now time.Time) (int, error) {
	wooVariations, err := client.ListVariations(wooProductID)
	if err != nil {
		return 0, err
	}

	// woo_id → variation_id des variations déjà importées
	existing := map[int64]gocql.UUID{}
	iter := session.Query(`SELECT variation_id, woo_id FROM product_variations WHERE product_id = ?`, productID).Iter()
	var vid gocql.UUID
	var wooID int64
	for iter.Scan(&vid, &wooID) {
		if wooID != 0 {
			existing[wooID] = vid
		}
	}
	if err := iter.Close(); err != nil {
		return 0, err
	}

	count := 0
	for _, wv := range wooVariations {
		options := map[string]string{}
		for _, attr := range wv.Attributes {
			options[attr.Name] = attr.Option
		}

		regularPrice := wooPrice(wv.RegularPrice)
		salePrice := wooPrice(wv.SalePrice)
		var regularPtr, salePtr *float64
		if regularPrice > 0 {
			regularPtr = &regularPrice
		}
		if salePrice > 0 {
			salePtr = &salePrice
		}

		v := models.ProductVariation{
			ProductID:    productID,
			SKU:          wv.SKU,
			Price:        wooPrice(wv.Price),
			RegularPrice: regularPtr,
			SalePrice:    salePtr,
			Stock:        wooStock(wv.StockQty),
			StockStatus:  wooStockStatus(wv.StockStatus),
			Options:      options,
			IsActive:     true,
			WooID:        int64(wv.ID),
			UpdatedAt:    now,
		}

		if variationID, ok := existing[int64(wv.ID)]; ok {
			v.ID = variationID
			err = session.Query(`UPDATE product_variations SET sku = ?, price = ?, regular_price = ?,
				sale_price = ?, stock = ?, stock_status = ?, options = ?, updated_at = ?
				WHERE product_id = ? AND variation_id = ?`,
				v.SKU, v.Price, v.RegularPrice, v.SalePrice, v.Stock, v.StockStatus,
				v.Options, v.UpdatedAt, v.ProductID, v.ID).Exec()
		} else {
			v.ID = gocql.TimeUUID()
			v.CreatedAt = now
			err = session.Query(`INSERT INTO product_variations (variation_id, product_id, sku, price,
				regular_price, sale_price, stock, stock_status, options, is_active, woo_id, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				v.ID, v.ProductID, v.SKU, v.Price, v.RegularPrice, v.SalePrice, v.Stock,
				v.StockStatus, v.Options, v.IsActive, v.WooID, v.CreatedAt, v.UpdatedAt).Exec()
		}
		if err != nil {
			log.Println("❌ Sync Woo: variation", wv.ID, ":", err)
			continue
		}
		count++
	}

	return count, nil
}
