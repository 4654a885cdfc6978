package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les chemins chauds du checkout
	stmtGetProductByID    *gocql.Query
	stmtListVariations    *gocql.Query
	stmtListCurrencies    *gocql.Query
	stmtListShippingZones *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		catalogSession, err := GetCatalogSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements catalogue: %v", err)
			return
		}

		// Produit complet pour la résolution de prix au checkout
		stmtGetProductByID = catalogSession.Query(`SELECT product_id, name, description, sku, regular_price, sale_price, on_sale,
			manage_stock, stock, stock_status, low_stock_threshold, attributes, category_id, image_urls, tags, is_active, has_variations
			FROM products WHERE product_id = ?`)

		// Variations actives d'un produit
		stmtListVariations = catalogSession.Query(`SELECT variation_id, product_id, sku, price, regular_price, sale_price,
			stock, stock_status, options, is_active FROM product_variations WHERE product_id = ?`)

		ordersSession, err := GetOrdersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements commandes: %v", err)
			return
		}

		// Devises d'affichage
		stmtListCurrencies = ordersSession.Query(`SELECT code, symbol, symbol_position, exchange_rate, decimal_places,
			thousand_sep, decimal_sep, is_base, is_active, updated_at FROM currencies`)

		// Zones de livraison (les locations et méthodes sont chargées à part)
		stmtListShippingZones = ordersSession.Query(`SELECT zone_id, name, type, priority, is_active, created_at, updated_at
			FROM shipping_zones`)

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetProductByID() *gocql.Query {
	return stmtGetProductByID
}

func GetPreparedListVariations() *gocql.Query {
	return stmtListVariations
}

func GetPreparedListCurrencies() *gocql.Query {
	return stmtListCurrencies
}

func GetPreparedListShippingZones() *gocql.Query {
	return stmtListShippingZones
}
