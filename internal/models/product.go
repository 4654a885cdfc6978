package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de stock possibles pour un produit ou une variation
const (
	StockInStock     = "in_stock"
	StockOutOfStock  = "out_of_stock"
	StockOnBackorder = "on_backorder"
)

type Product struct {
	ID                gocql.UUID         `json:"id" db:"product_id"`
	Name              string             `json:"name" db:"name"`
	Description       string             `json:"description" db:"description"`
	SKU               string             `json:"sku" db:"sku"`
	RegularPrice      float64            `json:"regular_price" db:"regular_price"`
	SalePrice         *float64           `json:"sale_price,omitempty" db:"sale_price"`
	OnSale            bool               `json:"on_sale" db:"on_sale"`
	ManageStock       bool               `json:"manage_stock" db:"manage_stock"`
	Stock             int                `json:"stock" db:"stock"`
	StockStatus       string             `json:"stock_status" db:"stock_status"`
	LowStockThreshold int                `json:"low_stock_threshold" db:"low_stock_threshold"`
	Attributes        []ProductAttribute `json:"attributes" db:"attributes"`
	CategoryID        gocql.UUID         `json:"category_id" db:"category_id"`
	ImageURLs         []string           `json:"image_urls" db:"image_urls"`
	Tags              []string           `json:"tags" db:"tags"`
	IsActive          bool               `json:"is_active" db:"is_active"`
	HasVariations     bool               `json:"has_variations" db:"has_variations"`
	WooID             int64              `json:"woo_id,omitempty" db:"woo_id"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`
}

// ProductAttribute: paire nom/valeur d'un produit.
// Variation=true signifie que l'attribut sert à distinguer les variations
// (le client doit choisir une option à l'achat).
type ProductAttribute struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Visible   bool   `json:"visible"`
	Variation bool   `json:"variation"`
}

// ProductVariation: combinaison achetable d'options d'un produit variable.
// Options contient une entrée pour chaque attribut marqué variation=true.
type ProductVariation struct {
	ID           gocql.UUID        `json:"id" db:"variation_id"`
	ProductID    gocql.UUID        `json:"product_id" db:"product_id"`
	SKU          string            `json:"sku" db:"sku"`
	Price        float64           `json:"price" db:"price"`
	RegularPrice *float64          `json:"regular_price,omitempty" db:"regular_price"`
	SalePrice    *float64          `json:"sale_price,omitempty" db:"sale_price"`
	Stock        int               `json:"stock" db:"stock"`
	StockStatus  string            `json:"stock_status" db:"stock_status"`
	Options      map[string]string `json:"options" db:"options"`
	IsActive     bool              `json:"is_active" db:"is_active"`
	WooID        int64             `json:"woo_id,omitempty" db:"woo_id"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

type StockMovement struct {
	ID        gocql.UUID `json:"id"`
	ProductID gocql.UUID `json:"product_id"`
	Type      string     `json:"type"` // "restock", "adjustment", "order"
	Quantity  int        `json:"quantity"`
	PrevStock int        `json:"prev_stock"`
	NewStock  int        `json:"new_stock"`
	Reason    string     `json:"reason"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}
