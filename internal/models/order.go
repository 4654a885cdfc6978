package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order: agrégat créé à la soumission du checkout. Les prix unitaires des
// lignes sont des instantanés pris à la résolution: un changement ultérieur
// du catalogue ne modifie jamais une commande existante.
type Order struct {
	ID               gocql.UUID  `json:"id" db:"order_id"`
	UserID           string      `json:"user_id" db:"user_id"`
	Email            string      `json:"email" db:"email"`
	Items            []OrderItem `json:"items"`
	Subtotal         float64     `json:"subtotal" db:"subtotal"`
	Discount         float64     `json:"discount" db:"discount"`
	ShippingCost     float64     `json:"shipping_cost" db:"shipping_cost"`
	Tax              float64     `json:"tax" db:"tax"`
	Total            float64     `json:"total" db:"total"`
	CouponCode       string      `json:"coupon_code,omitempty" db:"coupon_code"`
	CurrencyCode     string      `json:"currency_code" db:"currency_code"`
	ShippingZoneID   gocql.UUID  `json:"shipping_zone_id" db:"shipping_zone_id"`
	ShippingMethodID gocql.UUID  `json:"shipping_method_id" db:"shipping_method_id"`
	EstimatedDays    int         `json:"estimated_days" db:"estimated_days"`
	Country          string      `json:"country" db:"country"`
	City             string      `json:"city" db:"city"`
	StripeID         string      `json:"stripe_id,omitempty" db:"stripe_id"`
	Status           string      `json:"status" db:"status"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
}

type OrderItem struct {
	OrderID     gocql.UUID  `json:"order_id" db:"order_id"`
	ProductID   gocql.UUID  `json:"product_id" db:"product_id"`
	VariationID *gocql.UUID `json:"variation_id,omitempty" db:"variation_id"`
	Name        string      `json:"name" db:"name"`
	SKU         string      `json:"sku" db:"sku"`
	UnitPrice   float64     `json:"unit_price" db:"unit_price"` // Instantané, devise de base
	Quantity    int         `json:"quantity" db:"quantity"`
}

type TaxRate struct {
	ID                gocql.UUID `json:"id" db:"rate_id"`
	Name              string     `json:"name" db:"name"`
	Rate              float64    `json:"rate" db:"rate"` // Pourcentage
	Class             string     `json:"class" db:"class"`
	Priority          int        `json:"priority" db:"priority"`
	AppliesToShipping bool       `json:"applies_to_shipping" db:"applies_to_shipping"`
	IsActive          bool       `json:"is_active" db:"is_active"`
}
