package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
)

const orderColumns = `order_id, user_id, email, subtotal, discount, shipping_cost, tax, total,
	coupon_code, currency_code, shipping_zone_id, shipping_method_id, estimated_days,
	country, city, stripe_id, status, created_at`

// LoadOrder charge une commande et ses lignes depuis ks_orders
func LoadOrder(orderID gocql.UUID) (models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return models.Order{}, err
	}

	var o models.Order
	err = session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID).Scan(
		&o.ID, &o.UserID, &o.Email, &o.Subtotal, &o.Discount, &o.ShippingCost, &o.Tax, &o.Total,
		&o.CouponCode, &o.CurrencyCode, &o.ShippingZoneID, &o.ShippingMethodID, &o.EstimatedDays,
		&o.Country, &o.City, &o.StripeID, &o.Status, &o.CreatedAt)
	if err != nil {
		return models.Order{}, err
	}

	iter := session.Query(`SELECT order_id, product_id, variation_id, name, sku, unit_price, quantity
		FROM order_items WHERE order_id = ?`, orderID).Iter()
	var item models.OrderItem
	for iter.Scan(&item.OrderID, &item.ProductID, &item.VariationID, &item.Name, &item.SKU,
		&item.UnitPrice, &item.Quantity) {
		o.Items = append(o.Items, item)
		item = models.OrderItem{}
	}
	if err := iter.Close(); err != nil {
		return models.Order{}, err
	}

	return o, nil
}

// GET /api/orders: commandes du client connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, subtotal, discount, shipping_cost, tax, total, currency_code, status, created_at
		FROM orders_by_user WHERE user_id = ?`, userID).Iter()

	var orders []gin.H
	var orderID gocql.UUID
	var subtotal, discount, shippingCost, tax, total float64
	var currencyCode, status string
	var createdAt time.Time

	for iter.Scan(&orderID, &subtotal, &discount, &shippingCost, &tax, &total, &currencyCode, &status, &createdAt) {
		orders = append(orders, gin.H{
			"id":            orderID,
			"subtotal":      subtotal,
			"discount":      discount,
			"shipping_cost": shippingCost,
			"tax":           tax,
			"total":         total,
			"currency_code": currencyCode,
			"status":        status,
			"created_at":    createdAt,
		})
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func GetOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := LoadOrder(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Un client ne voit que ses commandes; un admin voit tout
	if order.UserID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	c.JSON(http.StatusOK, order)
}
