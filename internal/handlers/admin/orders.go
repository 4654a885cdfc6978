package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/handlers/user"
	"lotus_back_end/internal/kafka"
	"lotus_back_end/internal/models"
)

// GET /api/admin/orders: toutes les commandes, filtre optionnel ?status=
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	statusFilter := c.Query("status")

	iter := session.Query(`SELECT order_id, user_id, email, total, currency_code, status, created_at FROM orders`).Iter()

	var orders []gin.H
	var orderID gocql.UUID
	var userID, email, currencyCode, status string
	var total float64
	var createdAt time.Time

	for iter.Scan(&orderID, &userID, &email, &total, &currencyCode, &status, &createdAt) {
		if statusFilter != "" && status != statusFilter {
			continue
		}
		orders = append(orders, gin.H{
			"id":            orderID,
			"user_id":       userID,
			"email":         email,
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

var validOrderStatuses = map[string]bool{
	models.OrderPending:   true,
	models.OrderPaid:      true,
	models.OrderShipped:   true,
	models.OrderDelivered: true,
	models.OrderCancelled: true,
}

// PUT /api/admin/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validOrderStatuses[input.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	order, err := user.LoadOrder(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE orders SET status = ? WHERE order_id = ?`,
		input.Status, orderID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut: " + err.Error()})
		return
	}
	// Miroir orders_by_user, meilleur effort
	session.Query(`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND order_id = ?`,
		input.Status, order.UserID, orderID).Exec()

	if input.Status == models.OrderPaid && order.Status != models.OrderPaid {
		order.Status = models.OrderPaid
		kafka.Publish(kafka.TopicOrderPaid, orderID.String(), order)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "status": input.Status})
}
