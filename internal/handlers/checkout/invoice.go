package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/handlers/user"
	"lotus_back_end/internal/utils"
)

// GET /api/orders/:id/invoice: facture PDF générée via le front imprimé
// en headless Chrome, avec QR de paiement.
func GetInvoice(c *gin.Context) {
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

	order, err := user.LoadOrder(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.UserID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	pdf, err := utils.GenerateInvoicePDF(order.ID.String(), order.Total)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="facture_lotus_`+order.ID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
