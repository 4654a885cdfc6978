package product

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/services"
)

// GET /api/products/search?q=
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 Recherche Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, gin.H{"results": results, "source": "elastic"})
		return
	}

	// 🔁 Fallback ScyllaDB si l'index est vide ou indisponible
	// (scan complet filtré en mémoire, acceptable en secours seulement)
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

	var products []models.Product
	var p models.Product
	for scanProduct(iter, &p) {
		if p.IsActive && (containsIgnoreCase(p.Name, query) ||
			containsIgnoreCase(p.Description, query) ||
			containsIgnoreCase(p.SKU, query)) {
			products = append(products, p)
		}
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": products, "source": "scylla"})
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
