package product

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
)

// GET /api/products/:id/reviews
func GetProductReviews(c *gin.Context) {
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

	iter := session.Query(`SELECT review_id, product_id, user_id, user_name, rating, comment, is_approved, created_at
		FROM reviews WHERE product_id = ?`, productID).Iter()

	var reviews []models.Review
	var r models.Review
	var totalRating int
	for iter.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.IsApproved, &r.CreatedAt) {
		if r.IsApproved {
			reviews = append(reviews, r)
			totalRating += r.Rating
		}
		r = models.Review{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis: " + err.Error()})
		return
	}

	average := 0.0
	if len(reviews) > 0 {
		average = float64(totalRating) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
		"average": average,
	})
}

// POST /api/products/:id/reviews (authentifié)
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Rating   int    `json:"rating" binding:"required,min=1,max=5"`
		Comment  string `json:"comment"`
		UserName string `json:"user_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note entre 1 et 5 requise"})
		return
	}

	// Le produit doit exister
	if _, err := LoadProduct(productID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	review := models.Review{
		ID:         gocql.TimeUUID(),
		ProductID:  productID,
		UserID:     userID,
		UserName:   input.UserName,
		Rating:     input.Rating,
		Comment:    input.Comment,
		IsApproved: true,
		CreatedAt:  time.Now(),
	}

	if err := session.Query(`INSERT INTO reviews (review_id, product_id, user_id, user_name, rating, comment, is_approved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.ProductID, review.UserID, review.UserName, review.Rating,
		review.Comment, review.IsApproved, review.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, review)
}
