package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
)

// GET /api/admin/coupons
func GetCoupons(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT coupon_id, code, type, value, min_amount, max_amount, max_uses, used_count,
		max_uses_per_user, starts_at, expires_at, is_active, created_by, created_at, updated_at FROM coupons`).Iter()

	var coupons []models.Coupon
	var cp models.Coupon
	for iter.Scan(&cp.ID, &cp.Code, &cp.Type, &cp.Value, &cp.MinAmount, &cp.MaxAmount, &cp.MaxUses,
		&cp.UsedCount, &cp.MaxUsesPerUser, &cp.StartsAt, &cp.ExpiresAt, &cp.IsActive,
		&cp.CreatedBy, &cp.CreatedAt, &cp.UpdatedAt) {
		coupons = append(coupons, cp)
		cp = models.Coupon{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture coupons: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

type couponInput struct {
	Code           string   `json:"code" binding:"required"`
	Type           string   `json:"type" binding:"required"`
	Value          float64  `json:"value"`
	MinAmount      float64  `json:"min_amount"`
	MaxAmount      *float64 `json:"max_amount"`
	MaxUses        int      `json:"max_uses"`
	MaxUsesPerUser int      `json:"max_uses_per_user"`
	StartsAt       string   `json:"starts_at"`
	ExpiresAt      string   `json:"expires_at" binding:"required"`
}

func (in *couponInput) validate() string {
	switch in.Type {
	case models.CouponPercentage:
		if in.Value <= 0 || in.Value > 100 {
			return "Un coupon percentage doit avoir une valeur entre 0 et 100"
		}
	case models.CouponFixed:
		if in.Value <= 0 {
			return "Un coupon fixed doit avoir une valeur positive"
		}
	case models.CouponFreeShipping:
		// pas de valeur
	default:
		return "Type de coupon invalide (percentage, fixed ou free_shipping)"
	}
	return ""
}

// POST /api/admin/coupons
func CreateCoupon(c *gin.Context) {
	var input couponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	expiresAt, err := time.Parse(time.RFC3339, input.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at invalide (RFC3339 attendu)"})
		return
	}
	var startsAt time.Time
	if input.StartsAt != "" {
		startsAt, err = time.Parse(time.RFC3339, input.StartsAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at invalide (RFC3339 attendu)"})
			return
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existingID gocql.UUID
	if err := session.Query(`SELECT coupon_id FROM coupons WHERE code = ?`, input.Code).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ce code promo existe déjà"})
		return
	}

	now := time.Now()
	coupon := models.Coupon{
		ID:             gocql.TimeUUID(),
		Code:           input.Code,
		Type:           input.Type,
		Value:          input.Value,
		MinAmount:      input.MinAmount,
		MaxAmount:      input.MaxAmount,
		MaxUses:        input.MaxUses,
		MaxUsesPerUser: input.MaxUsesPerUser,
		StartsAt:       startsAt,
		ExpiresAt:      expiresAt,
		IsActive:       true,
		CreatedBy:      c.GetString("user_id"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := session.Query(`INSERT INTO coupons (coupon_id, code, type, value, min_amount, max_amount,
		max_uses, used_count, max_uses_per_user, starts_at, expires_at, is_active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, ?)`,
		coupon.ID, coupon.Code, coupon.Type, coupon.Value, coupon.MinAmount, coupon.MaxAmount,
		coupon.MaxUses, coupon.MaxUsesPerUser, coupon.StartsAt, coupon.ExpiresAt, coupon.IsActive,
		coupon.CreatedBy, coupon.CreatedAt, coupon.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création coupon: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// PUT /api/admin/coupons/:code
func UpdateCoupon(c *gin.Context) {
	code := c.Param("code")

	var input struct {
		Value          float64  `json:"value"`
		MinAmount      float64  `json:"min_amount"`
		MaxAmount      *float64 `json:"max_amount"`
		MaxUses        int      `json:"max_uses"`
		MaxUsesPerUser int      `json:"max_uses_per_user"`
		ExpiresAt      string   `json:"expires_at"`
		IsActive       *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existing models.Coupon
	if err := session.Query(`SELECT coupon_id, expires_at, is_active FROM coupons WHERE code = ?`, code).
		Scan(&existing.ID, &existing.ExpiresAt, &existing.IsActive); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	expiresAt := existing.ExpiresAt
	if input.ExpiresAt != "" {
		expiresAt, err = time.Parse(time.RFC3339, input.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at invalide (RFC3339 attendu)"})
			return
		}
	}
	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	if err := session.Query(`UPDATE coupons SET value = ?, min_amount = ?, max_amount = ?, max_uses = ?,
		max_uses_per_user = ?, expires_at = ?, is_active = ?, updated_at = ? WHERE code = ?`,
		input.Value, input.MinAmount, input.MaxAmount, input.MaxUses, input.MaxUsesPerUser,
		expiresAt, isActive, time.Now(), code).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour coupon: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon mis à jour"})
}

// DELETE /api/admin/coupons/:code
func DeleteCoupon(c *gin.Context) {
	code := c.Param("code")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM coupons WHERE code = ?`, code).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression coupon: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon supprimé"})
}
