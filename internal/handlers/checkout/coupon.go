package checkout

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lotus_back_end/internal/models"
	"lotus_back_end/internal/pricing"
)

// GET /api/coupons/validate?code=&cart_total=: validation côté boutique,
// avant le checkout. Ne consomme rien.
func ValidateCouponPublic(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code requis"})
		return
	}
	cartTotal, _ := strconv.ParseFloat(c.DefaultQuery("cart_total", "0"), 64)

	coupon, err := LoadCouponByCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, models.CouponValidation{
			IsValid:      false,
			ErrorMessage: "Code invalide ou expiré",
			Code:         code,
		})
		return
	}

	if err := pricing.ValidateCoupon(coupon, cartTotal, time.Now()); err != nil {
		c.JSON(http.StatusOK, models.CouponValidation{
			IsValid:      false,
			ErrorMessage: err.Error(),
			Type:         coupon.Type,
			Code:         coupon.Code,
		})
		return
	}

	c.JSON(http.StatusOK, models.CouponValidation{
		IsValid:  true,
		Discount: pricing.CouponDiscount(coupon, cartTotal),
		Type:     coupon.Type,
		Code:     coupon.Code,
	})
}
