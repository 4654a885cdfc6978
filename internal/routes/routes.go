package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lotus_back_end/internal/handlers/admin"
	"lotus_back_end/internal/handlers/checkout"
	"lotus_back_end/internal/handlers/product"
	"lotus_back_end/internal/handlers/user"
	"lotus_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Boutique (public)
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", middleware.SearchRateLimit(), product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/products/:id/variations", product.GetVariations)
	api.POST("/products/:id/price", product.ResolveProductPrice)
	api.GET("/products/:id/reviews", product.GetProductReviews)
	api.GET("/currencies", admin.GetActiveCurrencies)
	api.GET("/settings/homepage", admin.GetHomepage)
	api.GET("/shipping/options", checkout.GetShippingOptions)
	api.GET("/coupons/validate", checkout.ValidateCouponPublic)

	// Authentification
	api.POST("/auth/register", user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.CallbackAuth)

	// Client connecté
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/auth/me", user.Me)

		authed.GET("/cart", user.GetCart)
		authed.POST("/cart", middleware.CartRateLimit(), user.AddToCart)
		authed.PUT("/cart/:productId", user.UpdateCartItem)
		authed.DELETE("/cart/:productId", user.RemoveFromCart)
		authed.DELETE("/cart", user.ClearCart)

		authed.POST("/checkout/quote", checkout.Quote)
		authed.POST("/checkout", checkout.Submit)

		authed.GET("/orders", user.GetMyOrders)
		authed.GET("/orders/:id", user.GetOrder)
		authed.GET("/orders/:id/invoice", checkout.GetInvoice)

		authed.POST("/products/:id/reviews", product.CreateReview)
	}

	// Back-office
	adm := api.Group("/admin")
	adm.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.POST("/products", product.CreateProduct)
		adm.PUT("/products/:id", product.UpdateProduct)
		adm.DELETE("/products/:id", product.DeleteProduct)
		adm.POST("/products/:id/variations", product.CreateVariation)
		adm.PUT("/products/:id/variations/:variationId", product.UpdateVariation)
		adm.DELETE("/products/:id/variations/:variationId", product.DeleteVariation)

		adm.POST("/products/:id/stock", product.AdjustStock)
		adm.GET("/products/:id/stock/movements", product.GetStockMovements)
		adm.GET("/stock/low", product.GetLowStockProducts)
		adm.GET("/stock/ws", product.StockAlertWebSocket)

		adm.GET("/orders", admin.GetAllOrders)
		adm.PUT("/orders/:id/status", admin.UpdateOrderStatus)

		adm.GET("/shipping/zones", admin.GetShippingZones)
		adm.POST("/shipping/zones", admin.CreateShippingZone)
		adm.PUT("/shipping/zones/:id", admin.UpdateShippingZone)
		adm.DELETE("/shipping/zones/:id", admin.DeleteShippingZone)
		adm.POST("/shipping/zones/:id/locations", admin.AddZoneLocation)
		adm.DELETE("/shipping/zones/:id/locations/:locationId", admin.RemoveZoneLocation)
		adm.POST("/shipping/zones/:id/methods", admin.AddZoneMethod)
		adm.PUT("/shipping/zones/:id/methods/:methodId", admin.UpdateZoneMethod)
		adm.DELETE("/shipping/zones/:id/methods/:methodId", admin.RemoveZoneMethod)

		adm.GET("/currencies", admin.GetAllCurrencies)
		adm.POST("/currencies", admin.CreateCurrency)
		adm.PUT("/currencies/:code", admin.UpdateCurrency)
		adm.DELETE("/currencies/:code", admin.DeleteCurrency)

		adm.GET("/tax-rates", admin.GetTaxRates)
		adm.POST("/tax-rates", admin.CreateTaxRate)
		adm.PUT("/tax-rates/:id", admin.UpdateTaxRate)
		adm.DELETE("/tax-rates/:id", admin.DeleteTaxRate)

		adm.GET("/coupons", admin.GetCoupons)
		adm.POST("/coupons", admin.CreateCoupon)
		adm.PUT("/coupons/:code", admin.UpdateCoupon)
		adm.DELETE("/coupons/:code", admin.DeleteCoupon)

		adm.GET("/settings", admin.GetStoreSettings)
		adm.PUT("/settings", admin.UpdateStoreSettings)
		adm.GET("/settings/homepage", admin.GetHomepageSections)
		adm.POST("/settings/homepage", admin.CreateHomepageSection)
		adm.PUT("/settings/homepage/:id", admin.UpdateHomepageSection)
		adm.DELETE("/settings/homepage/:id", admin.DeleteHomepageSection)

		adm.GET("/media", admin.ListMedia)
		adm.POST("/media", admin.UploadMedia)
		adm.DELETE("/media/:id", admin.DeleteMedia)

		adm.POST("/sync/woocommerce", admin.SyncWooCommerce)
	}
}
