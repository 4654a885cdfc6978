package checkout

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"lotus_back_end/internal/cache"
	"lotus_back_end/internal/database"
	"lotus_back_end/internal/handlers/product"
	"lotus_back_end/internal/inventory"
	"lotus_back_end/internal/kafka"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/pricing"
	"lotus_back_end/internal/utils"
)

// cancelIntent annule un PaymentIntent orphelin (remplaçable en test)
var cancelIntent = func(id string) error {
	_, err := paymentintent.Cancel(id, nil)
	return err
}

// rollbackCheckout rend le stock réservé et, si un PaymentIntent a déjà été
// créé, l'annule: une commande qui n'existe pas ne doit laisser ni stock
// décrémenté ni paiement en attente.
func rollbackCheckout(ctx context.Context, store inventory.StockStore, lines []inventory.Line, intentID string) {
	inventory.Release(ctx, store, lines)
	if intentID == "" {
		return
	}
	if err := cancelIntent(intentID); err != nil {
		log.Printf("⚠️ PaymentIntent %s non annulé: %v", intentID, err)
	}
}

func respondCheckoutError(c *gin.Context, err error) {
	var ce *checkoutError
	if errors.As(err, &ce) {
		status := http.StatusUnprocessableEntity
		if ce.Code == CodeOutOfStock {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"code": ce.Code, "error": ce.Message})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// POST /api/checkout/quote: tarification sans engagement: aucun stock
// réservé, aucune commande créée.
func Quote(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	q, err := buildQuote(context.Background(), input)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subtotal":         q.Totals.Subtotal,
		"discount":         q.Totals.Discount,
		"shipping_cost":    q.Totals.ShippingCost,
		"tax":              q.Totals.Tax,
		"total":            q.Totals.Total,
		"shipping_zone":    q.Zone.Name,
		"shipping_options": q.Options,
		"currency":         q.Currency.Code,
		"display":          displayTotals(q.Totals, q.Currency),
	})
}

// POST /api/checkout: valide, réserve le stock, crée la commande et le
// PaymentIntent Stripe. La réservation est tout-ou-rien: une pénurie sur une
// ligne rend tout ce qui a déjà été décrémenté.
func Submit(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	ctx := context.Background()

	q, err := buildQuote(ctx, input)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	if q.Method == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":  CodeNoShippingZone,
			"error": "Aucune méthode de livraison active pour cette zone",
		})
		return
	}

	// 🔒 Réservation atomique du stock (LWT)
	catalogSession, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	store := &inventory.ScyllaStore{Session: catalogSession}

	if err := inventory.Reserve(ctx, store, q.Lines); err != nil {
		var shortage *inventory.ShortageError
		if errors.As(err, &shortage) {
			c.JSON(http.StatusConflict, gin.H{
				"code":      CodeOutOfStock,
				"error":     shortage.Error(),
				"product":   shortage.Name,
				"available": shortage.Available,
				"requested": shortage.Requested,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur réservation stock: " + err.Error()})
		return
	}

	// À partir d'ici, toute erreur doit rendre le stock réservé
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		rollbackCheckout(ctx, store, q.Lines, "")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	baseCur, err := cache.GetBaseCurrency(ctx)
	if err != nil {
		rollbackCheckout(ctx, store, q.Lines, "")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement devise de base"})
		return
	}

	order := models.Order{
		ID:               gocql.TimeUUID(),
		UserID:           userID,
		Email:            email,
		Items:            q.Items,
		Subtotal:         q.Totals.Subtotal,
		Discount:         q.Totals.Discount,
		ShippingCost:     q.Totals.ShippingCost,
		Tax:              q.Totals.Tax,
		Total:            q.Totals.Total,
		CurrencyCode:     q.Currency.Code,
		ShippingZoneID:   q.Zone.ID,
		ShippingMethodID: q.Method.MethodID,
		EstimatedDays:    q.Method.EstimatedDays,
		Country:          input.Destination.Country,
		City:             input.Destination.City,
		Status:           models.OrderPending,
		CreatedAt:        time.Now(),
	}
	if q.Coupon != nil {
		order.CouponCode = q.Coupon.Code
	}

	// 💳 PaymentIntent Stripe. Le montant part en sous-unités de la devise de
	// base: le VND n'a pas de sous-unité côté Stripe, donc pas de x100 aveugle.
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(pricing.SubUnitAmount(order.Total, baseCur)),
		Currency: stripe.String(strings.ToLower(baseCur.Code)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": order.ID.String(),
			"user_id":  userID,
			"email":    email,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		rollbackCheckout(ctx, store, q.Lines, "")
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement"})
		return
	}
	order.StripeID = intent.ID

	// 💾 Commande + lignes (instantanés de prix)
	if err := ordersSession.Query(`INSERT INTO orders (order_id, user_id, email, subtotal, discount, shipping_cost,
		tax, total, coupon_code, currency_code, shipping_zone_id, shipping_method_id, estimated_days,
		country, city, stripe_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.Email, order.Subtotal, order.Discount, order.ShippingCost,
		order.Tax, order.Total, order.CouponCode, order.CurrencyCode, order.ShippingZoneID,
		order.ShippingMethodID, order.EstimatedDays, order.Country, order.City, order.StripeID,
		order.Status, order.CreatedAt).Exec(); err != nil {
		rollbackCheckout(ctx, store, q.Lines, intent.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande: " + err.Error()})
		return
	}

	for _, item := range order.Items {
		if err := ordersSession.Query(`INSERT INTO order_items (order_id, product_id, variation_id, name, sku, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.VariationID, item.Name, item.SKU, item.UnitPrice, item.Quantity).Exec(); err != nil {
			log.Printf("⚠️ Ligne de commande non insérée pour %s: %v", order.ID, err)
		}
	}

	// Table miroir pour la liste "mes commandes"
	if err := ordersSession.Query(`INSERT INTO orders_by_user (user_id, order_id, subtotal, discount, shipping_cost,
		tax, total, currency_code, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.ID, order.Subtotal, order.Discount, order.ShippingCost,
		order.Tax, order.Total, order.CurrencyCode, order.Status, order.CreatedAt).Exec(); err != nil {
		log.Printf("⚠️ Indexation orders_by_user échouée pour %s: %v", order.ID, err)
	}

	// 🎟️ Consommation du coupon (CAS: deux checkouts simultanés ne comptent
	// jamais la même utilisation)
	if q.Coupon != nil {
		if err := consumeCoupon(ctx, &scyllaCouponStore{session: ordersSession}, q.Coupon.Code); err != nil {
			log.Printf("⚠️ Compteur d'utilisation du coupon %s non incrémenté: %v", q.Coupon.Code, err)
		}
		if err := ordersSession.Query(`INSERT INTO coupon_usage (usage_id, coupon_id, user_id, order_id, used_at)
			VALUES (?, ?, ?, ?, ?)`,
			gocql.TimeUUID(), q.Coupon.ID, userID, order.ID, time.Now()).Exec(); err != nil {
			log.Printf("⚠️ Utilisation du coupon %s non journalisée: %v", q.Coupon.Code, err)
		}
	}

	// 📣 Événement + alertes stock bas sur les produits touchés
	kafka.Publish(kafka.TopicOrderCreated, order.ID.String(), order)

	for _, line := range q.Lines {
		if p, ok := q.Products[line.ProductID.String()]; ok && line.VariationID == nil {
			product.CheckLowStock(p, p.Stock-line.Quantity)
		}
	}

	// 📧 Confirmation par e-mail (best-effort, hors requête)
	go func(o models.Order, cur models.Currency) {
		html := utils.GenerateOrderConfirmationHTML(o, cur)
		if err := utils.SendConfirmationEmail(o.Email, "Confirmation de votre commande Lotus", html, nil); err != nil {
			log.Printf("⚠️ E-mail de confirmation non envoyé pour %s: %v", o.ID, err)
		}
	}(order, q.Currency)

	// 🧹 Vide le panier Redis
	database.Redis.Del(ctx, "cart:"+userID)
	database.Redis.Del(ctx, "products:all")

	log.Printf("💳 Commande %s créée (%s) pour %s", order.ID, intent.ID, email)

	c.JSON(http.StatusOK, gin.H{
		"order_id":      order.ID,
		"client_secret": intent.ClientSecret,
		"payment_id":    intent.ID,
		"subtotal":      order.Subtotal,
		"discount":      order.Discount,
		"shipping_cost": order.ShippingCost,
		"tax":           order.Tax,
		"total":         order.Total,
		"currency":      q.Currency.Code,
		"display":       displayTotals(q.Totals, q.Currency),
	})
}
