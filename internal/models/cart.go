package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem: ligne de panier stockée dans Redis. Name et UnitPrice sont
// rafraîchis depuis le catalogue au moment du checkout, pas ici.
type CartItem struct {
	ProductID   string            `json:"product_id"`
	VariationID string            `json:"variation_id,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
	Name        string            `json:"name"`
	SKU         string            `json:"sku"`
	UnitPrice   float64           `json:"unit_price"`
	Quantity    int               `json:"quantity"`
}
