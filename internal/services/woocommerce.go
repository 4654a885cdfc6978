package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Client REST WooCommerce v3 (authentification consumer key/secret en query).
// Utilisé uniquement par la synchro admin: pas besoin de plus qu'un http.Client.

type WooClient struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	HTTP           *http.Client
}

type WooProduct struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Type         string         `json:"type"` // "simple" ou "variable"
	Description  string         `json:"description"`
	SKU          string         `json:"sku"`
	RegularPrice string         `json:"regular_price"`
	SalePrice    string         `json:"sale_price"`
	OnSale       bool           `json:"on_sale"`
	ManageStock  bool           `json:"manage_stock"`
	StockQty     *int           `json:"stock_quantity"`
	StockStatus  string         `json:"stock_status"`
	Status       string         `json:"status"`
	Images       []WooImage     `json:"images"`
	Attributes   []WooAttribute `json:"attributes"`
}

type WooImage struct {
	Src string `json:"src"`
}

type WooAttribute struct {
	Name      string   `json:"name"`
	Visible   bool     `json:"visible"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

type WooVariation struct {
	ID           int     `json:"id"`
	SKU          string  `json:"sku"`
	Price        string  `json:"price"`
	RegularPrice string  `json:"regular_price"`
	SalePrice    string  `json:"sale_price"`
	ManageStock  bool    `json:"manage_stock"`
	StockQty     *int    `json:"stock_quantity"`
	StockStatus  string  `json:"stock_status"`
	Attributes   []struct {
		Name   string `json:"name"`
		Option string `json:"option"`
	} `json:"attributes"`
}

func NewWooClient() *WooClient {
	return &WooClient{
		BaseURL:        os.Getenv("WOO_BASE_URL"),
		ConsumerKey:    os.Getenv("WOO_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("WOO_CONSUMER_SECRET"),
		HTTP:           &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *WooClient) get(path string, params url.Values, out interface{}) error {
	if c.BaseURL == "" {
		return fmt.Errorf("WOO_BASE_URL non configuré")
	}

	params.Set("consumer_key", c.ConsumerKey)
	params.Set("consumer_secret", c.ConsumerSecret)

	fullURL := fmt.Sprintf("%s/wp-json/wc/v3%s?%s", c.BaseURL, path, params.Encode())

	resp, err := c.HTTP.Get(fullURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("WooCommerce %s: %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ListProducts récupère tous les produits, page par page (100 par page)
func (c *WooClient) ListProducts() ([]WooProduct, error) {
	var all []WooProduct
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("per_page", "100")
		params.Set("page", strconv.Itoa(page))

		var batch []WooProduct
		if err := c.get("/products", params, &batch); err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
	}
	return all, nil
}

// ListVariations récupère les variations d'un produit variable
func (c *WooClient) ListVariations(productID int) ([]WooVariation, error) {
	var all []WooVariation
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("per_page", "100")
		params.Set("page", strconv.Itoa(page))

		var batch []WooVariation
		if err := c.get(fmt.Sprintf("/products/%d/variations", productID), params, &batch); err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
	}
	return all, nil
}
