package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gocql/gocql"
)

// StoreSettings: configuration globale de la boutique. Chargée une fois par
// requête (snapshot immuable), jamais mutée en cours de traitement.
type StoreSettings struct {
	StoreName        string    `json:"store_name"`
	StoreEmail       string    `json:"store_email"`
	BaseCurrencyCode string    `json:"base_currency_code"`
	TaxesEnabled     bool      `json:"taxes_enabled"`
	LowStockAlerts   bool      `json:"low_stock_alerts"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Types de sections de page d'accueil
const (
	SectionHero     = "hero"
	SectionProducts = "products"
	SectionBlog     = "blog"
	SectionTrending = "trending"
)

// SectionSettings: réglages typés d'une section. Chaque type de section a sa
// propre forme, résolue par le discriminant "type" au décodage.
type SectionSettings interface {
	SectionType() string
}

type HeroSettings struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	CTALabel string `json:"cta_label"`
	CTALink  string `json:"cta_link"`
}

func (HeroSettings) SectionType() string { return SectionHero }

type ProductGridSettings struct {
	Title      string `json:"title"`
	CategoryID string `json:"category_id,omitempty"`
	Limit      int    `json:"limit"`
	OnSaleOnly bool   `json:"on_sale_only"`
}

func (ProductGridSettings) SectionType() string { return SectionProducts }

type BlogSettings struct {
	Title string `json:"title"`
	Limit int    `json:"limit"`
}

func (BlogSettings) SectionType() string { return SectionBlog }

type TrendingSettings struct {
	Title      string   `json:"title"`
	ProductIDs []string `json:"product_ids"`
}

func (TrendingSettings) SectionType() string { return SectionTrending }

// HomepageSection: section configurable de la page d'accueil.
type HomepageSection struct {
	ID       gocql.UUID      `json:"id"`
	Type     string          `json:"type"`
	Position int             `json:"position"`
	IsActive bool            `json:"is_active"`
	Settings SectionSettings `json:"settings"`
}

type homepageSectionJSON struct {
	ID       gocql.UUID      `json:"id"`
	Type     string          `json:"type"`
	Position int             `json:"position"`
	IsActive bool            `json:"is_active"`
	Settings json.RawMessage `json:"settings"`
}

func (s *HomepageSection) UnmarshalJSON(data []byte) error {
	var raw homepageSectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	settings, err := DecodeSectionSettings(raw.Type, raw.Settings)
	if err != nil {
		return err
	}

	s.ID = raw.ID
	s.Type = raw.Type
	s.Position = raw.Position
	s.IsActive = raw.IsActive
	s.Settings = settings
	return nil
}

// DecodeSectionSettings décode les réglages selon le type de section.
func DecodeSectionSettings(sectionType string, data json.RawMessage) (SectionSettings, error) {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	switch sectionType {
	case SectionHero:
		var s HeroSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return s, nil
	case SectionProducts:
		var s ProductGridSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return s, nil
	case SectionBlog:
		var s BlogSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return s, nil
	case SectionTrending:
		var s TrendingSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("type de section inconnu: %q", sectionType)
	}
}
