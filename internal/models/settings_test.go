package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomepageSectionDecode(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected SectionSettings
	}{
		{
			name:    "hero",
			payload: `{"type":"hero","position":0,"is_active":true,"settings":{"title":"Bienvenue chez Lotus","image_url":"/banners/tet.jpg","cta_label":"Voir la collection","cta_link":"/products"}}`,
			expected: HeroSettings{
				Title:    "Bienvenue chez Lotus",
				ImageURL: "/banners/tet.jpg",
				CTALabel: "Voir la collection",
				CTALink:  "/products",
			},
		},
		{
			name:    "grille produits",
			payload: `{"type":"products","position":1,"is_active":true,"settings":{"title":"Promotions","limit":8,"on_sale_only":true}}`,
			expected: ProductGridSettings{
				Title:      "Promotions",
				Limit:      8,
				OnSaleOnly: true,
			},
		},
		{
			name:     "blog",
			payload:  `{"type":"blog","position":2,"is_active":false,"settings":{"title":"Actualités","limit":3}}`,
			expected: BlogSettings{Title: "Actualités", Limit: 3},
		},
		{
			name:    "tendances",
			payload: `{"type":"trending","position":3,"is_active":true,"settings":{"title":"Tendances","product_ids":["a","b"]}}`,
			expected: TrendingSettings{
				Title:      "Tendances",
				ProductIDs: []string{"a", "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var section HomepageSection
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &section))
			assert.Equal(t, tt.expected, section.Settings)
			assert.Equal(t, tt.expected.SectionType(), section.Type)
		})
	}
}

func TestHomepageSectionDecodeUnknownType(t *testing.T) {
	var section HomepageSection
	err := json.Unmarshal([]byte(`{"type":"carousel","settings":{}}`), &section)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carousel")
}

func TestHomepageSectionDecodeEmptySettings(t *testing.T) {
	var section HomepageSection
	require.NoError(t, json.Unmarshal([]byte(`{"type":"blog","position":1}`), &section))
	assert.Equal(t, BlogSettings{}, section.Settings)
}
