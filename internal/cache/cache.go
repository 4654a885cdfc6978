package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
)

const (
	CurrencyCacheTTL = 10 * time.Minute
	ZoneCacheTTL     = 10 * time.Minute
	TaxRateCacheTTL  = 10 * time.Minute
	SettingsCacheTTL = 5 * time.Minute

	currenciesKey = "currencies:all"
	zonesKey      = "shipping_zones:all"
	taxRatesKey   = "tax_rates:all"
	settingsKey   = "store_settings"
)

// GetCurrencies récupère toutes les devises depuis Redis ou ScyllaDB.
func GetCurrencies(ctx context.Context) ([]models.Currency, error) {
	data, err := database.Redis.Get(ctx, currenciesKey).Result()
	if err == nil {
		var currencies []models.Currency
		if json.Unmarshal([]byte(data), &currencies) == nil {
			return currencies, nil
		}
	}

	currencies, err := loadCurrencies()
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(currencies)
	database.Redis.Set(ctx, currenciesKey, jsonData, CurrencyCacheTTL)

	return currencies, nil
}

// GetBaseCurrency retourne la devise de base (is_base=true, taux 1).
func GetBaseCurrency(ctx context.Context) (models.Currency, error) {
	currencies, err := GetCurrencies(ctx)
	if err != nil {
		return models.Currency{}, err
	}
	for _, cur := range currencies {
		if cur.IsBase {
			return cur, nil
		}
	}
	return models.Currency{}, fmt.Errorf("aucune devise de base configurée")
}

// GetDisplayCurrency retourne la devise d'affichage demandée, avec repli sur
// la devise de base si le code est inconnu ou la devise inactive. Le repli
// est ici (côté appelant du formateur), pas dans le formateur lui-même.
func GetDisplayCurrency(ctx context.Context, code string) (models.Currency, error) {
	if code != "" {
		currencies, err := GetCurrencies(ctx)
		if err != nil {
			return models.Currency{}, err
		}
		for _, cur := range currencies {
			if cur.Code == code && cur.IsActive {
				return cur, nil
			}
		}
	}
	return GetBaseCurrency(ctx)
}

func loadCurrencies() ([]models.Currency, error) {
	query := database.GetPreparedListCurrencies()
	if query == nil {
		return nil, fmt.Errorf("prepared statements non initialisés")
	}

	iter := query.Iter()
	defer iter.Close()

	var currencies []models.Currency
	var cur models.Currency

	for iter.Scan(&cur.Code, &cur.Symbol, &cur.SymbolPosition, &cur.ExchangeRate,
		&cur.DecimalPlaces, &cur.ThousandSep, &cur.DecimalSep, &cur.IsBase,
		&cur.IsActive, &cur.UpdatedAt) {
		currencies = append(currencies, cur)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return currencies, nil
}

// InvalidateCurrencies invalide le cache devises (après modification admin)
func InvalidateCurrencies(ctx context.Context) {
	database.Redis.Del(ctx, currenciesKey)
}

// GetShippingZones récupère les zones complètes (locations + méthodes).
func GetShippingZones(ctx context.Context) ([]models.ShippingZone, error) {
	data, err := database.Redis.Get(ctx, zonesKey).Result()
	if err == nil {
		var zones []models.ShippingZone
		if json.Unmarshal([]byte(data), &zones) == nil {
			return zones, nil
		}
	}

	zones, err := loadShippingZones()
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(zones)
	database.Redis.Set(ctx, zonesKey, jsonData, ZoneCacheTTL)

	return zones, nil
}

func loadShippingZones() ([]models.ShippingZone, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := database.GetPreparedListShippingZones().Iter()
	defer iter.Close()

	var zones []models.ShippingZone
	var z models.ShippingZone

	for iter.Scan(&z.ID, &z.Name, &z.Type, &z.Priority, &z.IsActive, &z.CreatedAt, &z.UpdatedAt) {
		zones = append(zones, models.ShippingZone{
			ID: z.ID, Name: z.Name, Type: z.Type, Priority: z.Priority,
			IsActive: z.IsActive, CreatedAt: z.CreatedAt, UpdatedAt: z.UpdatedAt,
		})
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	for i := range zones {
		locIter := session.Query(`SELECT location_id, zone_id, code, kind FROM shipping_locations WHERE zone_id = ?`,
			zones[i].ID).Iter()
		var loc models.ShippingLocation
		for locIter.Scan(&loc.ID, &loc.ZoneID, &loc.Code, &loc.Kind) {
			zones[i].Locations = append(zones[i].Locations, loc)
		}
		if err := locIter.Close(); err != nil {
			return nil, err
		}

		methodIter := session.Query(`SELECT method_id, zone_id, name, type, cost, min_amount, max_amount,
			estimated_days, position, is_active FROM shipping_methods WHERE zone_id = ?`, zones[i].ID).Iter()
		var m models.ShippingMethod
		for methodIter.Scan(&m.ID, &m.ZoneID, &m.Name, &m.Type, &m.Cost, &m.MinAmount,
			&m.MaxAmount, &m.EstimatedDays, &m.Position, &m.IsActive) {
			zones[i].Methods = append(zones[i].Methods, m)
			m = models.ShippingMethod{}
		}
		if err := methodIter.Close(); err != nil {
			return nil, err
		}
	}

	return zones, nil
}

// InvalidateShippingZones invalide le cache zones (après modification admin)
func InvalidateShippingZones(ctx context.Context) {
	database.Redis.Del(ctx, zonesKey)
}

// GetTaxRates récupère les taux de taxe actifs.
func GetTaxRates(ctx context.Context) ([]models.TaxRate, error) {
	data, err := database.Redis.Get(ctx, taxRatesKey).Result()
	if err == nil {
		var rates []models.TaxRate
		if json.Unmarshal([]byte(data), &rates) == nil {
			return rates, nil
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT rate_id, name, rate, class, priority, applies_to_shipping, is_active FROM tax_rates`).Iter()
	defer iter.Close()

	var rates []models.TaxRate
	var r models.TaxRate
	for iter.Scan(&r.ID, &r.Name, &r.Rate, &r.Class, &r.Priority, &r.AppliesToShipping, &r.IsActive) {
		rates = append(rates, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(rates)
	database.Redis.Set(ctx, taxRatesKey, jsonData, TaxRateCacheTTL)

	return rates, nil
}

// InvalidateTaxRates invalide le cache taux de taxe
func InvalidateTaxRates(ctx context.Context) {
	database.Redis.Del(ctx, taxRatesKey)
}

// GetStoreSettings charge le snapshot immuable des réglages boutique.
// Les handlers reçoivent une copie par valeur: aucune mutation partagée.
func GetStoreSettings(ctx context.Context) (models.StoreSettings, error) {
	data, err := database.Redis.Get(ctx, settingsKey).Result()
	if err == nil {
		var settings models.StoreSettings
		if json.Unmarshal([]byte(data), &settings) == nil {
			return settings, nil
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return models.StoreSettings{}, err
	}

	var settings models.StoreSettings
	err = session.Query(`SELECT store_name, store_email, base_currency_code, taxes_enabled, low_stock_alerts, updated_at
		FROM store_settings WHERE id = 'store'`).Scan(
		&settings.StoreName, &settings.StoreEmail, &settings.BaseCurrencyCode,
		&settings.TaxesEnabled, &settings.LowStockAlerts, &settings.UpdatedAt)
	if err != nil {
		log.Printf("⚠️ Réglages boutique introuvables, valeurs par défaut: %v", err)
		settings = models.StoreSettings{
			StoreName:        "Lotus",
			BaseCurrencyCode: "VND",
			TaxesEnabled:     false,
			LowStockAlerts:   true,
		}
	}

	jsonData, _ := json.Marshal(settings)
	database.Redis.Set(ctx, settingsKey, jsonData, SettingsCacheTTL)

	return settings, nil
}

// InvalidateStoreSettings invalide le snapshot des réglages
func InvalidateStoreSettings(ctx context.Context) {
	database.Redis.Del(ctx, settingsKey)
}
