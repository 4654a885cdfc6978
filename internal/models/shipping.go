package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Types de zones, évalués par priorité croissante.
// Une zone "global" matche toute destination (filet de sécurité, priorité la plus haute).
const (
	ZoneInnerCity   = "inner_city"
	ZoneProvincial  = "provincial"
	ZoneContinental = "continental"
	ZoneGlobal      = "global"
)

// Types de méthodes de livraison
const (
	MethodFlatRate     = "flat_rate"
	MethodFreeShipping = "free_shipping"
	MethodExpress      = "express"
	MethodLocalPickup  = "local_pickup"
)

type ShippingZone struct {
	ID        gocql.UUID         `json:"id" db:"zone_id"`
	Name      string             `json:"name" db:"name"`
	Type      string             `json:"type" db:"type"`
	Priority  int                `json:"priority" db:"priority"`
	IsActive  bool               `json:"is_active" db:"is_active"`
	Locations []ShippingLocation `json:"locations"`
	Methods   []ShippingMethod   `json:"methods"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" db:"updated_at"`
}

// ShippingLocation: code couvert par une zone.
// Kind précise ce que Code désigne: "city" (ex: HCM), "country" (ex: VN)
// ou "continent" (ex: AS).
type ShippingLocation struct {
	ID     gocql.UUID `json:"id" db:"location_id"`
	ZoneID gocql.UUID `json:"zone_id" db:"zone_id"`
	Code   string     `json:"code" db:"code"`
	Kind   string     `json:"kind" db:"kind"`
}

type ShippingMethod struct {
	ID            gocql.UUID `json:"id" db:"method_id"`
	ZoneID        gocql.UUID `json:"zone_id" db:"zone_id"`
	Name          string     `json:"name" db:"name"`
	Type          string     `json:"type" db:"type"`
	Cost          float64    `json:"cost" db:"cost"`
	MinAmount     *float64   `json:"min_amount,omitempty" db:"min_amount"`
	MaxAmount     *float64   `json:"max_amount,omitempty" db:"max_amount"`
	EstimatedDays int        `json:"estimated_days" db:"estimated_days"`
	Position      int        `json:"position" db:"position"`
	IsActive      bool       `json:"is_active" db:"is_active"`
}

// Destination d'une commande, fournie au checkout.
type Destination struct {
	Country string `json:"country" binding:"required"`
	City    string `json:"city"`
}
