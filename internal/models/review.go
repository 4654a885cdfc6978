package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Review struct {
	ID         gocql.UUID `json:"id" db:"review_id"`
	ProductID  gocql.UUID `json:"product_id" db:"product_id"`
	UserID     string     `json:"user_id" db:"user_id"`
	UserName   string     `json:"user_name" db:"user_name"`
	Rating     int        `json:"rating" db:"rating"` // 1 à 5
	Comment    string     `json:"comment" db:"comment"`
	IsApproved bool       `json:"is_approved" db:"is_approved"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
