package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Media: fichier de la médiathèque, stocké dans MinIO.
type Media struct {
	ID          gocql.UUID `json:"id" db:"media_id"`
	FileName    string     `json:"file_name" db:"file_name"`
	ObjectKey   string     `json:"object_key" db:"object_key"`
	URL         string     `json:"url" db:"url"`
	ContentType string     `json:"content_type" db:"content_type"`
	Size        int64      `json:"size" db:"size"`
	UploadedBy  string     `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
