// internal/models/document.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is an uploaded file the generation server summarized.
type Document struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Filename  string         `json:"filename" gorm:"not null"`
	Slug      string         `json:"slug"`
	SizeBytes int64          `json:"size_bytes"`
	Summary   string         `json:"summary" gorm:"type:text"`
}
