// internal/generation/repository.go
package generation

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"docquiz/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateDocument(ctx context.Context, doc *models.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		log.Printf("Error creating document: %v", err)
		return err
	}
	log.Printf("Created document %s (%s)", doc.ID, doc.Filename)
	return nil
}

func (r *Repository) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDocument
	}
	if err != nil {
		log.Printf("Error getting document %s: %v", id, err)
		return nil, err
	}
	return &doc, nil
}

func (r *Repository) LatestDocument(ctx context.Context) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).Order("created_at desc").First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDocument
	}
	if err != nil {
		log.Printf("Error getting latest document: %v", err)
		return nil, err
	}
	return &doc, nil
}
