package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classpad-app/classpad-backend/internal/model"
)

const classTemplateCollection = "classTemplates"

// ClassTemplateRepository handles class template document access.
type ClassTemplateRepository struct {
	coll *mongo.Collection
}

// NewClassTemplateRepository creates a new ClassTemplateRepository.
func NewClassTemplateRepository(db *mongo.Database) *ClassTemplateRepository {
	return &ClassTemplateRepository{coll: db.Collection(classTemplateCollection)}
}

// Insert creates a new class template.
func (r *ClassTemplateRepository) Insert(ctx context.Context, t *model.ClassTemplate) error {
	_, err := r.coll.InsertOne(ctx, t)
	return translate(err)
}
