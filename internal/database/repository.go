package database

import (
	"github.com/robalyx/casebot/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	cases *models.CaseModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		cases: models.NewCase(db, logger),
	}
}

// Case returns the case model repository.
func (r *Repository) Case() *models.CaseModel {
	return r.cases
}
