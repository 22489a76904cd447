package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAliasRepository implements the AliasRepository interface
type GormAliasRepository struct {
	db *gorm.DB
}

// NewGormAliasRepository creates a new GORM alias repository
func NewGormAliasRepository(db *gorm.DB) repository.AliasRepository {
	return &GormAliasRepository{
		db: db,
	}
}

// HeaderAliasRow GORM model for database mapping
type HeaderAliasRow struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Alias     string         `gorm:"column:alias;unique"`
	Field     string         `gorm:"column:field"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (HeaderAliasRow) TableName() string {
	return "m_header_aliases"
}

// List returns the operator-managed alias extension rows in insertion
// order. Order matters: the resolver is first-match-wins.
func (r *GormAliasRepository) List(ctx context.Context) ([]entity.HeaderAlias, error) {
	var rows []HeaderAliasRow
	result := r.db.WithContext(ctx).Order("id").Find(&rows)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM models to domain entities
	aliases := make([]entity.HeaderAlias, 0, len(rows))
	for _, row := range rows {
		aliases = append(aliases, entity.HeaderAlias{
			Alias: row.Alias,
			Field: entity.CanonicalField(row.Field),
		})
	}
	return aliases, nil
}
