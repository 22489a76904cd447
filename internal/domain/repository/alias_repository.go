package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// AliasRepository defines the interface for header alias lookups
type AliasRepository interface {
	List(ctx context.Context) ([]entity.HeaderAlias, error)
}
