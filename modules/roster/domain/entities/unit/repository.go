package unit

import (
	"context"

	"github.com/google/uuid"
)

type Unit struct {
	ID       uuid.UUID
	Metadata Metadata
}

// Repository resolves a unit designation to a persisted unit. Imports
// are always scoped to exactly one unit.
type Repository interface {
	GetOrCreate(ctx context.Context, meta Metadata) (Unit, error)
}
