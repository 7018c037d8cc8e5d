package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

const (
	selectPatrolSQL = `
		SELECT id, unit_id, name FROM patrols
		WHERE unit_id = $1 AND lower(name) = lower($2)`

	insertPatrolSQL = `
		INSERT INTO patrols (unit_id, name) VALUES ($1, $2)
		RETURNING id`
)

type PatrolRepository struct{}

func NewPatrolRepository() *PatrolRepository {
	return &PatrolRepository{}
}

func (r *PatrolRepository) GetByName(ctx context.Context, unitID uuid.UUID, name string) (unit.Patrol, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return unit.Patrol{}, err
	}
	var p unit.Patrol
	err = tx.QueryRow(ctx, selectPatrolSQL, unitID, name).Scan(&p.ID, &p.UnitID, &p.Name)
	if gerrors.Is(err, pgx.ErrNoRows) {
		return unit.Patrol{}, member.ErrPatrolNotFound
	}
	if err != nil {
		return unit.Patrol{}, gerrors.Wrap(err, "query patrol")
	}
	return p, nil
}

func (r *PatrolRepository) Create(ctx context.Context, p unit.Patrol) (unit.Patrol, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return unit.Patrol{}, err
	}
	if err := tx.QueryRow(ctx, insertPatrolSQL, p.UnitID, p.Name).Scan(&p.ID); err != nil {
		return unit.Patrol{}, gerrors.Wrap(err, "insert patrol")
	}
	return p, nil
}
