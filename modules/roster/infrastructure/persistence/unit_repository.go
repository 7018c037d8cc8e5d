package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

const (
	selectUnitSQL = `
		SELECT id, type, number, suffix, council, district FROM units
		WHERE type = $1 AND number = $2 AND coalesce(suffix, '') = $3`

	insertUnitSQL = `
		INSERT INTO units (type, number, suffix, council, district)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
)

type UnitRepository struct{}

func NewUnitRepository() *UnitRepository {
	return &UnitRepository{}
}

func (r *UnitRepository) GetOrCreate(ctx context.Context, meta unit.Metadata) (unit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return unit.Unit{}, err
	}

	u := unit.Unit{Metadata: meta}
	var suffix, council, district pgtype.Text
	err = tx.QueryRow(ctx, selectUnitSQL, string(meta.Type), meta.Number, meta.Suffix).
		Scan(&u.ID, (*string)(&u.Metadata.Type), &u.Metadata.Number, &suffix, &council, &district)
	if err == nil {
		u.Metadata.Suffix = suffix.String
		u.Metadata.Council = council.String
		u.Metadata.District = district.String
		return u, nil
	}
	if !gerrors.Is(err, pgx.ErrNoRows) {
		return unit.Unit{}, gerrors.Wrap(err, "query unit")
	}

	err = tx.QueryRow(ctx, insertUnitSQL,
		string(meta.Type),
		meta.Number,
		nullString(meta.Suffix),
		nullString(meta.Council),
		nullString(meta.District),
	).Scan(&u.ID)
	if err != nil {
		return unit.Unit{}, gerrors.Wrap(err, "insert unit")
	}
	return u, nil
}
