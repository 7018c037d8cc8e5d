package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/scoutsync/scoutsync/modules/advancement/domain/advancement"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

const (
	listRecordsSQL = `
		SELECT id, scout_id, kind, code, number, version, completed_on
		FROM advancement_records
		WHERE scout_id = $1
		ORDER BY kind, code, number`

	insertRecordSQL = `
		INSERT INTO advancement_records (scout_id, kind, code, number, version, completed_on)
		VALUES ($1, $2, $3, $4, $5, $6)`

	updateRecordSQL = `
		UPDATE advancement_records
		SET version = $2, completed_on = $3, updated_at = now()
		WHERE id = $1`
)

type AdvancementRepository struct{}

func NewAdvancementRepository() *AdvancementRepository {
	return &AdvancementRepository{}
}

func (r *AdvancementRepository) ListByScout(ctx context.Context, scoutID uuid.UUID) ([]advancement.Record, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, listRecordsSQL, scoutID)
	if err != nil {
		return nil, gerrors.Wrap(err, "query advancement records")
	}
	defer rows.Close()

	var out []advancement.Record
	for rows.Next() {
		var (
			rec       advancement.Record
			kind      string
			version   pgtype.Text
			completed pgtype.Date
		)
		if err := rows.Scan(&rec.ID, &rec.ScoutID, &kind, &rec.Code, &rec.Number, &version, &completed); err != nil {
			return nil, gerrors.Wrap(err, "scan advancement record")
		}
		rec.Kind = advancement.Kind(kind)
		rec.Version = version.String
		if completed.Valid {
			rec.Date = completed.Time.Format(time.DateOnly)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *AdvancementRepository) Create(ctx context.Context, rec advancement.Record) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	completed, err := isoDate(rec.Date)
	if err != nil {
		return gerrors.Wrapf(err, "record %s", rec.Code)
	}
	_, err = tx.Exec(ctx, insertRecordSQL,
		rec.ScoutID,
		string(rec.Kind),
		rec.Code,
		rec.Number,
		nullString(rec.Version),
		completed,
	)
	if err != nil {
		return gerrors.Wrap(err, "insert advancement record")
	}
	return nil
}

func (r *AdvancementRepository) Update(ctx context.Context, rec advancement.Record) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	completed, err := isoDate(rec.Date)
	if err != nil {
		return gerrors.Wrapf(err, "record %s", rec.Code)
	}
	tag, err := tx.Exec(ctx, updateRecordSQL, rec.ID, nullString(rec.Version), completed)
	if err != nil {
		return gerrors.Wrap(err, "update advancement record")
	}
	if tag.RowsAffected() == 0 {
		return advancement.ErrRecordNotFound
	}
	return nil
}
