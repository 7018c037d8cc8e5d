package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/scoutsync/scoutsync/pkg/composables"
)

const (
	rankVersionsSQL = `
		SELECT version FROM ranks WHERE code = $1 ORDER BY version`

	rankRequirementNumbersSQL = `
		SELECT number FROM rank_requirements
		WHERE rank_code = $1 AND version = $2
		ORDER BY number`

	badgeVersionsSQL = `
		SELECT version FROM merit_badges WHERE code = $1 ORDER BY version`
)

// CatalogRepository reads the reference tables that describe which
// rank and badge versions the program publishes. Staging consults it
// for warnings only.
type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) RankVersions(ctx context.Context, rankCode string) ([]string, error) {
	return r.versions(ctx, rankVersionsSQL, rankCode)
}

func (r *CatalogRepository) BadgeVersions(ctx context.Context, badgeCode string) ([]string, error) {
	return r.versions(ctx, badgeVersionsSQL, badgeCode)
}

func (r *CatalogRepository) versions(ctx context.Context, query, code string) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, code)
	if err != nil {
		return nil, gerrors.Wrap(err, "query catalog versions")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, gerrors.Wrap(err, "scan catalog version")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) RankRequirementNumbers(ctx context.Context, rankCode, version string) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, rankRequirementNumbersSQL, rankCode, version)
	if err != nil {
		return nil, gerrors.Wrap(err, "query rank requirements")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, gerrors.Wrap(err, "scan rank requirement")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
