package advancement

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrRecordNotFound = gerrors.New("advancement record not found")

// Record is a stored advancement fact for one scout. Number is empty
// for rank and merit badge rows.
type Record struct {
	ID      uuid.UUID
	ScoutID uuid.UUID
	Kind    Kind
	Code    string
	Number  string
	Version string
	Date    string
}

type Repository interface {
	ListByScout(ctx context.Context, scoutID uuid.UUID) ([]Record, error)
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
}

// Catalog answers which versions and requirement numbers the program
// recognizes. Staging uses it to emit warnings, never to reject rows.
type Catalog interface {
	RankVersions(ctx context.Context, rankCode string) ([]string, error)
	// RankRequirementNumbers lists the known requirement numbers for one
	// rank version. An empty list means the catalog has nothing for that
	// version and staging stays silent about its requirements.
	RankRequirementNumbers(ctx context.Context, rankCode, version string) ([]string, error)
	BadgeVersions(ctx context.Context, badgeCode string) ([]string, error)
}
