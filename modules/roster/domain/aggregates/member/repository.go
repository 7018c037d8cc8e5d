package member

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
)

var ErrNotFound = gerrors.New("member not found")

// Repository is the persisted-store capability the pipeline consumes.
// Uniqueness and foreign-key constraints are enforced by the store; a
// violation surfaces as a per-record error, never as something the
// pipeline prevents itself.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Member, error)
	GetByMemberID(ctx context.Context, unitID uuid.UUID, memberID string) (Member, error)
	GetByEmail(ctx context.Context, unitID uuid.UUID, email string) (Member, error)
	GetByName(ctx context.Context, unitID uuid.UUID, firstName, lastName string) (Member, error)
	Create(ctx context.Context, m Member) (Member, error)
	Update(ctx context.Context, m Member) error

	ListCertifications(ctx context.Context, memberID uuid.UUID) ([]ParsedCertification, error)
	ReplaceCertifications(ctx context.Context, memberID uuid.UUID, certs []ParsedCertification) error

	GuardianLinkExists(ctx context.Context, scoutID, guardianID uuid.UUID) (bool, error)
	LinkGuardian(ctx context.Context, scoutID, guardianID uuid.UUID, relationship string) error
}

type PatrolRepository interface {
	GetByName(ctx context.Context, unitID uuid.UUID, name string) (unit.Patrol, error)
	Create(ctx context.Context, p unit.Patrol) (unit.Patrol, error)
}

var ErrPatrolNotFound = gerrors.New("patrol not found")
