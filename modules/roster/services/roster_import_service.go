package services

import (
	"context"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

type RosterImportOptions struct {
	// CreateUnmatched controls whether people with no persisted match
	// are created. Off by default: the approver must opt in.
	CreateUnmatched bool
}

// RosterImportService applies an approved staged roster. Each person is
// processed in its own transaction: one failure is recorded and the
// batch moves on. Patrols are ensured before the scouts that reference
// them, and guardian links go in last, once both endpoints exist.
type RosterImportService struct {
	members member.Repository
	patrols member.PatrolRepository
}

func NewRosterImportService(members member.Repository, patrols member.PatrolRepository) *RosterImportService {
	return &RosterImportService{members: members, patrols: patrols}
}

func (s *RosterImportService) Import(
	ctx context.Context,
	unitID uuid.UUID,
	staged *member.StagedRoster,
	opts RosterImportOptions,
) (*member.RosterImportResult, error) {
	logger := composables.UseLogger(ctx)
	res := &member.RosterImportResult{}

	// Accumulators are local to this invocation. Concurrent batches for
	// the same unit are the caller's problem to serialize.
	patrolIDs := map[string]uuid.UUID{}
	adultIDs := map[string]uuid.UUID{} // external member id -> persisted id

	s.ensurePatrols(ctx, unitID, staged.Scouts, patrolIDs, res)

	for i := range staged.Adults {
		sa := &staged.Adults[i]
		res.Attempted++
		if sa.Status == member.ChangeDuplicate {
			res.DuplicatesSkipped++
			res.Succeeded++
			if sa.ExistingID != uuid.Nil && sa.Adult.MemberID != "" {
				adultIDs[sa.Adult.MemberID] = sa.ExistingID
			}
			continue
		}
		if sa.Match == member.MatchUnmatched && !opts.CreateUnmatched {
			res.Warnings = append(res.Warnings, member.Warning{
				Kind:   member.WarningMemberNotFound,
				Name:   fmt.Sprintf("%s %s", sa.Adult.FirstName, sa.Adult.LastName),
				Detail: fmt.Sprintf("adult %s not found and creation not requested", sa.Adult.MemberID),
			})
			continue
		}
		if err := s.importAdult(ctx, unitID, sa, adultIDs, res); err != nil {
			recordImportFailure()
			res.Errors = append(res.Errors, member.ImportError{
				MemberID: sa.Adult.MemberID,
				Name:     fmt.Sprintf("%s %s", sa.Adult.FirstName, sa.Adult.LastName),
				Message:  err.Error(),
			})
			continue
		}
		res.Succeeded++
	}

	for i := range staged.Scouts {
		sc := &staged.Scouts[i]
		res.Attempted++
		if sc.Status == member.ChangeDuplicate {
			res.DuplicatesSkipped++
			res.Succeeded++
			continue
		}
		if sc.Match == member.MatchUnmatched && !opts.CreateUnmatched {
			res.Warnings = append(res.Warnings, member.Warning{
				Kind:   member.WarningMemberNotFound,
				Name:   fmt.Sprintf("%s %s", sc.Scout.FirstName, sc.Scout.LastName),
				Detail: fmt.Sprintf("scout %s not found and creation not requested", sc.Scout.MemberID),
			})
			continue
		}
		if err := s.importScout(ctx, unitID, sc, patrolIDs, adultIDs, res); err != nil {
			recordImportFailure()
			res.Errors = append(res.Errors, member.ImportError{
				MemberID: sc.Scout.MemberID,
				Name:     fmt.Sprintf("%s %s", sc.Scout.FirstName, sc.Scout.LastName),
				Message:  err.Error(),
			})
			continue
		}
		res.Succeeded++
	}

	logger.WithFields(map[string]any{
		"attempted": res.Attempted,
		"succeeded": res.Succeeded,
		"failed":    len(res.Errors),
	}).Info("roster import finished")
	return res, nil
}

// ensurePatrols creates any patrol named by a to-be-imported scout that
// does not exist yet. A patrol failure is reported once and the scouts
// referencing it import without a patrol assignment.
func (s *RosterImportService) ensurePatrols(
	ctx context.Context,
	unitID uuid.UUID,
	scouts []member.StagedScout,
	patrolIDs map[string]uuid.UUID,
	res *member.RosterImportResult,
) {
	for _, sc := range scouts {
		name := strings.TrimSpace(sc.Scout.Patrol)
		if name == "" || sc.Status == member.ChangeDuplicate {
			continue
		}
		if _, ok := patrolIDs[name]; ok {
			continue
		}
		err := composables.InTx(ctx, func(txCtx context.Context) error {
			existing, err := s.patrols.GetByName(txCtx, unitID, name)
			if err == nil {
				patrolIDs[name] = existing.ID
				return nil
			}
			if !gerrors.Is(err, member.ErrPatrolNotFound) {
				return err
			}
			created, err := s.patrols.Create(txCtx, unit.Patrol{UnitID: unitID, Name: name})
			if err != nil {
				return err
			}
			patrolIDs[name] = created.ID
			res.PatrolsCreated++
			return nil
		})
		if err != nil {
			res.Errors = append(res.Errors, member.ImportError{
				Name:    name,
				Message: gerrors.Wrap(err, "create patrol").Error(),
			})
		}
	}
}

// fallback keeps the stored value when the export left the field blank.
// A blank cell means "no data", not "clear this".
func fallback(incoming, stored string) string {
	if strings.TrimSpace(incoming) == "" {
		return stored
	}
	return incoming
}

func (s *RosterImportService) importAdult(
	ctx context.Context,
	unitID uuid.UUID,
	sa *member.StagedAdult,
	adultIDs map[string]uuid.UUID,
	res *member.RosterImportResult,
) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		var persisted member.Member
		switch sa.Status {
		case member.ChangeNew:
			dto := member.CreateDTO{
				UnitID:     unitID,
				Kind:       member.KindAdult,
				MemberID:   sa.Adult.MemberID,
				FirstName:  sa.Adult.FirstName,
				MiddleName: sa.Adult.MiddleName,
				LastName:   sa.Adult.LastName,
				Email:      sa.Adult.Email,
				Phone:      sa.Adult.Phone,
				Gender:     sa.Adult.Gender,
				Positions:  sa.Adult.Positions,
			}
			entity, err := dto.ToEntity()
			if err != nil {
				return err
			}
			persisted, err = s.members.Create(txCtx, entity)
			if err != nil {
				return err
			}
			res.AdultsCreated++
			recordMemberCreated(string(member.KindAdult))
		case member.ChangeUpdate:
			existing, err := s.members.GetByID(txCtx, sa.ExistingID)
			if err != nil {
				return err
			}
			updated := existing.
				WithContact(
					fallback(sa.Adult.Email, existing.Email()),
					fallback(sa.Adult.Phone, existing.Phone()),
				).
				WithPositions(sa.Adult.Positions)
			if sa.Adult.Gender != member.GenderUnspecified {
				updated = updated.WithGender(sa.Adult.Gender)
			}
			if err := s.members.Update(txCtx, updated); err != nil {
				return err
			}
			persisted = updated
			res.Updated++
			recordMemberUpdated()
		}

		if len(sa.Adult.Certifications) > 0 {
			if err := s.members.ReplaceCertifications(txCtx, persisted.ID(), sa.Adult.Certifications); err != nil {
				return err
			}
		}
		if sa.Adult.MemberID != "" {
			adultIDs[sa.Adult.MemberID] = persisted.ID()
		}
		return nil
	})
}

func (s *RosterImportService) importScout(
	ctx context.Context,
	unitID uuid.UUID,
	sc *member.StagedScout,
	patrolIDs map[string]uuid.UUID,
	adultIDs map[string]uuid.UUID,
	res *member.RosterImportResult,
) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		var persisted member.Member
		switch sc.Status {
		case member.ChangeNew:
			dto := member.CreateDTO{
				UnitID:      unitID,
				Kind:        member.KindScout,
				MemberID:    sc.Scout.MemberID,
				FirstName:   sc.Scout.FirstName,
				MiddleName:  sc.Scout.MiddleName,
				LastName:    sc.Scout.LastName,
				Email:       sc.Scout.Email,
				Phone:       sc.Scout.Phone,
				Gender:      sc.Scout.Gender,
				DateOfBirth: sc.Scout.DateOfBirth,
				PatrolID:    patrolIDs[strings.TrimSpace(sc.Scout.Patrol)],
				Positions:   sc.Scout.Positions,
			}
			entity, err := dto.ToEntity()
			if err != nil {
				return err
			}
			persisted, err = s.members.Create(txCtx, entity)
			if err != nil {
				return err
			}
			res.ScoutsCreated++
			recordMemberCreated(string(member.KindScout))
		case member.ChangeUpdate:
			existing, err := s.members.GetByID(txCtx, sc.ExistingID)
			if err != nil {
				return err
			}
			updated := existing.
				WithContact(
					fallback(sc.Scout.Email, existing.Email()),
					fallback(sc.Scout.Phone, existing.Phone()),
				).
				WithPositions(sc.Scout.Positions)
			if sc.Scout.Gender != member.GenderUnspecified {
				updated = updated.WithGender(sc.Scout.Gender)
			}
			if id, ok := patrolIDs[strings.TrimSpace(sc.Scout.Patrol)]; ok {
				updated = updated.WithPatrolID(id)
			}
			if err := s.members.Update(txCtx, updated); err != nil {
				return err
			}
			persisted = updated
			res.Updated++
			recordMemberUpdated()
		}

		s.linkGuardians(txCtx, unitID, persisted.ID(), sc.Scout, adultIDs, res)
		return nil
	})
}

// linkGuardians resolves each embedded guardian reference against the
// adults seen this batch, then against the store. A miss is a warning,
// not an error: the scout still imports.
func (s *RosterImportService) linkGuardians(
	ctx context.Context,
	unitID uuid.UUID,
	scoutID uuid.UUID,
	scout member.ParsedScout,
	adultIDs map[string]uuid.UUID,
	res *member.RosterImportResult,
) {
	for _, g := range scout.Guardians {
		guardianID, ok := adultIDs[g.MemberID]
		if !ok && g.MemberID != "" {
			found, err := s.members.GetByMemberID(ctx, unitID, g.MemberID)
			if err == nil {
				guardianID = found.ID()
				adultIDs[g.MemberID] = guardianID
				ok = true
			}
		}
		if !ok {
			res.Warnings = append(res.Warnings, member.Warning{
				Kind:   member.WarningGuardianNotFound,
				Name:   g.Name,
				Detail: fmt.Sprintf("guardian %s (%s) not found for scout %s %s", g.Name, g.MemberID, scout.FirstName, scout.LastName),
			})
			continue
		}

		exists, err := s.members.GuardianLinkExists(ctx, scoutID, guardianID)
		if err != nil {
			res.Warnings = append(res.Warnings, member.Warning{
				Kind:   member.WarningGuardianNotFound,
				Name:   g.Name,
				Detail: gerrors.Wrap(err, "check guardian link").Error(),
			})
			continue
		}
		if exists {
			continue
		}
		if err := s.members.LinkGuardian(ctx, scoutID, guardianID, g.Relationship); err != nil {
			res.Warnings = append(res.Warnings, member.Warning{
				Kind:   member.WarningGuardianNotFound,
				Name:   g.Name,
				Detail: gerrors.Wrap(err, "link guardian").Error(),
			})
			continue
		}
		res.GuardianLinksCreated++
		recordGuardianLink()
	}
}
