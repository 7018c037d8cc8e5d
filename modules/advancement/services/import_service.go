package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/modules/advancement/domain/advancement"
	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

type ImportOptions struct {
	// CreateUnmatched creates a member record for scouts the matcher
	// could not resolve. Off by default.
	CreateUnmatched bool
}

// ImportService applies an approved staged change-set. Each scout runs
// in its own transaction; one scout's failure never aborts the batch.
type ImportService struct {
	members member.Repository
	records advancement.Repository
}

func NewImportService(members member.Repository, records advancement.Repository) *ImportService {
	return &ImportService{members: members, records: records}
}

func (s *ImportService) Import(
	ctx context.Context,
	unitID uuid.UUID,
	staged *advancement.StagedTroopAdvancement,
	opts ImportOptions,
) (*advancement.ImportResult, error) {
	logger := composables.UseLogger(ctx)
	res := &advancement.ImportResult{Warnings: append([]advancement.Warning(nil), staged.Warnings...)}

	for _, scout := range staged.Scouts {
		res.ScoutsAttempted++

		if scout.ScoutID == nil && !opts.CreateUnmatched {
			res.Warnings = append(res.Warnings, advancement.Warning{
				Kind:     advancement.WarnScoutNotFound,
				MemberID: scout.MemberID,
				Detail:   fmt.Sprintf("scout %s %s (%s) not found and creation not requested", scout.FirstName, scout.LastName, scout.MemberID),
			})
			recordWarning(string(advancement.WarnScoutNotFound))
			continue
		}

		if err := s.importScout(ctx, unitID, scout, res); err != nil {
			recordFailure()
			res.Errors = append(res.Errors, advancement.ImportError{
				MemberID: scout.MemberID,
				Name:     fmt.Sprintf("%s %s", scout.FirstName, scout.LastName),
				Message:  err.Error(),
			})
			continue
		}
		res.ScoutsSucceeded++
	}

	logger.WithFields(map[string]any{
		"attempted": res.ScoutsAttempted,
		"succeeded": res.ScoutsSucceeded,
		"created":   res.RecordsCreated,
		"failed":    len(res.Errors),
	}).Info("advancement import finished")
	return res, nil
}

func (s *ImportService) importScout(
	ctx context.Context,
	unitID uuid.UUID,
	scout *advancement.StagedScoutAdvancement,
	res *advancement.ImportResult,
) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		scoutID, err := s.resolveScout(txCtx, unitID, scout)
		if err != nil {
			return err
		}

		for _, ch := range scout.Changes {
			switch ch.Status {
			case advancement.StatusDuplicate:
				res.DuplicatesSkipped++
			case advancement.StatusNew:
				rec := advancement.Record{
					ScoutID: scoutID,
					Kind:    ch.Kind,
					Code:    ch.Code,
					Number:  ch.Number,
					Version: ch.Version,
					Date:    ch.Date,
				}
				if err := s.records.Create(txCtx, rec); err != nil {
					return err
				}
				res.RecordsCreated++
				recordCreated(string(ch.Kind))
			case advancement.StatusUpdate:
				rec := advancement.Record{
					ID:      ch.ExistingID,
					ScoutID: scoutID,
					Kind:    ch.Kind,
					Code:    ch.Code,
					Number:  ch.Number,
					Version: ch.Version,
					Date:    ch.Date,
				}
				if err := s.records.Update(txCtx, rec); err != nil {
					return err
				}
				res.RecordsUpdated++
				recordUpdated()
			}
		}
		return nil
	})
}

// resolveScout returns the matched member id, creating a minimal scout
// record when the approver opted in to creation.
func (s *ImportService) resolveScout(
	ctx context.Context,
	unitID uuid.UUID,
	scout *advancement.StagedScoutAdvancement,
) (uuid.UUID, error) {
	if scout.ScoutID != nil {
		return *scout.ScoutID, nil
	}
	dto := member.CreateDTO{
		UnitID:    unitID,
		Kind:      member.KindScout,
		MemberID:  scout.MemberID,
		FirstName: scout.FirstName,
		LastName:  scout.LastName,
	}
	entity, err := dto.ToEntity()
	if err != nil {
		return uuid.Nil, err
	}
	created, err := s.members.Create(ctx, entity)
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID(), nil
}
