package services

import (
	"context"
	"fmt"
	"slices"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/modules/advancement/domain/advancement"
	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

// StagingService diffs parsed advancement records against stored state.
// It is read-only and deterministic: staging the same parse twice
// yields identical change-sets.
type StagingService struct {
	members member.Repository
	records advancement.Repository
	catalog advancement.Catalog
}

func NewStagingService(
	members member.Repository,
	records advancement.Repository,
	catalog advancement.Catalog,
) *StagingService {
	return &StagingService{members: members, records: records, catalog: catalog}
}

type recordKey struct {
	kind   advancement.Kind
	code   string
	number string
}

// versionCache memoizes catalog version lookups within one staging
// pass. It is local to the invocation.
type versionCache struct {
	ranks        map[string][]string
	badges       map[string][]string
	requirements map[string][]string
}

func (s *StagingService) Stage(
	ctx context.Context,
	unitID uuid.UUID,
	parsed *advancement.ParseResult,
) (*advancement.StagedTroopAdvancement, error) {
	logger := composables.UseLogger(ctx)
	staged := &advancement.StagedTroopAdvancement{OutOfScope: parsed.OutOfScope}
	cache := &versionCache{
		ranks:        map[string][]string{},
		badges:       map[string][]string{},
		requirements: map[string][]string{},
	}

	for _, scout := range parsed.Scouts {
		ss := &advancement.StagedScoutAdvancement{
			MemberID:  scout.MemberID,
			FirstName: scout.FirstName,
			LastName:  scout.LastName,
		}

		existing := map[recordKey]advancement.Record{}
		matched, err := s.members.GetByMemberID(ctx, unitID, scout.MemberID)
		switch {
		case err == nil:
			id := matched.ID()
			ss.ScoutID = &id
			stored, err := s.records.ListByScout(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, rec := range stored {
				existing[recordKey{kind: rec.Kind, code: rec.Code, number: rec.Number}] = rec
			}
		case gerrors.Is(err, member.ErrNotFound):
			// unmatched; every incoming item stages as new
		default:
			return nil, err
		}

		for _, r := range scout.Ranks {
			s.checkRankVersion(ctx, cache, staged, scout.MemberID, r.Code, r.Version)
			ss.Changes = append(ss.Changes, classify(existing, advancement.KindRank, r.Code, "", r.Version, r.Date))
		}
		for _, r := range scout.RankRequirements {
			s.checkRankRequirement(ctx, cache, staged, scout.MemberID, r.RankCode, r.Version, r.Number)
			ss.Changes = append(ss.Changes, classify(existing, advancement.KindRankRequirement, r.RankCode, r.Number, r.Version, r.Date))
		}
		for _, b := range scout.MeritBadges {
			s.checkBadgeVersion(ctx, cache, staged, scout.MemberID, b.Code, b.Version)
			ss.Changes = append(ss.Changes, classify(existing, advancement.KindMeritBadge, b.Code, "", b.Version, b.Date))
		}
		for _, b := range scout.MeritBadgeRequirements {
			s.checkBadgeVersion(ctx, cache, staged, scout.MemberID, b.BadgeCode, b.Version)
			ss.Changes = append(ss.Changes, classify(existing, advancement.KindMeritBadgeRequirement, b.BadgeCode, b.Number, b.Version, b.Date))
		}

		for _, ch := range ss.Changes {
			ss.Counts.Add(ch.Status)
			staged.Counts.Add(ch.Status)
			if ch.Status == advancement.StatusUpdate {
				if prev, ok := existing[recordKey{kind: ch.Kind, code: ch.Code, number: ch.Number}]; ok &&
					prev.Version != "" && ch.Version != "" && prev.Version != ch.Version {
					staged.Warnings = append(staged.Warnings, advancement.Warning{
						Kind:     advancement.WarnVersionMismatch,
						MemberID: scout.MemberID,
						Code:     ch.Code,
						Number:   ch.Number,
						Detail:   fmt.Sprintf("stored version %q differs from incoming %q", prev.Version, ch.Version),
					})
					recordWarning(string(advancement.WarnVersionMismatch))
				}
			}
		}
		staged.Scouts = append(staged.Scouts, ss)
	}

	logger.WithFields(map[string]any{
		"scouts":   len(staged.Scouts),
		"new":      staged.Counts.New,
		"updates":  staged.Counts.Updates,
		"warnings": len(staged.Warnings),
	}).Info("staged advancement")
	return staged, nil
}

// classify decides new vs duplicate vs update for one incoming item.
// An existing record with the same key but a different date or version
// is an update; same values is a duplicate.
func classify(
	existing map[recordKey]advancement.Record,
	kind advancement.Kind,
	code, number, version, date string,
) advancement.StagedChange {
	ch := advancement.StagedChange{
		Kind:    kind,
		Code:    code,
		Number:  number,
		Version: version,
		Date:    date,
		Status:  advancement.StatusNew,
	}
	prev, ok := existing[recordKey{kind: kind, code: code, number: number}]
	if !ok {
		return ch
	}
	ch.ExistingID = prev.ID
	// A blank incoming date carries no information; keep the stored one
	// so an update never erases a known completion date.
	if ch.Date == "" {
		ch.Date = prev.Date
	}
	if prev.Date != ch.Date || (version != "" && prev.Version != version) {
		ch.Status = advancement.StatusUpdate
	} else {
		ch.Status = advancement.StatusDuplicate
	}
	return ch
}

func (s *StagingService) checkRankVersion(
	ctx context.Context,
	cache *versionCache,
	staged *advancement.StagedTroopAdvancement,
	memberID, rankCode, version string,
) {
	if version == "" {
		return
	}
	versions, ok := cache.ranks[rankCode]
	if !ok {
		var err error
		versions, err = s.catalog.RankVersions(ctx, rankCode)
		if err != nil {
			return
		}
		cache.ranks[rankCode] = versions
	}
	if len(versions) == 0 || slices.Contains(versions, version) {
		return
	}
	staged.Warnings = append(staged.Warnings, advancement.Warning{
		Kind:     advancement.WarnVersionFallback,
		MemberID: memberID,
		Code:     rankCode,
		Detail:   fmt.Sprintf("rank version %q not in catalog, falling back to %q", version, versions[len(versions)-1]),
	})
	recordWarning(string(advancement.WarnVersionFallback))
}

func (s *StagingService) checkRankRequirement(
	ctx context.Context,
	cache *versionCache,
	staged *advancement.StagedTroopAdvancement,
	memberID, rankCode, version, number string,
) {
	s.checkRankVersion(ctx, cache, staged, memberID, rankCode, version)
	key := rankCode + "|" + version
	numbers, ok := cache.requirements[key]
	if !ok {
		var err error
		numbers, err = s.catalog.RankRequirementNumbers(ctx, rankCode, version)
		if err != nil {
			return
		}
		cache.requirements[key] = numbers
	}
	// An unseeded requirement catalog for this rank version is silence,
	// not a warning per row.
	if len(numbers) == 0 || slices.Contains(numbers, number) {
		return
	}
	staged.Warnings = append(staged.Warnings, advancement.Warning{
		Kind:     advancement.WarnRequirementNotFound,
		MemberID: memberID,
		Code:     rankCode,
		Number:   number,
		Detail:   fmt.Sprintf("requirement %s not in the %s catalog", number, rankCode),
	})
	recordWarning(string(advancement.WarnRequirementNotFound))
}

func (s *StagingService) checkBadgeVersion(
	ctx context.Context,
	cache *versionCache,
	staged *advancement.StagedTroopAdvancement,
	memberID, badgeCode, version string,
) {
	if version == "" {
		return
	}
	versions, ok := cache.badges[badgeCode]
	if !ok {
		var err error
		versions, err = s.catalog.BadgeVersions(ctx, badgeCode)
		if err != nil {
			return
		}
		cache.badges[badgeCode] = versions
	}
	if len(versions) == 0 || slices.Contains(versions, version) {
		return
	}
	staged.Warnings = append(staged.Warnings, advancement.Warning{
		Kind:     advancement.WarnVersionFallback,
		MemberID: memberID,
		Code:     badgeCode,
		Detail:   fmt.Sprintf("badge version %q not in catalog, falling back to %q", version, versions[len(versions)-1]),
	})
	recordWarning(string(advancement.WarnVersionFallback))
}
