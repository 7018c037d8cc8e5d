package services

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

// RosterStagingService classifies parsed roster rows against persisted
// state. It never writes: the output is a proposal for a human to
// approve, and staging the same parse twice yields identical output.
type RosterStagingService struct {
	members member.Repository
	matcher *Matcher
}

func NewRosterStagingService(members member.Repository) *RosterStagingService {
	return &RosterStagingService{members: members, matcher: NewMatcher(members)}
}

func (s *RosterStagingService) Stage(
	ctx context.Context,
	unitID uuid.UUID,
	parsed *member.RosterParseResult,
) (*member.StagedRoster, error) {
	logger := composables.UseLogger(ctx)
	staged := &member.StagedRoster{Unit: parsed.Unit}

	for _, adult := range parsed.Adults {
		existing, match, err := s.matcher.Match(ctx, unitID, adult.MemberID, adult.Email, adult.FirstName, adult.LastName)
		if err != nil {
			return nil, err
		}
		sa := member.StagedAdult{Adult: adult, Match: match, Status: member.ChangeNew}
		if match == member.MatchMatched {
			sa.ExistingID = existing.ID()
			storedCerts, err := s.members.ListCertifications(ctx, existing.ID())
			if err != nil {
				return nil, err
			}
			sa.Changed = diffAdult(existing, storedCerts, adult)
			if len(sa.Changed) > 0 {
				sa.Status = member.ChangeUpdate
			} else {
				sa.Status = member.ChangeDuplicate
			}
		}
		staged.Adults = append(staged.Adults, sa)
		switch sa.Status {
		case member.ChangeNew:
			staged.Summary.AdultsNew++
		case member.ChangeDuplicate:
			staged.Summary.AdultsDuplicate++
		case member.ChangeUpdate:
			staged.Summary.AdultsUpdate++
		}
	}

	for _, scout := range parsed.Scouts {
		existing, match, err := s.matcher.Match(ctx, unitID, scout.MemberID, scout.Email, scout.FirstName, scout.LastName)
		if err != nil {
			return nil, err
		}
		sc := member.StagedScout{Scout: scout, Match: match, Status: member.ChangeNew}
		if match == member.MatchMatched {
			sc.ExistingID = existing.ID()
			sc.Changed = diffScout(existing, scout)
			if len(sc.Changed) > 0 {
				sc.Status = member.ChangeUpdate
			} else {
				sc.Status = member.ChangeDuplicate
			}
		}
		staged.Scouts = append(staged.Scouts, sc)
		switch sc.Status {
		case member.ChangeNew:
			staged.Summary.ScoutsNew++
		case member.ChangeDuplicate:
			staged.Summary.ScoutsDuplicate++
		case member.ChangeUpdate:
			staged.Summary.ScoutsUpdate++
		}
	}

	logger.WithFields(map[string]any{
		"adults": len(staged.Adults),
		"scouts": len(staged.Scouts),
	}).Info("staged roster")
	return staged, nil
}

func diffAdult(existing member.Member, storedCerts []member.ParsedCertification, parsed member.ParsedAdult) []string {
	var changed []string
	if e := strings.TrimSpace(parsed.Email); e != "" && !strings.EqualFold(existing.Email(), e) {
		changed = append(changed, "email")
	}
	if p := strings.TrimSpace(parsed.Phone); p != "" && existing.Phone() != p {
		changed = append(changed, "phone")
	}
	if parsed.Gender != member.GenderUnspecified && existing.Gender() != parsed.Gender {
		changed = append(changed, "gender")
	}
	if !samePositions(existing.Positions(), parsed.Positions) {
		changed = append(changed, "positions")
	}
	if len(parsed.Certifications) > 0 && !sameCertifications(storedCerts, parsed.Certifications) {
		changed = append(changed, "certifications")
	}
	return changed
}

func diffScout(existing member.Member, parsed member.ParsedScout) []string {
	var changed []string
	// Blank export cells carry no information and never count as a change.
	if e := strings.TrimSpace(parsed.Email); e != "" && !strings.EqualFold(existing.Email(), e) {
		changed = append(changed, "email")
	}
	if p := strings.TrimSpace(parsed.Phone); p != "" && existing.Phone() != p {
		changed = append(changed, "phone")
	}
	if parsed.Gender != member.GenderUnspecified && existing.Gender() != parsed.Gender {
		changed = append(changed, "gender")
	}
	if parsed.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, parsed.DateOfBirth)
		if err == nil && !existing.DateOfBirth().Equal(dob) {
			changed = append(changed, "date_of_birth")
		}
	}
	if !samePositions(existing.Positions(), parsed.Positions) {
		changed = append(changed, "positions")
	}
	return changed
}

// sameCertifications compares certification sets on code, expiry and
// expired flag, order insensitive. A renewed card shows up as a change.
func sameCertifications(a, b []member.ParsedCertification) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(c member.ParsedCertification) string {
		return c.Code + "|" + c.Expires + "|" + strconv.FormatBool(c.Expired)
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	for i := range a {
		as[i] = key(a[i])
		bs[i] = key(b[i])
	}
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

// samePositions compares position sets, order insensitive.
func samePositions(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
