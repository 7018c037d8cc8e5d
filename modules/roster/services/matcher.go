package services

import (
	"context"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
)

// Matcher resolves a parsed row to a persisted member. The external
// member id is authoritative: when it is present only the id lookup
// runs, with no fallback, so an id miss can never be papered over by a
// name or email coincidence. Id-absent rows fall back to email, then
// to an exact first/last name match, then to unmatched.
type Matcher struct {
	members member.Repository
}

func NewMatcher(members member.Repository) *Matcher {
	return &Matcher{members: members}
}

func (m *Matcher) Match(
	ctx context.Context,
	unitID uuid.UUID,
	memberID, email, firstName, lastName string,
) (member.Member, member.MatchStatus, error) {
	if id := strings.TrimSpace(memberID); id != "" {
		found, err := m.members.GetByMemberID(ctx, unitID, id)
		if gerrors.Is(err, member.ErrNotFound) {
			return member.Member{}, member.MatchUnmatched, nil
		}
		if err != nil {
			return member.Member{}, member.MatchUnmatched, err
		}
		return found, member.MatchMatched, nil
	}

	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		found, err := m.members.GetByEmail(ctx, unitID, email)
		if err == nil {
			return found, member.MatchMatched, nil
		}
		if !gerrors.Is(err, member.ErrNotFound) {
			return member.Member{}, member.MatchUnmatched, err
		}
	}

	found, err := m.members.GetByName(ctx, unitID, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if gerrors.Is(err, member.ErrNotFound) {
		return member.Member{}, member.MatchUnmatched, nil
	}
	if err != nil {
		return member.Member{}, member.MatchUnmatched, err
	}
	return found, member.MatchMatched, nil
}
