package advancement

import "github.com/scoutsync/scoutsync/pkg/tabular"

type Kind string

const (
	KindRank                  Kind = "rank"
	KindRankRequirement       Kind = "rank-requirement"
	KindMeritBadge            Kind = "merit-badge"
	KindMeritBadgeRequirement Kind = "merit-badge-requirement"
)

type ParsedRank struct {
	Code    string // normalized from the display name
	Name    string
	Version string
	Date    string // ISO completion date, may be empty
}

type ParsedRankRequirement struct {
	RankCode string
	Number   string // requirement number such as "1a"
	Version  string
	Date     string
}

type ParsedMeritBadge struct {
	Code    string
	Name    string
	Version string
	Date    string
}

type ParsedMeritBadgeRequirement struct {
	BadgeCode string
	Number    string
	Version   string
	Date      string
}

// ParsedScoutAdvancement holds one scout's rows in insertion order.
// Duplicate normalized codes (and, for requirements, numbers) are
// suppressed at parse time, first occurrence wins.
type ParsedScoutAdvancement struct {
	MemberID  string
	FirstName string
	LastName  string

	Ranks                  []ParsedRank
	RankRequirements       []ParsedRankRequirement
	MeritBadges            []ParsedMeritBadge
	MeritBadgeRequirements []ParsedMeritBadgeRequirement
}

type ParseResult struct {
	// Scouts preserves first-seen order of member ids.
	Scouts []*ParsedScoutAdvancement
	// OutOfScope counts rows whose discriminator matched no known
	// category. Counted, never retained, never an error.
	OutOfScope int
	Errors     []tabular.RowError
}
