package scoutbook

import (
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"

	"github.com/scoutsync/scoutsync/modules/advancement/domain/advancement"
	"github.com/scoutsync/scoutsync/pkg/tabular"
)

// ErrNotAdvancementExport indicates the payload has no recognizable
// advancement header row and is not parseable in any form.
var ErrNotAdvancementExport = gerrors.New("input is not an advancement export")

type dedupKey struct {
	kind   advancement.Kind
	code   string
	number string
}

type scoutAccumulator struct {
	parsed *advancement.ParsedScoutAdvancement
	seen   map[dedupKey]struct{}
}

// ParseAdvancement decodes a single-section advancement export. Rows
// that classify as out-of-scope are counted and dropped; malformed
// rows are collected as per-line errors and parsing continues.
func ParseAdvancement(lines []string) (*advancement.ParseResult, error) {
	headerLine := -1
	var header tabular.HeaderIndex
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "advancement type") {
			headerLine = i
			header = tabular.NewHeaderIndex(tabular.ParseLine(line))
			break
		}
	}
	if headerLine < 0 {
		return nil, ErrNotAdvancementExport
	}

	res := &advancement.ParseResult{}
	accs := map[string]*scoutAccumulator{}

	for i := headerLine + 1; i < len(lines); i++ {
		lineNo := i + 1
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := tabular.ParseLine(line)

		memberID := strings.TrimSpace(header.Get(fields, "member id"))
		if memberID == "" {
			res.Errors = append(res.Errors, tabular.RowError{
				Line:    lineNo,
				Message: "missing member id",
			})
			continue
		}

		cls := Classify(header.Get(fields, "advancement type"))
		if !cls.InScope {
			res.OutOfScope++
			continue
		}

		value := strings.TrimSpace(header.Get(fields, "advancement"))
		if value == "" {
			res.Errors = append(res.Errors, tabular.RowError{
				Line:    lineNo,
				Message: fmt.Sprintf("missing advancement value for type %q", cls.Kind),
			})
			continue
		}

		version := strings.TrimSpace(header.Get(fields, "version"))
		date, _ := tabular.NormalizeUSDate(header.Get(fields, "date completed"))

		acc, ok := accs[memberID]
		if !ok {
			acc = &scoutAccumulator{
				parsed: &advancement.ParsedScoutAdvancement{
					MemberID:  memberID,
					FirstName: strings.TrimSpace(header.Get(fields, "first name")),
					LastName:  strings.TrimSpace(header.Get(fields, "last name")),
				},
				seen: map[dedupKey]struct{}{},
			}
			accs[memberID] = acc
			res.Scouts = append(res.Scouts, acc.parsed)
		}

		appendRecord(acc, cls, value, version, date, lineNo, res)
	}
	return res, nil
}

// appendRecord adds one classified row to its scout, suppressing
// duplicates of the same (kind, code, number). First occurrence wins.
func appendRecord(
	acc *scoutAccumulator,
	cls Classification,
	value, version, date string,
	lineNo int,
	res *advancement.ParseResult,
) {
	p := acc.parsed
	switch cls.Kind {
	case advancement.KindRank:
		code := RankCode(value)
		if code == "" {
			res.Errors = append(res.Errors, tabular.RowError{
				Line:    lineNo,
				Message: fmt.Sprintf("unknown rank %q", value),
			})
			return
		}
		if !acc.mark(dedupKey{kind: cls.Kind, code: code}) {
			return
		}
		p.Ranks = append(p.Ranks, advancement.ParsedRank{
			Code: code, Name: value, Version: version, Date: date,
		})
	case advancement.KindRankRequirement:
		if !acc.mark(dedupKey{kind: cls.Kind, code: cls.Subject, number: value}) {
			return
		}
		p.RankRequirements = append(p.RankRequirements, advancement.ParsedRankRequirement{
			RankCode: cls.Subject, Number: value, Version: version, Date: date,
		})
	case advancement.KindMeritBadge:
		code := tabular.NormalizeCode(value)
		if !acc.mark(dedupKey{kind: cls.Kind, code: code}) {
			return
		}
		p.MeritBadges = append(p.MeritBadges, advancement.ParsedMeritBadge{
			Code: code, Name: value, Version: version, Date: date,
		})
	case advancement.KindMeritBadgeRequirement:
		if !acc.mark(dedupKey{kind: cls.Kind, code: cls.Subject, number: value}) {
			return
		}
		p.MeritBadgeRequirements = append(p.MeritBadgeRequirements, advancement.ParsedMeritBadgeRequirement{
			BadgeCode: cls.Subject, Number: value, Version: version, Date: date,
		})
	}
}

func (a *scoutAccumulator) mark(key dedupKey) bool {
	if _, dup := a.seen[key]; dup {
		return false
	}
	a.seen[key] = struct{}{}
	return true
}
