package scoutbook

import (
	"fmt"

	gerrors "github.com/go-faster/errors"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/pkg/tabular"
)

const (
	adultMarker = "ADULT MEMBERS"
	youthMarker = "YOUTH MEMBERS"

	adultBlankSentinel = "No Adult Members"
	youthBlankSentinel = "No Youth Members"
)

// ErrNotRosterExport means neither section marker was found: the payload
// is not a supported roster export in any parseable form.
var ErrNotRosterExport = gerrors.New("no roster section markers found")

var rosterSections = []tabular.SectionSpec{
	{Marker: adultMarker, BlankSentinel: adultBlankSentinel},
	{Marker: youthMarker, BlankSentinel: youthBlankSentinel},
}

// ParseRoster decodes a dual-section roster export into typed adult and
// scout records. Malformed rows collect into the result's error list and
// never abort the parse; only a payload with no recognizable section
// markers at all fails outright.
func ParseRoster(lines []string) (*member.RosterParseResult, error) {
	sections, sectionErrs := tabular.Extract(lines, rosterSections)
	if sections[adultMarker] == nil && sections[youthMarker] == nil {
		return nil, ErrNotRosterExport
	}

	res := &member.RosterParseResult{}
	for _, err := range sectionErrs {
		res.Errors = append(res.Errors, tabular.RowError{Line: 0, Message: err.Error()})
	}

	// Identifier uniqueness spans both sections: a later row repeating a
	// member id is rejected, not merged.
	seenIDs := make(map[string]int)

	if sec := sections[adultMarker]; sec != nil {
		for _, row := range sec.Rows {
			adult, err := parseAdultRow(sec.Header, row)
			if err != nil {
				res.Errors = append(res.Errors, tabular.RowError{Line: row.Line, Message: err.Error()})
				continue
			}
			if adult.MemberID != "" {
				if first, ok := seenIDs[adult.MemberID]; ok {
					res.Errors = append(res.Errors, tabular.RowError{
						Line:    row.Line,
						Message: fmt.Sprintf("duplicate member id %s (first seen on line %d)", adult.MemberID, first),
					})
					continue
				}
				seenIDs[adult.MemberID] = row.Line
			}
			if res.Unit == (unit.Metadata{}) {
				res.Unit = unitMetadataFromRow(sec.Header, row)
			}
			res.Adults = append(res.Adults, adult)
		}
	}

	if sec := sections[youthMarker]; sec != nil {
		for _, row := range sec.Rows {
			scout, err := parseScoutRow(sec.Header, row)
			if err != nil {
				res.Errors = append(res.Errors, tabular.RowError{Line: row.Line, Message: err.Error()})
				continue
			}
			if scout.MemberID != "" {
				if first, ok := seenIDs[scout.MemberID]; ok {
					res.Errors = append(res.Errors, tabular.RowError{
						Line:    row.Line,
						Message: fmt.Sprintf("duplicate member id %s (first seen on line %d)", scout.MemberID, first),
					})
					continue
				}
				seenIDs[scout.MemberID] = row.Line
			}
			if res.Unit == (unit.Metadata{}) {
				res.Unit = unitMetadataFromRow(sec.Header, row)
			}
			res.Scouts = append(res.Scouts, scout)
		}
	}

	return res, nil
}

func unitMetadataFromRow(h tabular.HeaderIndex, row tabular.Row) unit.Metadata {
	t, number, suffix := unit.ParseDesignation(h.Get(row.Fields, "unit number"))
	return unit.Metadata{
		Type:     t,
		Number:   number,
		Suffix:   suffix,
		Council:  h.Get(row.Fields, "council"),
		District: h.Get(row.Fields, "district"),
	}
}

func parseAdultRow(h tabular.HeaderIndex, row tabular.Row) (member.ParsedAdult, error) {
	first := h.Get(row.Fields, "first name")
	last := h.Get(row.Fields, "last name")
	if first == "" || last == "" {
		return member.ParsedAdult{}, fmt.Errorf("missing first or last name")
	}

	status, statusDate := normalizeHealthForm(h.Get(row.Fields, "health form"))
	return member.ParsedAdult{
		Line:           row.Line,
		MemberID:       h.Get(row.Fields, "member id"),
		FirstName:      first,
		MiddleName:     h.Get(row.Fields, "middle name"),
		LastName:       last,
		Email:          h.Get(row.Fields, "email"),
		Phone:          h.Get(row.Fields, "phone"),
		Gender:         normalizeGender(h.Get(row.Fields, "gender")),
		Positions:      normalizePositions(h.Get(row.Fields, "position")),
		Certifications: parseCertifications(h.Get(row.Fields, "certification")),
		HealthForm:     status,
		HealthFormDate: statusDate,
	}, nil
}

func parseScoutRow(h tabular.HeaderIndex, row tabular.Row) (member.ParsedScout, error) {
	first := h.Get(row.Fields, "first name")
	last := h.Get(row.Fields, "last name")
	if first == "" || last == "" {
		return member.ParsedScout{}, fmt.Errorf("missing first or last name")
	}

	dob := ""
	if raw := h.Get(row.Fields, "date of birth"); raw != "" {
		iso, ok := tabular.NormalizeUSDate(raw)
		if !ok {
			return member.ParsedScout{}, fmt.Errorf("unparseable date of birth %q", raw)
		}
		dob = iso
	}

	status, statusDate := normalizeHealthForm(h.Get(row.Fields, "health form"))
	return member.ParsedScout{
		Line:           row.Line,
		MemberID:       h.Get(row.Fields, "member id"),
		FirstName:      first,
		MiddleName:     h.Get(row.Fields, "middle name"),
		LastName:       last,
		Email:          h.Get(row.Fields, "email"),
		Phone:          h.Get(row.Fields, "phone"),
		Gender:         normalizeGender(h.Get(row.Fields, "gender")),
		DateOfBirth:    dob,
		Patrol:         h.Get(row.Fields, "patrol"),
		Positions:      normalizePositions(h.Get(row.Fields, "position")),
		Guardians:      parseGuardians(h.Get(row.Fields, "parent")),
		HealthForm:     status,
		HealthFormDate: statusDate,
	}, nil
}
