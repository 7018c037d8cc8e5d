package scoutbook

import (
	"regexp"
	"strings"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/pkg/tabular"
)

func normalizeGender(s string) member.Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "boy":
		return member.GenderMale
	case "f", "female", "girl":
		return member.GenderFemale
	case "n", "nb", "nonbinary", "non-binary":
		return member.GenderNonBinary
	default:
		// Unknown tokens are never guessed at.
		return member.GenderUnspecified
	}
}

// splitList breaks a pipe-delimited cell into trimmed, non-empty
// elements.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

var tenureRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// normalizePositions drops the exporter's trailing tenure annotation:
// "Committee Member (3m 16d)" becomes "Committee Member".
func normalizePositions(cell string) []string {
	var out []string
	for _, p := range splitList(cell) {
		p = strings.TrimSpace(tenureRe.ReplaceAllString(p, ""))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeHealthForm inspects free text for "expired" (any case) and
// independently extracts any embedded date as the expiration.
func normalizeHealthForm(cell string) (member.HealthFormStatus, string) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "none") {
		return member.HealthFormNone, ""
	}
	date, _ := tabular.NormalizeUSDate(cell)
	if strings.Contains(strings.ToLower(cell), "expired") {
		return member.HealthFormExpired, date
	}
	return member.HealthFormCurrent, date
}

var certCodeRe = regexp.MustCompile(`^[A-Z]{1,4}\d{1,4}$`)

// parseCertifications reads a pipe-delimited certification cell. Each
// entry carries an optional leading code token, a display name, and an
// optional parenthetical expiration such as "(expires 03/14/2026)".
func parseCertifications(cell string) []member.ParsedCertification {
	var out []member.ParsedCertification
	for _, entry := range splitList(cell) {
		expired := strings.Contains(strings.ToLower(entry), "expired")
		expires, _ := tabular.NormalizeUSDate(entry)

		name := strings.TrimSpace(tenureRe.ReplaceAllString(entry, ""))
		code := ""
		if fields := strings.Fields(name); len(fields) > 1 && certCodeRe.MatchString(fields[0]) {
			code = fields[0]
			name = strings.TrimSpace(strings.TrimPrefix(name, code))
		}
		if code == "" {
			code = tabular.NormalizeCode(name)
		}
		if name == "" {
			continue
		}
		out = append(out, member.ParsedCertification{
			Code:    code,
			Name:    name,
			Expires: expires,
			Expired: expired,
		})
	}
	return out
}

var guardianRe = regexp.MustCompile(`^(.*?)\s*\((\d+)\)\s*-\s*(.*)$`)

// parseGuardians reads embedded relationship strings like
// "Mary Smith (12345) - Mother - Guardian | mary@example.com". The
// member id is the implicit foreign key; resolution to an adult record
// is a later pass once the whole batch is known.
func parseGuardians(cell string) []member.ParsedGuardian {
	var out []member.ParsedGuardian
	for _, entry := range splitList(cell) {
		m := guardianRe.FindStringSubmatch(entry)
		if m == nil {
			continue
		}
		g := member.ParsedGuardian{
			Name:     strings.TrimSpace(m[1]),
			MemberID: m[2],
		}
		for i, part := range strings.Split(m[3], "-") {
			part = strings.TrimSpace(part)
			switch {
			case part == "":
			case strings.Contains(part, "@"):
				g.Email = strings.ToLower(part)
			case i == 0:
				g.Relationship = part
			}
		}
		out = append(out, g)
	}
	return out
}
