package member

import (
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/pkg/tabular"
)

// Parsed records are the transient, in-memory output of one parse pass.
// They exist only for the duration of an import session; nothing here
// touches persisted state.

type HealthFormStatus string

const (
	HealthFormNone    HealthFormStatus = "none"
	HealthFormCurrent HealthFormStatus = "current"
	HealthFormExpired HealthFormStatus = "expired"
)

type ParsedCertification struct {
	Code    string
	Name    string
	Expires string // ISO date, empty when the export carries none
	Expired bool
}

// ParsedGuardian is extracted from an embedded relationship string such
// as "Mary Smith (12345) - Mother - Guardian". Resolution against adult
// records happens in a second pass once the whole batch is parsed.
type ParsedGuardian struct {
	MemberID     string
	Name         string
	Relationship string
	Email        string
	Phone        string
}

type ParsedAdult struct {
	Line           int
	MemberID       string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	Phone          string
	Gender         Gender
	Positions      []string
	Certifications []ParsedCertification
	HealthForm     HealthFormStatus
	HealthFormDate string
}

type ParsedScout struct {
	Line           int
	MemberID       string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	Phone          string
	Gender         Gender
	DateOfBirth    string // ISO date
	Patrol         string
	Positions      []string
	Guardians      []ParsedGuardian
	HealthForm     HealthFormStatus
	HealthFormDate string
}

type RosterParseResult struct {
	Unit   unit.Metadata
	Adults []ParsedAdult
	Scouts []ParsedScout
	// Errors holds one human-readable message per malformed row, indexed
	// by source line number. Malformed rows never abort the parse.
	Errors []tabular.RowError
}
