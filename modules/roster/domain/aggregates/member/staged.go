package member

import (
	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
)

type ChangeStatus string

const (
	ChangeNew       ChangeStatus = "new"
	ChangeDuplicate ChangeStatus = "duplicate"
	ChangeUpdate    ChangeStatus = "update"
)

type MatchStatus string

const (
	MatchMatched   MatchStatus = "matched"
	MatchUnmatched MatchStatus = "unmatched"
)

// StagedAdult and StagedScout are proposed mutations. Immutable once
// computed; the executor consumes them or they are discarded with the
// session.
type StagedAdult struct {
	Adult      ParsedAdult
	Status     ChangeStatus
	Match      MatchStatus
	ExistingID uuid.UUID // set when Status != new
	// Changed lists the fields that differ for updates.
	Changed []string
}

type StagedScout struct {
	Scout      ParsedScout
	Status     ChangeStatus
	Match      MatchStatus
	ExistingID uuid.UUID
	Changed    []string
}

type RosterSummary struct {
	AdultsNew       int
	AdultsDuplicate int
	AdultsUpdate    int
	ScoutsNew       int
	ScoutsDuplicate int
	ScoutsUpdate    int
}

type StagedRoster struct {
	Unit    unit.Metadata
	Adults  []StagedAdult
	Scouts  []StagedScout
	Summary RosterSummary
}

type WarningKind string

const (
	WarningGuardianNotFound WarningKind = "guardian-not-found"
	WarningMemberNotFound   WarningKind = "member-not-found"
)

type Warning struct {
	Kind   WarningKind
	Name   string
	Detail string
}

// ImportError records one person's failure without aborting the batch.
type ImportError struct {
	MemberID string
	Name     string
	Message  string
}

type RosterImportResult struct {
	Attempted            int
	Succeeded            int
	AdultsCreated        int
	ScoutsCreated        int
	PatrolsCreated       int
	GuardianLinksCreated int
	Updated              int
	DuplicatesSkipped    int
	Warnings             []Warning
	Errors               []ImportError
}
