package advancement

import "github.com/google/uuid"

type ChangeStatus string

const (
	StatusNew       ChangeStatus = "new"
	StatusDuplicate ChangeStatus = "duplicate"
	StatusUpdate    ChangeStatus = "update"
)

type WarningKind string

const (
	WarnVersionFallback     WarningKind = "version-fallback"
	WarnRequirementNotFound WarningKind = "requirement-not-found"
	WarnVersionMismatch     WarningKind = "version-mismatch"
	WarnScoutNotFound       WarningKind = "scout-not-found"
)

type Warning struct {
	Kind     WarningKind `json:"kind"`
	MemberID string      `json:"memberId,omitempty"`
	Code     string      `json:"code,omitempty"`
	Number   string      `json:"number,omitempty"`
	Detail   string      `json:"detail"`
}

// StagedChange is one advancement row diffed against stored state.
type StagedChange struct {
	Kind       Kind
	Code       string
	Number     string // requirement kinds only
	Version    string
	Date       string
	Status     ChangeStatus
	ExistingID uuid.UUID // set for duplicate and update
}

type CategoryCounts struct {
	New        int `json:"new"`
	Duplicates int `json:"duplicates"`
	Updates    int `json:"updates"`
}

func (c *CategoryCounts) Add(status ChangeStatus) {
	switch status {
	case StatusNew:
		c.New++
	case StatusDuplicate:
		c.Duplicates++
	case StatusUpdate:
		c.Updates++
	}
}

func (c CategoryCounts) Total() int {
	return c.New + c.Duplicates + c.Updates
}

type StagedScoutAdvancement struct {
	MemberID  string
	FirstName string
	LastName  string
	// ScoutID is the matched member's id. Nil when the scout is not
	// present in the roster.
	ScoutID *uuid.UUID
	Changes []StagedChange
	Counts  CategoryCounts
}

type StagedTroopAdvancement struct {
	Scouts     []*StagedScoutAdvancement
	Counts     CategoryCounts
	OutOfScope int
	Warnings   []Warning
}

type ImportError struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

type ImportResult struct {
	ScoutsAttempted   int           `json:"scoutsAttempted"`
	ScoutsSucceeded   int           `json:"scoutsSucceeded"`
	RecordsCreated    int           `json:"recordsCreated"`
	RecordsUpdated    int           `json:"recordsUpdated"`
	DuplicatesSkipped int           `json:"duplicatesSkipped"`
	Warnings          []Warning     `json:"warnings,omitempty"`
	Errors            []ImportError `json:"errors,omitempty"`
}
