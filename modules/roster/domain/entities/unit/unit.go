package unit

import (
	"strings"

	"github.com/google/uuid"
)

type Type string

const (
	TypeTroop   Type = "troop"
	TypePack    Type = "pack"
	TypeCrew    Type = "crew"
	TypeShip    Type = "ship"
	TypeUnknown Type = "unknown"
)

func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "troop":
		return TypeTroop
	case "pack":
		return TypePack
	case "crew":
		return TypeCrew
	case "ship":
		return TypeShip
	default:
		return TypeUnknown
	}
}

// Metadata identifies the unit an export belongs to. It is derived once
// from the first data row of either roster section and immutable after
// extraction.
type Metadata struct {
	Type     Type
	Number   string
	Suffix   string
	Council  string
	District string
}

// ParseDesignation splits a unit designation such as "Troop 0123 B" into
// type, number (leading zeros dropped), and optional suffix letter.
func ParseDesignation(s string) (Type, string, string) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) == 0 {
		return TypeUnknown, "", ""
	}
	t := ParseType(parts[0])

	number := ""
	if len(parts) > 1 {
		number = strings.TrimLeft(parts[1], "0")
		if number == "" && parts[1] != "" {
			number = "0"
		}
	}

	suffix := ""
	if len(parts) > 2 && len(parts[2]) == 1 {
		suffix = strings.ToUpper(parts[2])
	}
	return t, number, suffix
}

// Patrol is a persisted organizational sub-group scouts belong to.
// The import executor creates missing patrols on demand before the
// scouts that reference them.
type Patrol struct {
	ID     uuid.UUID
	UnitID uuid.UUID
	Name   string
}
