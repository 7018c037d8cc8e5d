package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var rosterSpecs = []SectionSpec{
	{Marker: "ADULT MEMBERS", BlankSentinel: "No Adult Members"},
	{Marker: "YOUTH MEMBERS", BlankSentinel: "No Youth Members"},
}

func TestExtract_TwoSections(t *testing.T) {
	lines := []string{
		"Troop 123 Roster Export",
		"ADULT MEMBERS",
		"First Name,Last Name,BSA Member ID",
		"Jane,Doe,12345",
		"",
		"YOUTH MEMBERS",
		"First Name,Last Name,BSA Member ID,Date of Birth",
		"Billy,Smith,67890,01/02/2010",
	}

	sections, errs := Extract(lines, rosterSpecs)
	require.Empty(t, errs)

	adults := sections["ADULT MEMBERS"]
	require.NotNil(t, adults)
	require.Len(t, adults.Rows, 1)
	require.Equal(t, 4, adults.Rows[0].Line)
	require.Equal(t, "Jane", adults.Header.Get(adults.Rows[0].Fields, "first name"))

	youth := sections["YOUTH MEMBERS"]
	require.NotNil(t, youth)
	require.Len(t, youth.Rows, 1)
	require.Equal(t, "01/02/2010", youth.Header.Get(youth.Rows[0].Fields, "date of birth"))
}

func TestExtract_MissingMarkerIsExplicit(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		"First Name,Last Name",
		"Jane,Doe",
	}

	sections, errs := Extract(lines, rosterSpecs)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], ErrSectionNotFound)
	require.Contains(t, errs[0].Error(), "YOUTH MEMBERS")
	require.NotNil(t, sections["ADULT MEMBERS"])
	require.Nil(t, sections["YOUTH MEMBERS"])
}

func TestExtract_EmptySectionIsNotMissing(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		"First Name,Last Name",
		"No Adult Members Found",
		"YOUTH MEMBERS",
		"First Name,Last Name",
	}

	sections, errs := Extract(lines, rosterSpecs)
	require.Empty(t, errs)
	require.NotNil(t, sections["ADULT MEMBERS"])
	require.Empty(t, sections["ADULT MEMBERS"].Rows)
	require.Empty(t, sections["YOUTH MEMBERS"].Rows)
}

func TestHeaderIndex_SubstringMatch(t *testing.T) {
	h := NewHeaderIndex([]string{"First Name", "BSA Member ID #", "Email Address"})

	i, ok := h.Find("member id")
	require.True(t, ok)
	require.Equal(t, 1, i)

	_, ok = h.Find("date of birth")
	require.False(t, ok)

	require.Equal(t, "", h.Get([]string{"only one"}, "email"))
}
