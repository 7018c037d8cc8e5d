package scoutbook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
)

const adultHeader = "First Name,Middle Name,Last Name,BSA Member ID,Email,Phone,Gender,Unit Number,Council,District,Positions,Certifications,Health Form"
const youthHeader = "First Name,Middle Name,Last Name,BSA Member ID,Email,Phone,Gender,Date of Birth,Unit Number,Council,District,Patrol,Positions,Parents/Guardians,Health Form"

func TestParseRoster_AdultPositions(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		adultHeader,
		`Jane,,Doe,12345,jane@example.com,555-0100,F,Troop 0123,Golden Gate Area Council,Redwood,"Scoutmaster|Committee Member (3m 16d)",,`,
		"YOUTH MEMBERS",
		youthHeader,
	}

	res, err := ParseRoster(lines)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Adults, 1)

	adult := res.Adults[0]
	require.Equal(t, "Jane", adult.FirstName)
	require.Equal(t, "Doe", adult.LastName)
	require.Equal(t, []string{"Scoutmaster", "Committee Member"}, adult.Positions)
	require.Equal(t, member.GenderFemale, adult.Gender)

	require.Equal(t, unit.TypeTroop, res.Unit.Type)
	require.Equal(t, "123", res.Unit.Number)
	require.Equal(t, "Golden Gate Area Council", res.Unit.Council)
}

func TestParseRoster_ScoutWithGuardians(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		adultHeader,
		"YOUTH MEMBERS",
		youthHeader,
		`Billy,J,Smith,67890,,,M,03/04/2012,Troop 0123,GGAC,Redwood,Hawks,Patrol Leader (1y 2m),"Mary Smith (12345) - Mother - Guardian|Bob Smith (54321) - Father - Guardian",Current (expires 06/01/2026)`,
	}

	res, err := ParseRoster(lines)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Scouts, 1)

	scout := res.Scouts[0]
	require.Equal(t, "2012-03-04", scout.DateOfBirth)
	require.Equal(t, "Hawks", scout.Patrol)
	require.Equal(t, []string{"Patrol Leader"}, scout.Positions)
	require.Equal(t, member.HealthFormCurrent, scout.HealthForm)
	require.Equal(t, "2026-06-01", scout.HealthFormDate)

	require.Len(t, scout.Guardians, 2)
	require.Equal(t, "Mary Smith", scout.Guardians[0].Name)
	require.Equal(t, "12345", scout.Guardians[0].MemberID)
	require.Equal(t, "Mother", scout.Guardians[0].Relationship)
}

func TestParseRoster_DuplicateMemberIDRejected(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		adultHeader,
		"Jane,,Doe,12345,,,F,Troop 0123,GGAC,Redwood,,,",
		"John,,Doe,12345,,,M,Troop 0123,GGAC,Redwood,,,",
		"YOUTH MEMBERS",
		youthHeader,
	}

	res, err := ParseRoster(lines)
	require.NoError(t, err)
	require.Len(t, res.Adults, 1)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Message, "duplicate member id 12345")
	require.Equal(t, 4, res.Errors[0].Line)
}

func TestParseRoster_MalformedRowCollectsAndContinues(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		adultHeader,
		",,,99999,,,,,,,,,", // no name
		"Jane,,Doe,12345,,,F,Troop 0123,GGAC,Redwood,,,",
		"YOUTH MEMBERS",
		youthHeader,
	}

	res, err := ParseRoster(lines)
	require.NoError(t, err)
	require.Len(t, res.Adults, 1)
	require.Len(t, res.Errors, 1)
	require.Equal(t, 3, res.Errors[0].Line)
}

func TestParseRoster_MissingBothMarkers(t *testing.T) {
	_, err := ParseRoster([]string{"not,a,roster", "export,at,all"})
	require.ErrorIs(t, err, ErrNotRosterExport)
}

func TestParseRoster_MissingYouthMarkerReported(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		adultHeader,
		"Jane,,Doe,12345,,,F,Troop 0123,GGAC,Redwood,,,",
	}

	res, err := ParseRoster(lines)
	require.NoError(t, err)
	require.Len(t, res.Adults, 1)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Message, "YOUTH MEMBERS")
}

func TestParseRoster_Idempotent(t *testing.T) {
	lines := []string{
		"ADULT MEMBERS",
		adultHeader,
		`Jane,,Doe,12345,jane@example.com,,F,Troop 0123,GGAC,Redwood,Scoutmaster,Y01 Youth Protection Training (expires 03/14/2026),`,
		"YOUTH MEMBERS",
		youthHeader,
		`Billy,,Smith,67890,,,M,03/04/2012,Troop 0123,GGAC,Redwood,Hawks,,"Mary Smith (12345) - Mother - Guardian",`,
	}

	first, err := ParseRoster(lines)
	require.NoError(t, err)
	second, err := ParseRoster(lines)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestParseCertifications(t *testing.T) {
	certs := parseCertifications("Y01 Youth Protection Training (expires 03/14/2026)|CPR Certification (expired 01/01/2020)")
	require.Len(t, certs, 2)

	require.Equal(t, "Y01", certs[0].Code)
	require.Equal(t, "Youth Protection Training", certs[0].Name)
	require.Equal(t, "2026-03-14", certs[0].Expires)
	require.False(t, certs[0].Expired)

	require.Equal(t, "cpr_certification", certs[1].Code)
	require.True(t, certs[1].Expired)
	require.Equal(t, "2020-01-01", certs[1].Expires)
}

func TestNormalizeGender_DefaultsToUnspecified(t *testing.T) {
	require.Equal(t, member.GenderUnspecified, normalizeGender(""))
	require.Equal(t, member.GenderUnspecified, normalizeGender("prefer not to say"))
	require.Equal(t, member.GenderMale, normalizeGender("M"))
	require.Equal(t, member.GenderNonBinary, normalizeGender("Non-Binary"))
}
