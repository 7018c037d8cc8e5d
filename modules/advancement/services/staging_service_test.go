package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutsync/scoutsync/modules/advancement/domain/advancement"
	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
)

func TestAdvancementStaging_NewDuplicateUpdate(t *testing.T) {
	members := newMemberRepoMock()
	records := newRecordRepoMock()
	unitID := uuid.New()
	scout := members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))

	records.seed(advancement.Record{
		ScoutID: scout.ID(), Kind: advancement.KindRank, Code: "scout",
		Version: "2016", Date: "2023-09-01",
	})
	records.seed(advancement.Record{
		ScoutID: scout.ID(), Kind: advancement.KindMeritBadge, Code: "first_aid",
		Version: "2023", Date: "2024-01-15",
	})

	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555", FirstName: "Tim", LastName: "Smith",
			Ranks: []advancement.ParsedRank{
				{Code: "scout", Name: "Scout", Version: "2016", Date: "2023-09-01"},
				{Code: "tenderfoot", Name: "Tenderfoot", Version: "2016", Date: "2024-06-01"},
			},
			MeritBadges: []advancement.ParsedMeritBadge{
				{Code: "first_aid", Name: "First Aid", Version: "2023", Date: "2024-02-20"},
			},
		}},
	}

	svc := NewStagingService(members, records, newCatalogMock())
	staged, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)
	require.Len(t, staged.Scouts, 1)

	ss := staged.Scouts[0]
	require.NotNil(t, ss.ScoutID)
	require.Len(t, ss.Changes, 3)
	assert.Equal(t, advancement.StatusDuplicate, ss.Changes[0].Status)
	assert.Equal(t, advancement.StatusNew, ss.Changes[1].Status)
	assert.Equal(t, advancement.StatusUpdate, ss.Changes[2].Status, "date moved, same badge")

	assert.Equal(t, 1, ss.Counts.New)
	assert.Equal(t, 1, ss.Counts.Duplicates)
	assert.Equal(t, 1, ss.Counts.Updates)
	assert.Equal(t, len(ss.Changes), ss.Counts.Total())
}

func TestAdvancementStaging_CountsPartitionIncoming(t *testing.T) {
	members := newMemberRepoMock()
	records := newRecordRepoMock()
	unitID := uuid.New()
	scout := members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))

	var reqs []advancement.ParsedRankRequirement
	for i := 1; i <= 7; i++ {
		reqs = append(reqs, advancement.ParsedRankRequirement{
			RankCode: "tenderfoot", Number: fmt.Sprintf("%da", i), Version: "2016", Date: "2024-06-01",
		})
	}
	// Two of them already stored, one with a different date.
	records.seed(advancement.Record{ScoutID: scout.ID(), Kind: advancement.KindRankRequirement, Code: "tenderfoot", Number: "1a", Version: "2016", Date: "2024-06-01"})
	records.seed(advancement.Record{ScoutID: scout.ID(), Kind: advancement.KindRankRequirement, Code: "tenderfoot", Number: "2a", Version: "2016", Date: "2023-01-01"})

	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555", RankRequirements: reqs,
		}},
	}
	svc := NewStagingService(members, records, newCatalogMock())
	staged, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)

	ss := staged.Scouts[0]
	assert.Equal(t, len(reqs), ss.Counts.Total())
	assert.Equal(t, 5, ss.Counts.New)
	assert.Equal(t, 1, ss.Counts.Duplicates)
	assert.Equal(t, 1, ss.Counts.Updates)
}

func TestAdvancementStaging_UnmatchedScout(t *testing.T) {
	members := newMemberRepoMock()
	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "404", FirstName: "Gone", LastName: "Missing",
			Ranks: []advancement.ParsedRank{{Code: "scout", Name: "Scout", Date: "2024-01-01"}},
		}},
	}
	svc := NewStagingService(members, newRecordRepoMock(), newCatalogMock())
	staged, err := svc.Stage(testContext(), uuid.New(), parsed)
	require.NoError(t, err)

	ss := staged.Scouts[0]
	assert.Nil(t, ss.ScoutID)
	require.Len(t, ss.Changes, 1)
	assert.Equal(t, advancement.StatusNew, ss.Changes[0].Status)
}

func TestAdvancementStaging_VersionFallbackWarning(t *testing.T) {
	members := newMemberRepoMock()
	unitID := uuid.New()
	members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))

	catalog := newCatalogMock()
	catalog.rankVersions["tenderfoot"] = []string{"2016", "2022"}

	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555",
			Ranks:    []advancement.ParsedRank{{Code: "tenderfoot", Name: "Tenderfoot", Version: "2010", Date: "2024-06-01"}},
		}},
	}
	svc := NewStagingService(members, newRecordRepoMock(), catalog)
	staged, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)

	require.Len(t, staged.Warnings, 1)
	w := staged.Warnings[0]
	assert.Equal(t, advancement.WarnVersionFallback, w.Kind)
	assert.Equal(t, "tenderfoot", w.Code)
	assert.Contains(t, w.Detail, `"2022"`)
}

func TestAdvancementStaging_RequirementNotFoundWarning(t *testing.T) {
	members := newMemberRepoMock()
	unitID := uuid.New()
	members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))

	catalog := newCatalogMock()
	catalog.requirements["tenderfoot|2016"] = []string{"1a", "1b", "2a"}

	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555",
			RankRequirements: []advancement.ParsedRankRequirement{
				{RankCode: "tenderfoot", Number: "1a", Version: "2016", Date: "2024-06-01"},
				{RankCode: "tenderfoot", Number: "9z", Version: "2016", Date: "2024-06-01"},
			},
		}},
	}
	svc := NewStagingService(members, newRecordRepoMock(), catalog)
	staged, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)

	require.Len(t, staged.Warnings, 1)
	w := staged.Warnings[0]
	assert.Equal(t, advancement.WarnRequirementNotFound, w.Kind)
	assert.Equal(t, "9z", w.Number)
}

func TestAdvancementStaging_UnseededRequirementCatalogIsSilent(t *testing.T) {
	members := newMemberRepoMock()
	unitID := uuid.New()
	members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))

	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555",
			RankRequirements: []advancement.ParsedRankRequirement{
				{RankCode: "tenderfoot", Number: "1a", Version: "2016", Date: "2024-06-01"},
				{RankCode: "tenderfoot", Number: "2b", Version: "2016", Date: "2024-06-01"},
				{RankCode: "tenderfoot", Number: "9z", Version: "2016", Date: "2024-06-01"},
			},
		}},
	}
	// Nothing seeded for tenderfoot/2016: the catalog has no opinion,
	// so no requirement warnings fire.
	svc := NewStagingService(members, newRecordRepoMock(), newCatalogMock())
	staged, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)
	assert.Empty(t, staged.Warnings)
}

func TestAdvancementStaging_BlankDateKeepsStoredDate(t *testing.T) {
	members := newMemberRepoMock()
	records := newRecordRepoMock()
	unitID := uuid.New()
	scout := members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))
	records.seed(advancement.Record{
		ScoutID: scout.ID(), Kind: advancement.KindMeritBadge, Code: "first_aid",
		Version: "2023", Date: "2024-01-15",
	})

	// Placeholder dates normalize to "", which must not read as a change.
	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555",
			MeritBadges: []advancement.ParsedMeritBadge{
				{Code: "first_aid", Name: "First Aid", Version: "2023", Date: ""},
			},
		}},
	}
	svc := NewStagingService(members, records, newCatalogMock())
	staged, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)

	require.Len(t, staged.Scouts[0].Changes, 1)
	ch := staged.Scouts[0].Changes[0]
	assert.Equal(t, advancement.StatusDuplicate, ch.Status)
	assert.Equal(t, "2024-01-15", ch.Date, "stored date survives a dateless row")
}

func TestAdvancementStaging_VersionMismatchWarning(t *testing.T) {
	members := newMemberRepoMock()
	records := newRecordRepoMock()
	unitID := uuid.New()
	scout := members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))
	records.seed(advancement.Record{
		ScoutID: scout.ID(), Kind: advancement.KindMeritBadge, Code: "camping",
		Version: "2019", Date: "2024-01-01",
	})

	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555",
			MeritBadges: []advancement.ParsedMeritBadge{
				{Code: "camping", Name: "Camping", Version: "2023", Date: "2024-01-01"},
			},
		}},
	}
	svc := NewStagingService(members, records, newCatalogMock())
	staged, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)

	require.Len(t, staged.Scouts[0].Changes, 1)
	assert.Equal(t, advancement.StatusUpdate, staged.Scouts[0].Changes[0].Status)
	require.Len(t, staged.Warnings, 1)
	assert.Equal(t, advancement.WarnVersionMismatch, staged.Warnings[0].Kind)
}

func TestAdvancementStaging_NeverWrites(t *testing.T) {
	members := newMemberRepoMock()
	records := newRecordRepoMock()
	unitID := uuid.New()
	members.seed(member.New(unitID, member.KindScout, "555", "Tim", "Smith"))

	parsed := &advancement.ParseResult{
		Scouts: []*advancement.ParsedScoutAdvancement{{
			MemberID: "555",
			Ranks:    []advancement.ParsedRank{{Code: "scout", Name: "Scout", Date: "2024-01-01"}},
		}},
	}
	svc := NewStagingService(members, records, newCatalogMock())
	_, err := svc.Stage(testContext(), unitID, parsed)
	require.NoError(t, err)
	assert.Empty(t, records.created)
	assert.Empty(t, records.updated)
	assert.Empty(t, members.created)
}
