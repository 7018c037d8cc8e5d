package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scoutsync/scoutsync/modules/advancement/domain/advancement"
	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

type fakeTx struct{ pgx.Tx }

func testContext() context.Context {
	return composables.WithTx(context.Background(), fakeTx{})
}

type memberRepoMock struct {
	byID       map[uuid.UUID]member.Member
	byMemberID map[string]member.Member
	created    []member.Member
	createErr  func(m member.Member) error
}

func newMemberRepoMock() *memberRepoMock {
	return &memberRepoMock{
		byID:       map[uuid.UUID]member.Member{},
		byMemberID: map[string]member.Member{},
	}
}

func (r *memberRepoMock) seed(m member.Member) member.Member {
	if m.ID() == uuid.Nil {
		m = m.WithID(uuid.New())
	}
	r.byID[m.ID()] = m
	r.byMemberID[m.MemberID()] = m
	return m
}

func (r *memberRepoMock) GetByID(_ context.Context, id uuid.UUID) (member.Member, error) {
	if m, ok := r.byID[id]; ok {
		return m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (r *memberRepoMock) GetByMemberID(_ context.Context, _ uuid.UUID, memberID string) (member.Member, error) {
	if m, ok := r.byMemberID[memberID]; ok {
		return m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (r *memberRepoMock) GetByEmail(context.Context, uuid.UUID, string) (member.Member, error) {
	return member.Member{}, member.ErrNotFound
}

func (r *memberRepoMock) GetByName(context.Context, uuid.UUID, string, string) (member.Member, error) {
	return member.Member{}, member.ErrNotFound
}

func (r *memberRepoMock) Create(_ context.Context, m member.Member) (member.Member, error) {
	if r.createErr != nil {
		if err := r.createErr(m); err != nil {
			return member.Member{}, err
		}
	}
	m = r.seed(m)
	r.created = append(r.created, m)
	return m, nil
}

func (r *memberRepoMock) Update(context.Context, member.Member) error { return nil }

func (r *memberRepoMock) ListCertifications(context.Context, uuid.UUID) ([]member.ParsedCertification, error) {
	return nil, nil
}

func (r *memberRepoMock) ReplaceCertifications(context.Context, uuid.UUID, []member.ParsedCertification) error {
	return nil
}

func (r *memberRepoMock) GuardianLinkExists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *memberRepoMock) LinkGuardian(context.Context, uuid.UUID, uuid.UUID, string) error {
	return nil
}

type recordRepoMock struct {
	byScout   map[uuid.UUID][]advancement.Record
	created   []advancement.Record
	updated   []advancement.Record
	createErr func(rec advancement.Record) error
}

func newRecordRepoMock() *recordRepoMock {
	return &recordRepoMock{byScout: map[uuid.UUID][]advancement.Record{}}
}

func (r *recordRepoMock) seed(rec advancement.Record) advancement.Record {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.byScout[rec.ScoutID] = append(r.byScout[rec.ScoutID], rec)
	return rec
}

func (r *recordRepoMock) ListByScout(_ context.Context, scoutID uuid.UUID) ([]advancement.Record, error) {
	return r.byScout[scoutID], nil
}

func (r *recordRepoMock) Create(_ context.Context, rec advancement.Record) error {
	if r.createErr != nil {
		if err := r.createErr(rec); err != nil {
			return err
		}
	}
	r.seed(rec)
	r.created = append(r.created, rec)
	return nil
}

func (r *recordRepoMock) Update(_ context.Context, rec advancement.Record) error {
	r.updated = append(r.updated, rec)
	return nil
}

// catalogMock answers version lookups from fixed maps. Missing codes
// read as "catalog has no opinion", which staging treats as silence.
type catalogMock struct {
	rankVersions  map[string][]string
	badgeVersions map[string][]string
	requirements  map[string][]string // keyed "code|version"
}

func newCatalogMock() *catalogMock {
	return &catalogMock{
		rankVersions:  map[string][]string{},
		badgeVersions: map[string][]string{},
		requirements:  map[string][]string{},
	}
}

func (c *catalogMock) RankVersions(_ context.Context, rankCode string) ([]string, error) {
	return c.rankVersions[rankCode], nil
}

func (c *catalogMock) RankRequirementNumbers(_ context.Context, rankCode, version string) ([]string, error) {
	return c.requirements[rankCode+"|"+version], nil
}

func (c *catalogMock) BadgeVersions(_ context.Context, badgeCode string) ([]string, error) {
	return c.badgeVersions[badgeCode], nil
}
