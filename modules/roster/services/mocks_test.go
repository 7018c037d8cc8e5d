package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

// fakeTx satisfies the transaction assertion in composables.InTx so
// service tests run without a database. None of its methods are ever
// called because the mocks below do not touch the connection.
type fakeTx struct{ pgx.Tx }

func testContext() context.Context {
	return composables.WithTx(context.Background(), fakeTx{})
}

type memberRepoMock struct {
	byID       map[uuid.UUID]member.Member
	byMemberID map[string]member.Member
	byEmail    map[string]member.Member
	byName     map[string]member.Member

	created       []member.Member
	updated       []member.Member
	certs         map[uuid.UUID][]member.ParsedCertification
	links         map[[2]uuid.UUID]string
	createErr     func(m member.Member) error
	linkExistsErr error
}

func newMemberRepoMock() *memberRepoMock {
	return &memberRepoMock{
		byID:       map[uuid.UUID]member.Member{},
		byMemberID: map[string]member.Member{},
		byEmail:    map[string]member.Member{},
		byName:     map[string]member.Member{},
		certs:      map[uuid.UUID][]member.ParsedCertification{},
		links:      map[[2]uuid.UUID]string{},
	}
}

func (r *memberRepoMock) seed(m member.Member) member.Member {
	if m.ID() == uuid.Nil {
		m = m.WithID(uuid.New())
	}
	r.byID[m.ID()] = m
	if m.MemberID() != "" {
		r.byMemberID[m.MemberID()] = m
	}
	if m.Email() != "" {
		r.byEmail[m.Email()] = m
	}
	r.byName[m.FirstName()+"|"+m.LastName()] = m
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

func (r *memberRepoMock) GetByEmail(_ context.Context, _ uuid.UUID, email string) (member.Member, error) {
	if m, ok := r.byEmail[email]; ok {
		return m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (r *memberRepoMock) GetByName(_ context.Context, _ uuid.UUID, first, last string) (member.Member, error) {
	if m, ok := r.byName[first+"|"+last]; ok {
		return m, nil
	}
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

func (r *memberRepoMock) Update(_ context.Context, m member.Member) error {
	r.updated = append(r.updated, m)
	return nil
}

func (r *memberRepoMock) ListCertifications(_ context.Context, memberID uuid.UUID) ([]member.ParsedCertification, error) {
	return r.certs[memberID], nil
}

func (r *memberRepoMock) ReplaceCertifications(_ context.Context, memberID uuid.UUID, certs []member.ParsedCertification) error {
	r.certs[memberID] = certs
	return nil
}

func (r *memberRepoMock) GuardianLinkExists(_ context.Context, scoutID, guardianID uuid.UUID) (bool, error) {
	if r.linkExistsErr != nil {
		return false, r.linkExistsErr
	}
	_, ok := r.links[[2]uuid.UUID{scoutID, guardianID}]
	return ok, nil
}

func (r *memberRepoMock) LinkGuardian(_ context.Context, scoutID, guardianID uuid.UUID, relationship string) error {
	r.links[[2]uuid.UUID{scoutID, guardianID}] = relationship
	return nil
}

type patrolRepoMock struct {
	byName  map[string]unit.Patrol
	created []unit.Patrol
}

func newPatrolRepoMock() *patrolRepoMock {
	return &patrolRepoMock{byName: map[string]unit.Patrol{}}
}

func (r *patrolRepoMock) GetByName(_ context.Context, _ uuid.UUID, name string) (unit.Patrol, error) {
	if p, ok := r.byName[name]; ok {
		return p, nil
	}
	return unit.Patrol{}, member.ErrPatrolNotFound
}

func (r *patrolRepoMock) Create(_ context.Context, p unit.Patrol) (unit.Patrol, error) {
	p.ID = uuid.New()
	r.byName[p.Name] = p
	r.created = append(r.created, p)
	return p, nil
}
