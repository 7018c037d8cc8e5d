package member

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAdult Kind = "adult"
	KindScout Kind = "scout"
)

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderNonBinary   Gender = "nonbinary"
	GenderUnspecified Gender = "unspecified"
)

// Member is the persisted person record a parsed row reconciles against.
// Fields are unexported; construction goes through New or Hydrate so a
// member is always normalized the same way.
type Member struct {
	id          uuid.UUID
	unitID      uuid.UUID
	kind        Kind
	memberID    string // external organization-issued member number, may be empty
	firstName   string
	middleName  string
	lastName    string
	email       string
	phone       string
	gender      Gender
	dateOfBirth time.Time // scouts only, zero for adults
	patrolID    uuid.UUID // scouts only
	positions   []string
	createdAt   time.Time
	updatedAt   time.Time
}

func New(unitID uuid.UUID, kind Kind, memberID, firstName, lastName string) Member {
	return Member{
		unitID:    unitID,
		kind:      kind,
		memberID:  strings.TrimSpace(memberID),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		gender:    GenderUnspecified,
	}
}

func Hydrate(
	id uuid.UUID,
	unitID uuid.UUID,
	kind Kind,
	memberID string,
	firstName, middleName, lastName string,
	email, phone string,
	gender Gender,
	dateOfBirth time.Time,
	patrolID uuid.UUID,
	positions []string,
	createdAt, updatedAt time.Time,
) Member {
	return Member{
		id:          id,
		unitID:      unitID,
		kind:        kind,
		memberID:    strings.TrimSpace(memberID),
		firstName:   strings.TrimSpace(firstName),
		middleName:  strings.TrimSpace(middleName),
		lastName:    strings.TrimSpace(lastName),
		email:       strings.ToLower(strings.TrimSpace(email)),
		phone:       strings.TrimSpace(phone),
		gender:      gender,
		dateOfBirth: dateOfBirth,
		patrolID:    patrolID,
		positions:   positions,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (m Member) ID() uuid.UUID          { return m.id }
func (m Member) UnitID() uuid.UUID      { return m.unitID }
func (m Member) Kind() Kind             { return m.kind }
func (m Member) MemberID() string       { return m.memberID }
func (m Member) FirstName() string      { return m.firstName }
func (m Member) MiddleName() string     { return m.middleName }
func (m Member) LastName() string       { return m.lastName }
func (m Member) Email() string          { return m.email }
func (m Member) Phone() string          { return m.phone }
func (m Member) Gender() Gender         { return m.gender }
func (m Member) DateOfBirth() time.Time { return m.dateOfBirth }
func (m Member) PatrolID() uuid.UUID    { return m.patrolID }
func (m Member) Positions() []string    { return m.positions }
func (m Member) CreatedAt() time.Time   { return m.createdAt }
func (m Member) UpdatedAt() time.Time   { return m.updatedAt }
func (m Member) IsZero() bool           { return m.id == uuid.Nil && m.memberID == "" }

func (m Member) WithID(id uuid.UUID) Member {
	m.id = id
	return m
}

func (m Member) WithContact(email, phone string) Member {
	m.email = strings.ToLower(strings.TrimSpace(email))
	m.phone = strings.TrimSpace(phone)
	return m
}

func (m Member) WithNameParts(first, middle, last string) Member {
	m.firstName = strings.TrimSpace(first)
	m.middleName = strings.TrimSpace(middle)
	m.lastName = strings.TrimSpace(last)
	return m
}

func (m Member) WithGender(g Gender) Member {
	m.gender = g
	return m
}

func (m Member) WithDateOfBirth(dob time.Time) Member {
	m.dateOfBirth = dob
	return m
}

func (m Member) WithPatrolID(id uuid.UUID) Member {
	m.patrolID = id
	return m
}

func (m Member) WithPositions(positions []string) Member {
	m.positions = positions
	return m
}
