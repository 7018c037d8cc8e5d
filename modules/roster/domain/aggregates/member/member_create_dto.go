package member

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scoutsync/scoutsync/pkg/constants"
	"github.com/scoutsync/scoutsync/pkg/tabular"
)

// CreateDTO is validated just before the executor writes a new member.
// Staging works with parsed records; only approved creates pass through
// here.
type CreateDTO struct {
	UnitID    uuid.UUID `validate:"required"`
	Kind      Kind      `validate:"required,oneof=adult scout"`
	MemberID  string
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`

	MiddleName  string
	Email       string `validate:"omitempty,email"`
	Phone       string
	Gender      Gender
	DateOfBirth string `validate:"omitempty,datetime=2006-01-02"`
	PatrolID    uuid.UUID
	Positions   []string
}

func (d *CreateDTO) Normalize() {
	d.MemberID = strings.TrimSpace(d.MemberID)
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.MiddleName = strings.TrimSpace(d.MiddleName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	if d.Gender == "" {
		d.Gender = GenderUnspecified
	}
}

func (d *CreateDTO) Validate() error {
	d.Normalize()
	return constants.Validate.Struct(d)
}

func (d *CreateDTO) ToEntity() (Member, error) {
	if err := d.Validate(); err != nil {
		return Member{}, err
	}
	m := New(d.UnitID, d.Kind, d.MemberID, d.FirstName, d.LastName).
		WithNameParts(d.FirstName, d.MiddleName, d.LastName).
		WithContact(d.Email, d.Phone).
		WithGender(d.Gender).
		WithPatrolID(d.PatrolID).
		WithPositions(d.Positions)

	if d.DateOfBirth != "" {
		dob, err := tabular.ParseISODate(d.DateOfBirth)
		if err != nil {
			return Member{}, err
		}
		m = m.WithDateOfBirth(dob)
	}
	return m, nil
}
