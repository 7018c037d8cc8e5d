package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/scoutsync/scoutsync/modules/roster/domain/aggregates/member"
	"github.com/scoutsync/scoutsync/pkg/composables"
)

const (
	selectMemberSQL = `
		SELECT id, unit_id, kind, member_id, first_name, middle_name, last_name,
		       email, phone, gender, date_of_birth, patrol_id, positions,
		       created_at, updated_at
		FROM members`

	insertMemberSQL = `
		INSERT INTO members (
			unit_id, kind, member_id, first_name, middle_name, last_name,
			email, phone, gender, date_of_birth, patrol_id, positions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	updateMemberSQL = `
		UPDATE members
		SET first_name = $2, middle_name = $3, last_name = $4, email = $5,
		    phone = $6, gender = $7, date_of_birth = $8, patrol_id = $9,
		    positions = $10, updated_at = now()
		WHERE id = $1`

	listCertificationsSQL = `
		SELECT code, name, expires_on, expired
		FROM member_certifications WHERE member_id = $1
		ORDER BY code`

	deleteCertificationsSQL = `DELETE FROM member_certifications WHERE member_id = $1`

	insertCertificationSQL = `
		INSERT INTO member_certifications (member_id, code, name, expires_on, expired)
		VALUES ($1, $2, $3, $4, $5)`

	guardianLinkExistsSQL = `
		SELECT EXISTS (
			SELECT 1 FROM guardians WHERE scout_id = $1 AND guardian_id = $2
		)`

	insertGuardianLinkSQL = `
		INSERT INTO guardians (scout_id, guardian_id, relationship)
		VALUES ($1, $2, $3)`
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (member.Member, error) {
	return r.getOne(ctx, selectMemberSQL+` WHERE id = $1`, id)
}

func (r *MemberRepository) GetByMemberID(ctx context.Context, unitID uuid.UUID, memberID string) (member.Member, error) {
	return r.getOne(ctx, selectMemberSQL+` WHERE unit_id = $1 AND member_id = $2`, unitID, memberID)
}

func (r *MemberRepository) GetByEmail(ctx context.Context, unitID uuid.UUID, email string) (member.Member, error) {
	return r.getOne(ctx, selectMemberSQL+` WHERE unit_id = $1 AND email = lower($2)`, unitID, email)
}

func (r *MemberRepository) GetByName(ctx context.Context, unitID uuid.UUID, firstName, lastName string) (member.Member, error) {
	return r.getOne(
		ctx,
		selectMemberSQL+` WHERE unit_id = $1 AND lower(first_name) = lower($2) AND lower(last_name) = lower($3)`,
		unitID, firstName, lastName,
	)
}

func (r *MemberRepository) getOne(ctx context.Context, query string, args ...any) (member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, err
	}
	m, err := scanMember(tx.QueryRow(ctx, query, args...))
	if gerrors.Is(err, pgx.ErrNoRows) {
		return member.Member{}, member.ErrNotFound
	}
	if err != nil {
		return member.Member{}, gerrors.Wrap(err, "query member")
	}
	return m, nil
}

func (r *MemberRepository) Create(ctx context.Context, m member.Member) (member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, err
	}

	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	err = tx.QueryRow(ctx, insertMemberSQL,
		m.UnitID(),
		string(m.Kind()),
		nullString(m.MemberID()),
		m.FirstName(),
		nullString(m.MiddleName()),
		m.LastName(),
		nullString(m.Email()),
		nullString(m.Phone()),
		string(m.Gender()),
		nullDate(m.DateOfBirth()),
		nullUUID(m.PatrolID()),
		textArray(m.Positions()),
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return member.Member{}, gerrors.Wrap(err, "insert member")
	}
	return member.Hydrate(
		id, m.UnitID(), m.Kind(), m.MemberID(),
		m.FirstName(), m.MiddleName(), m.LastName(),
		m.Email(), m.Phone(), m.Gender(), m.DateOfBirth(),
		m.PatrolID(), m.Positions(), createdAt, updatedAt,
	), nil
}

func (r *MemberRepository) Update(ctx context.Context, m member.Member) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, updateMemberSQL,
		m.ID(),
		m.FirstName(),
		nullString(m.MiddleName()),
		m.LastName(),
		nullString(m.Email()),
		nullString(m.Phone()),
		string(m.Gender()),
		nullDate(m.DateOfBirth()),
		nullUUID(m.PatrolID()),
		textArray(m.Positions()),
	)
	if err != nil {
		return gerrors.Wrap(err, "update member")
	}
	if tag.RowsAffected() == 0 {
		return member.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) ListCertifications(ctx context.Context, memberID uuid.UUID) ([]member.ParsedCertification, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, listCertificationsSQL, memberID)
	if err != nil {
		return nil, gerrors.Wrap(err, "query certifications")
	}
	defer rows.Close()

	var out []member.ParsedCertification
	for rows.Next() {
		var (
			c       member.ParsedCertification
			expires pgtype.Date
		)
		if err := rows.Scan(&c.Code, &c.Name, &expires, &c.Expired); err != nil {
			return nil, gerrors.Wrap(err, "scan certification")
		}
		if expires.Valid {
			c.Expires = expires.Time.Format(time.DateOnly)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *MemberRepository) ReplaceCertifications(ctx context.Context, memberID uuid.UUID, certs []member.ParsedCertification) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteCertificationsSQL, memberID); err != nil {
		return gerrors.Wrap(err, "delete certifications")
	}
	for _, c := range certs {
		expires, err := isoDate(c.Expires)
		if err != nil {
			return gerrors.Wrapf(err, "certification %s", c.Code)
		}
		if _, err := tx.Exec(ctx, insertCertificationSQL, memberID, c.Code, c.Name, expires, c.Expired); err != nil {
			return gerrors.Wrapf(err, "insert certification %s", c.Code)
		}
	}
	return nil
}

func (r *MemberRepository) GuardianLinkExists(ctx context.Context, scoutID, guardianID uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, guardianLinkExistsSQL, scoutID, guardianID).Scan(&exists); err != nil {
		return false, gerrors.Wrap(err, "query guardian link")
	}
	return exists, nil
}

func (r *MemberRepository) LinkGuardian(ctx context.Context, scoutID, guardianID uuid.UUID, relationship string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertGuardianLinkSQL, scoutID, guardianID, nullString(relationship)); err != nil {
		return gerrors.Wrap(err, "insert guardian link")
	}
	return nil
}

func scanMember(row pgx.Row) (member.Member, error) {
	var (
		id         uuid.UUID
		unitID     uuid.UUID
		kind       string
		memberID   pgtype.Text
		firstName  string
		middleName pgtype.Text
		lastName   string
		email      pgtype.Text
		phone      pgtype.Text
		gender     string
		dob        pgtype.Date
		patrolID   uuid.NullUUID
		positions  []string
		createdAt  time.Time
		updatedAt  time.Time
	)
	err := row.Scan(
		&id, &unitID, &kind, &memberID, &firstName, &middleName, &lastName,
		&email, &phone, &gender, &dob, &patrolID, &positions,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return member.Member{}, err
	}

	var dateOfBirth time.Time
	if dob.Valid {
		dateOfBirth = dob.Time
	}
	return member.Hydrate(
		id, unitID, member.Kind(kind), memberID.String,
		firstName, middleName.String, lastName,
		email.String, phone.String, member.Gender(gender), dateOfBirth,
		patrolID.UUID, positions, createdAt, updatedAt,
	), nil
}
