package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/staff"
)

type memberRow struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Title          string         `db:"title"`
	Education      null.String    `db:"education"`
	Experience     null.String    `db:"experience"`
	Specialization null.String    `db:"specialization"`
	Bio            null.String    `db:"bio"`
	Achievements   pq.StringArray `db:"achievements"`
	Email          null.String    `db:"email"`
	Phone          null.String    `db:"phone"`
	PhotoKey       null.String    `db:"photo_key"`
	PhotoURL       null.String    `db:"photo_url"`
	IsKeyStaff     bool           `db:"is_key_staff"`
	IsProprietress bool           `db:"is_proprietress"`
	IsActive       bool           `db:"is_active"`
	DisplayOrder   int            `db:"display_order"`
	CreatedAt      null.Time      `db:"created_at"`
	UpdatedAt      null.Time      `db:"updated_at"`
}

func (r memberRow) unpack() staff.Member {
	return staff.Member{
		ID:             r.ID,
		Name:           r.Name,
		Title:          r.Title,
		Education:      r.Education.String,
		Experience:     r.Experience.String,
		Specialization: r.Specialization.String,
		Bio:            r.Bio.String,
		Achievements:   r.Achievements,
		Email:          r.Email.String,
		Phone:          r.Phone.String,
		PhotoKey:       r.PhotoKey.String,
		PhotoURL:       r.PhotoURL.String,
		IsKeyStaff:     r.IsKeyStaff,
		IsProprietress: r.IsProprietress,
		IsActive:       r.IsActive,
		DisplayOrder:   r.DisplayOrder,
		CreatedAt:      r.CreatedAt.Time,
		UpdatedAt:      r.UpdatedAt.Time,
	}
}

type staffRepository struct {
	db *sqlx.DB
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db *sqlx.DB) *staffRepository {
	return &staffRepository{db: db}
}

func (repo staffRepository) CreateMember(ctx context.Context, m staff.Member, exec ...core.DBExecutor) (staff.Member, error) {
	m.ID = uuid.New().String()

	q := `
		INSERT INTO staff_member (
			id, name, title, education, experience, specialization, bio, achievements,
			email, phone, photo_key, photo_url, is_key_staff, is_proprietress, is_active,
			display_order, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		m.ID, m.Name, m.Title,
		null.NewString(m.Education, m.Education != ""),
		null.NewString(m.Experience, m.Experience != ""),
		null.NewString(m.Specialization, m.Specialization != ""),
		null.NewString(m.Bio, m.Bio != ""),
		pq.Array(m.Achievements),
		null.NewString(m.Email, m.Email != ""),
		null.NewString(m.Phone, m.Phone != ""),
		null.NewString(m.PhotoKey, m.PhotoKey != ""),
		null.NewString(m.PhotoURL, m.PhotoURL != ""),
		m.IsKeyStaff, m.IsProprietress, m.IsActive, m.DisplayOrder, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return staff.Member{}, errors.Wrap(err, "inserting staff member")
	}
	return m, nil
}

func (repo staffRepository) QueryMembers(ctx context.Context, activeOnly, keyOnly bool, exec ...core.DBExecutor) ([]staff.Member, error) {
	q := `SELECT * FROM staff_member WHERE 1=1`
	if activeOnly {
		q += ` AND is_active`
	}
	if keyOnly {
		q += ` AND is_key_staff`
	}
	q += ` ORDER BY display_order ASC, created_at ASC`

	exe := ext(repo.db, exec)
	var rows []memberRow
	if err := sqlx.SelectContext(ctx, exe, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying staff members")
	}

	members := make([]staff.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, r.unpack())
	}
	return members, nil
}

func (repo staffRepository) GetMember(ctx context.Context, id string, exec ...core.DBExecutor) (staff.Member, error) {
	if _, err := uuid.Parse(id); err != nil {
		return staff.Member{}, staff.ErrNotFound
	}

	exe := ext(repo.db, exec)
	var r memberRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(`SELECT * FROM staff_member WHERE id = ?`), id); err != nil {
		return staff.Member{}, trapNoRowsErr(err, staff.ErrNotFound, "finding staff member")
	}
	return r.unpack(), nil
}

func (repo staffRepository) GetProprietress(ctx context.Context, exec ...core.DBExecutor) (staff.Member, error) {
	exe := ext(repo.db, exec)
	var r memberRow
	q := `SELECT * FROM staff_member WHERE is_proprietress AND is_active ORDER BY display_order ASC LIMIT 1`
	if err := sqlx.GetContext(ctx, exe, &r, q); err != nil {
		return staff.Member{}, trapNoRowsErr(err, staff.ErrProprietressNotFound, "finding proprietress")
	}
	return r.unpack(), nil
}

func (repo staffRepository) MaxDisplayOrder(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	exe := ext(repo.db, exec)
	var max int
	if err := sqlx.GetContext(ctx, exe, &max, `SELECT COALESCE(MAX(display_order), 0) FROM staff_member`); err != nil {
		return 0, errors.Wrap(err, "getting max display order")
	}
	return max, nil
}

func (repo staffRepository) UpdateMember(ctx context.Context, m staff.Member, exec ...core.DBExecutor) (staff.Member, error) {
	q := `
		UPDATE staff_member SET
			name = ?, title = ?, education = ?, experience = ?, specialization = ?, bio = ?,
			achievements = ?, email = ?, phone = ?, photo_key = ?, photo_url = ?,
			is_key_staff = ?, is_proprietress = ?, is_active = ?, display_order = ?, updated_at = ?
		WHERE id = ?
		RETURNING *`
	exe := ext(repo.db, exec)
	var r memberRow
	err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q),
		m.Name, m.Title,
		null.NewString(m.Education, m.Education != ""),
		null.NewString(m.Experience, m.Experience != ""),
		null.NewString(m.Specialization, m.Specialization != ""),
		null.NewString(m.Bio, m.Bio != ""),
		pq.Array(m.Achievements),
		null.NewString(m.Email, m.Email != ""),
		null.NewString(m.Phone, m.Phone != ""),
		null.NewString(m.PhotoKey, m.PhotoKey != ""),
		null.NewString(m.PhotoURL, m.PhotoURL != ""),
		m.IsKeyStaff, m.IsProprietress, m.IsActive, m.DisplayOrder, m.UpdatedAt, m.ID)
	if err != nil {
		return staff.Member{}, trapNoRowsErr(err, staff.ErrNotFound, "updating staff member")
	}
	return r.unpack(), nil
}

// SwapDisplayOrder exchanges the two members' display order in one transaction.
func (repo staffRepository) SwapDisplayOrder(ctx context.Context, a, b staff.Member) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning swap transaction")
	}

	q := tx.Rebind(`UPDATE staff_member SET display_order = ?, updated_at = NOW() WHERE id = ?`)
	if _, err = tx.ExecContext(ctx, q, b.DisplayOrder, a.ID); err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "swapping display order")
	}
	if _, err = tx.ExecContext(ctx, q, a.DisplayOrder, b.ID); err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "swapping display order")
	}
	return errors.Wrap(tx.Commit(), "committing swap transaction")
}

func (repo staffRepository) DeleteMembersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM staff_member WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting staff members")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting staff members")
	}
	return rowsAffected(res, "deleting staff members")
}
