package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/admission"
)

type admissionRow struct {
	ID               string      `db:"id"`
	ParentName       string      `db:"parent_name"`
	ParentEmail      string      `db:"parent_email"`
	ParentPhone      string      `db:"parent_phone"`
	ChildName        string      `db:"child_name"`
	ChildGender      string      `db:"child_gender"`
	ChildAge         int         `db:"child_age"`
	Level            string      `db:"level"`
	PreviousSchool   null.String `db:"previous_school"`
	EmergencyContact null.String `db:"emergency_contact"`
	Message          null.String `db:"message"`
	Status           string      `db:"status"`
	CreatedAt        null.Time   `db:"created_at"`
	UpdatedAt        null.Time   `db:"updated_at"`
}

func (r admissionRow) unpack() admission.Admission {
	return admission.Admission{
		ID:               r.ID,
		ParentName:       r.ParentName,
		ParentEmail:      r.ParentEmail,
		ParentPhone:      r.ParentPhone,
		ChildName:        r.ChildName,
		ChildGender:      r.ChildGender,
		ChildAge:         r.ChildAge,
		Level:            r.Level,
		PreviousSchool:   r.PreviousSchool.String,
		EmergencyContact: r.EmergencyContact.String,
		Message:          r.Message.String,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt.Time,
		UpdatedAt:        r.UpdatedAt.Time,
	}
}

type admissionRepository struct {
	db *sqlx.DB
}

var _ admission.Repository = (*admissionRepository)(nil) // interface compliance check

func NewAdmissionRepository(db *sqlx.DB) *admissionRepository {
	return &admissionRepository{db: db}
}

func (repo admissionRepository) CreateAdmission(ctx context.Context, adm admission.Admission, exec ...core.DBExecutor) (admission.Admission, error) {
	adm.ID = uuid.New().String()

	q := `
		INSERT INTO admission (
			id, parent_name, parent_email, parent_phone, child_name, child_gender, child_age,
			level, previous_school, emergency_contact, message, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		adm.ID, adm.ParentName, adm.ParentEmail, adm.ParentPhone, adm.ChildName, adm.ChildGender, adm.ChildAge,
		adm.Level, null.NewString(adm.PreviousSchool, adm.PreviousSchool != ""),
		null.NewString(adm.EmergencyContact, adm.EmergencyContact != ""),
		null.NewString(adm.Message, adm.Message != ""), adm.Status, adm.CreatedAt, adm.UpdatedAt)
	if err != nil {
		return admission.Admission{}, errors.Wrap(err, "inserting admission")
	}
	return adm, nil
}

func (repo admissionRepository) QueryAdmissions(ctx context.Context, filter *admission.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]admission.Admission, error) {
	q := `SELECT * FROM admission WHERE 1=1`
	var args []interface{}

	if filter != nil {
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			q += ` AND (parent_name ILIKE ? OR parent_email ILIKE ? OR child_name ILIKE ?)`
			args = append(args, val, val, val)
		}
		if filter.Status != "" {
			q += ` AND status = ?`
			args = append(args, filter.Status)
		}
		if filter.Level != "" {
			q += ` AND level = ?`
			args = append(args, filter.Level)
		}
	}
	q += orderBy(ordering)

	exe := ext(repo.db, exec)
	var rows []admissionRow
	if err := sqlx.SelectContext(ctx, exe, &rows, exe.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying admissions")
	}

	adms := make([]admission.Admission, 0, len(rows))
	for _, r := range rows {
		adms = append(adms, r.unpack())
	}
	return adms, nil
}

func (repo admissionRepository) GetAdmission(ctx context.Context, id string, exec ...core.DBExecutor) (admission.Admission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return admission.Admission{}, admission.ErrNotFound
	}

	exe := ext(repo.db, exec)
	var r admissionRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(`SELECT * FROM admission WHERE id = ?`), id); err != nil {
		return admission.Admission{}, trapNoRowsErr(err, admission.ErrNotFound, "finding admission")
	}
	return r.unpack(), nil
}

func (repo admissionRepository) UpdateAdmission(ctx context.Context, adm admission.Admission, exec ...core.DBExecutor) (admission.Admission, error) {
	q := `
		UPDATE admission SET
			parent_name = ?, parent_email = ?, parent_phone = ?, child_name = ?, child_gender = ?,
			child_age = ?, level = ?, previous_school = ?, emergency_contact = ?, message = ?,
			status = ?, updated_at = ?
		WHERE id = ?
		RETURNING *`
	exe := ext(repo.db, exec)
	var r admissionRow
	err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q),
		adm.ParentName, adm.ParentEmail, adm.ParentPhone, adm.ChildName, adm.ChildGender,
		adm.ChildAge, adm.Level, null.NewString(adm.PreviousSchool, adm.PreviousSchool != ""),
		null.NewString(adm.EmergencyContact, adm.EmergencyContact != ""),
		null.NewString(adm.Message, adm.Message != ""), adm.Status, adm.UpdatedAt, adm.ID)
	if err != nil {
		return admission.Admission{}, trapNoRowsErr(err, admission.ErrNotFound, "updating admission")
	}
	return r.unpack(), nil
}

func (repo admissionRepository) DeleteAdmissionsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM admission WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting admissions")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting admissions")
	}
	return rowsAffected(res, "deleting admissions")
}
