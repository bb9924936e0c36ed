package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/career"
)

type openingRow struct {
	ID               string         `db:"id"`
	Title            string         `db:"title"`
	Department       string         `db:"department"`
	Type             string         `db:"type"`
	Location         string         `db:"location"`
	Salary           null.String    `db:"salary"`
	Description      string         `db:"description"`
	Requirements     pq.StringArray `db:"requirements"`
	Responsibilities pq.StringArray `db:"responsibilities"`
	IsActive         bool           `db:"is_active"`
	CreatedAt        null.Time      `db:"created_at"`
	UpdatedAt        null.Time      `db:"updated_at"`
}

func (r openingRow) unpack() career.Opening {
	return career.Opening{
		ID:               r.ID,
		Title:            r.Title,
		Department:       r.Department,
		Type:             r.Type,
		Location:         r.Location,
		Salary:           r.Salary.String,
		Description:      r.Description,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt.Time,
		UpdatedAt:        r.UpdatedAt.Time,
	}
}

type openingRepository struct {
	db *sqlx.DB
}

var _ career.OpeningRepository = (*openingRepository)(nil) // interface compliance check

func NewOpeningRepository(db *sqlx.DB) *openingRepository {
	return &openingRepository{db: db}
}

func (repo openingRepository) CreateOpening(ctx context.Context, op career.Opening, exec ...core.DBExecutor) (career.Opening, error) {
	op.ID = uuid.New().String()

	q := `
		INSERT INTO job_opening (
			id, title, department, type, location, salary, description,
			requirements, responsibilities, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		op.ID, op.Title, op.Department, op.Type, op.Location, null.NewString(op.Salary, op.Salary != ""),
		op.Description, pq.Array(op.Requirements), pq.Array(op.Responsibilities), op.IsActive, op.CreatedAt, op.UpdatedAt)
	if err != nil {
		return career.Opening{}, errors.Wrap(err, "inserting job opening")
	}
	return op, nil
}

func (repo openingRepository) QueryOpenings(ctx context.Context, activeOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]career.Opening, error) {
	q := `SELECT * FROM job_opening`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += orderBy(ordering)

	exe := ext(repo.db, exec)
	var rows []openingRow
	if err := sqlx.SelectContext(ctx, exe, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying job openings")
	}

	ops := make([]career.Opening, 0, len(rows))
	for _, r := range rows {
		ops = append(ops, r.unpack())
	}
	return ops, nil
}

func (repo openingRepository) GetOpening(ctx context.Context, id string, exec ...core.DBExecutor) (career.Opening, error) {
	if _, err := uuid.Parse(id); err != nil {
		return career.Opening{}, career.ErrOpeningNotFound
	}

	exe := ext(repo.db, exec)
	var r openingRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(`SELECT * FROM job_opening WHERE id = ?`), id); err != nil {
		return career.Opening{}, trapNoRowsErr(err, career.ErrOpeningNotFound, "finding job opening")
	}
	return r.unpack(), nil
}

func (repo openingRepository) UpdateOpening(ctx context.Context, op career.Opening, exec ...core.DBExecutor) (career.Opening, error) {
	q := `
		UPDATE job_opening SET
			title = ?, department = ?, type = ?, location = ?, salary = ?, description = ?,
			requirements = ?, responsibilities = ?, is_active = ?, updated_at = ?
		WHERE id = ?
		RETURNING *`
	exe := ext(repo.db, exec)
	var r openingRow
	err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q),
		op.Title, op.Department, op.Type, op.Location, null.NewString(op.Salary, op.Salary != ""), op.Description,
		pq.Array(op.Requirements), pq.Array(op.Responsibilities), op.IsActive, op.UpdatedAt, op.ID)
	if err != nil {
		return career.Opening{}, trapNoRowsErr(err, career.ErrOpeningNotFound, "updating job opening")
	}
	return r.unpack(), nil
}

func (repo openingRepository) DeleteOpeningsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM job_opening WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting job openings")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting job openings")
	}
	return rowsAffected(res, "deleting job openings")
}

type applicationRow struct {
	ID          string      `db:"id"`
	OpeningID   string      `db:"opening_id"`
	Name        string      `db:"name"`
	Email       string      `db:"email"`
	Phone       string      `db:"phone"`
	CoverLetter null.String `db:"cover_letter"`
	ResumeKey   null.String `db:"resume_key"`
	ResumeURL   null.String `db:"resume_url"`
	Status      string      `db:"status"`
	CreatedAt   null.Time   `db:"created_at"`
	UpdatedAt   null.Time   `db:"updated_at"`
}

func (r applicationRow) unpack() career.Application {
	return career.Application{
		ID:          r.ID,
		OpeningID:   r.OpeningID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		CoverLetter: r.CoverLetter.String,
		ResumeKey:   r.ResumeKey.String,
		ResumeURL:   r.ResumeURL.String,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
}

type applicationRepository struct {
	db *sqlx.DB
}

var _ career.ApplicationRepository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *sqlx.DB) *applicationRepository {
	return &applicationRepository{db: db}
}

func (repo applicationRepository) CreateApplication(ctx context.Context, app career.Application, exec ...core.DBExecutor) (career.Application, error) {
	app.ID = uuid.New().String()

	q := `
		INSERT INTO job_application (
			id, opening_id, name, email, phone, cover_letter, resume_key, resume_url,
			status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		app.ID, app.OpeningID, app.Name, app.Email, app.Phone,
		null.NewString(app.CoverLetter, app.CoverLetter != ""),
		null.NewString(app.ResumeKey, app.ResumeKey != ""),
		null.NewString(app.ResumeURL, app.ResumeURL != ""),
		app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return career.Application{}, errors.Wrap(err, "inserting job application")
	}
	return app, nil
}

func (repo applicationRepository) QueryApplications(ctx context.Context, openingID string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]career.Application, error) {
	q := `SELECT * FROM job_application`
	var args []interface{}
	if openingID != "" {
		q += ` WHERE opening_id = ?`
		args = append(args, openingID)
	}
	q += orderBy(ordering)

	exe := ext(repo.db, exec)
	var rows []applicationRow
	if err := sqlx.SelectContext(ctx, exe, &rows, exe.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying job applications")
	}

	apps := make([]career.Application, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, r.unpack())
	}
	return apps, nil
}

func (repo applicationRepository) GetApplication(ctx context.Context, id string, exec ...core.DBExecutor) (career.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return career.Application{}, career.ErrApplicationNotFound
	}

	exe := ext(repo.db, exec)
	var r applicationRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(`SELECT * FROM job_application WHERE id = ?`), id); err != nil {
		return career.Application{}, trapNoRowsErr(err, career.ErrApplicationNotFound, "finding job application")
	}
	return r.unpack(), nil
}

func (repo applicationRepository) UpdateApplication(ctx context.Context, app career.Application, exec ...core.DBExecutor) (career.Application, error) {
	q := `
		UPDATE job_application SET
			name = ?, email = ?, phone = ?, cover_letter = ?, resume_key = ?, resume_url = ?,
			status = ?, updated_at = ?
		WHERE id = ?
		RETURNING *`
	exe := ext(repo.db, exec)
	var r applicationRow
	err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q),
		app.Name, app.Email, app.Phone,
		null.NewString(app.CoverLetter, app.CoverLetter != ""),
		null.NewString(app.ResumeKey, app.ResumeKey != ""),
		null.NewString(app.ResumeURL, app.ResumeURL != ""),
		app.Status, app.UpdatedAt, app.ID)
	if err != nil {
		return career.Application{}, trapNoRowsErr(err, career.ErrApplicationNotFound, "updating job application")
	}
	return r.unpack(), nil
}

func (repo applicationRepository) DeleteApplicationsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM job_application WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting job applications")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting job applications")
	}
	return rowsAffected(res, "deleting job applications")
}
