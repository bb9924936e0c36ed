package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/contact"
)

type contactMessageRow struct {
	ID        string      `db:"id"`
	Name      string      `db:"name"`
	Email     string      `db:"email"`
	Phone     null.String `db:"phone"`
	Subject   string      `db:"subject"`
	Body      string      `db:"body"`
	Status    string      `db:"status"`
	CreatedAt null.Time   `db:"created_at"`
	UpdatedAt null.Time   `db:"updated_at"`
}

func (r contactMessageRow) unpack() contact.Message {
	return contact.Message{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone.String,
		Subject:   r.Subject,
		Body:      r.Body,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

type contactRepository struct {
	db *sqlx.DB
}

var _ contact.Repository = (*contactRepository)(nil) // interface compliance check

func NewContactRepository(db *sqlx.DB) *contactRepository {
	return &contactRepository{db: db}
}

func (repo contactRepository) CreateMessage(ctx context.Context, msg contact.Message, exec ...core.DBExecutor) (contact.Message, error) {
	msg.ID = uuid.New().String()

	q := `
		INSERT INTO contact_message (id, name, email, phone, subject, body, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		msg.ID, msg.Name, msg.Email, null.NewString(msg.Phone, msg.Phone != ""),
		msg.Subject, msg.Body, msg.Status, msg.CreatedAt, msg.UpdatedAt)
	if err != nil {
		return contact.Message{}, errors.Wrap(err, "inserting contact message")
	}
	return msg, nil
}

func (repo contactRepository) QueryMessages(ctx context.Context, status string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]contact.Message, error) {
	q := `SELECT * FROM contact_message`
	var args []interface{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += orderBy(ordering)

	exe := ext(repo.db, exec)
	var rows []contactMessageRow
	if err := sqlx.SelectContext(ctx, exe, &rows, exe.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying contact messages")
	}

	msgs := make([]contact.Message, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, r.unpack())
	}
	return msgs, nil
}

func (repo contactRepository) GetMessage(ctx context.Context, id string, exec ...core.DBExecutor) (contact.Message, error) {
	if _, err := uuid.Parse(id); err != nil {
		return contact.Message{}, contact.ErrNotFound
	}

	exe := ext(repo.db, exec)
	var r contactMessageRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(`SELECT * FROM contact_message WHERE id = ?`), id); err != nil {
		return contact.Message{}, trapNoRowsErr(err, contact.ErrNotFound, "finding contact message")
	}
	return r.unpack(), nil
}

func (repo contactRepository) UpdateMessage(ctx context.Context, msg contact.Message, exec ...core.DBExecutor) (contact.Message, error) {
	q := `
		UPDATE contact_message SET name = ?, email = ?, phone = ?, subject = ?, body = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING *`
	exe := ext(repo.db, exec)
	var r contactMessageRow
	err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q),
		msg.Name, msg.Email, null.NewString(msg.Phone, msg.Phone != ""),
		msg.Subject, msg.Body, msg.Status, msg.UpdatedAt, msg.ID)
	if err != nil {
		return contact.Message{}, trapNoRowsErr(err, contact.ErrNotFound, "updating contact message")
	}
	return r.unpack(), nil
}

func (repo contactRepository) DeleteMessagesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM contact_message WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting contact messages")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting contact messages")
	}
	return rowsAffected(res, "deleting contact messages")
}
