package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/user"
)

type userRow struct {
	ID           string         `db:"id"`
	Name         null.String    `db:"name"`
	Username     null.String    `db:"username"`
	Email        null.String    `db:"email"`
	IsActive     null.Bool      `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash null.Bytes     `db:"password_hash"`
	CreatedAt    null.Time      `db:"created_at"`
	UpdatedAt    null.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func (r userRow) unpack() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name.String,
		Username:     r.Username.String,
		Email:        r.Email.String,
		IsActive:     r.IsActive.Ptr(),
		Roles:        r.Roles,
		PasswordHash: r.PasswordHash.Bytes,
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
		LastLogin:    r.LastLogin.Time,
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	exe := ext(repo.db, exec)

	q := `SELECT EXISTS (SELECT 1 FROM "user" WHERE (username = ? OR email = ?)`
	args := []interface{}{username, email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		q += ` AND id NOT IN (?)`
		var err error
		q, args, err = sqlx.In(q+`)`, username, email, ids)
		if err != nil {
			return errors.Wrap(err, "checking user uniqueness")
		}
	} else {
		q += `)`
	}

	var exists bool
	if err := sqlx.GetContext(ctx, exe, &exists, exe.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	if exists {
		return user.ErrUserExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()

	q := `
		INSERT INTO "user" (id, name, username, email, is_active, roles, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		usr.ID, usr.Name, usr.Username, usr.Email, usr.Active(), pq.Array(usr.Roles), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]user.User, error) {
	q := `SELECT * FROM "user" WHERE 1=1`
	var args []interface{}

	if filter != nil {
		// users with Name, Username or Email matching the search keyword
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			q += ` AND (name ILIKE ? OR username ILIKE ? OR email ILIKE ?)`
			args = append(args, val, val, val)
		}
		// users with any role that starts with any of the provided roles
		if len(filter.Roles) > 0 {
			clauses := make([]string, 0, len(filter.Roles))
			for _, role := range filter.Roles {
				clauses = append(clauses, `EXISTS (SELECT 1 FROM UNNEST(roles) user_role WHERE user_role ILIKE ?)`)
				args = append(args, role+"%")
			}
			q += ` AND (` + strings.Join(clauses, " OR ") + `)`
		}
		if filter.IsActive != nil {
			q += ` AND is_active = ?`
			args = append(args, *filter.IsActive)
		}
		if !filter.CreatedFrom.IsZero() {
			q += ` AND created_at >= ?`
			args = append(args, filter.CreatedFrom.UTC())
		}
		if !filter.CreatedTo.IsZero() {
			q += ` AND created_at <= ?`
			args = append(args, filter.CreatedTo.UTC())
		}
	}
	q += orderBy(ordering)

	exe := ext(repo.db, exec)
	var rows []userRow
	if err := sqlx.SelectContext(ctx, exe, &rows, exe.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.unpack())
	}
	return users, nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	q := `SELECT * FROM "user" WHERE `
	var args []interface{}

	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return user.User{}, user.ErrNotFound
		}
		q += `id = ?`
		args = append(args, filter.ID)
	case filter.Username != "":
		q += `username = ?`
		args = append(args, filter.Username)
	case filter.Email != "":
		q += `email = ?`
		args = append(args, filter.Email)
	case len(filter.UsernameOrEmail) > 0:
		var email string
		uname := filter.UsernameOrEmail[0]
		if len(filter.UsernameOrEmail) == 2 {
			email = filter.UsernameOrEmail[1]
		}
		if email == "" {
			email = uname
		} else if uname == "" {
			uname = email
		}
		q += `(username = ? OR email = ?)`
		args = append(args, uname, email)
	default:
		return user.User{}, user.ErrNotFound
	}

	exe := ext(repo.db, exec)
	var r userRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q), args...); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user")
	}
	return r.unpack(), nil
}

// UpdateUser only saves set fields; zero-valued ones keep their stored values.
func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	set := []string{"updated_at = ?"}
	args := []interface{}{usr.UpdatedAt}

	if usr.Name != "" {
		set = append(set, "name = ?")
		args = append(args, usr.Name)
	}
	if usr.Username != "" {
		set = append(set, "username = ?")
		args = append(args, usr.Username)
	}
	if usr.Email != "" {
		set = append(set, "email = ?")
		args = append(args, usr.Email)
	}
	if usr.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, *usr.IsActive)
	}
	if usr.Roles != nil {
		set = append(set, "roles = ?")
		args = append(args, pq.Array(usr.Roles))
	}
	if usr.PasswordHash != nil {
		set = append(set, "password_hash = ?")
		args = append(args, usr.PasswordHash)
	}
	if !usr.LastLogin.IsZero() {
		set = append(set, "last_login = ?")
		args = append(args, usr.LastLogin.UTC())
	}
	args = append(args, usr.ID)

	q := fmt.Sprintf(`UPDATE "user" SET %s WHERE id = ? RETURNING *`, strings.Join(set, ", "))
	exe := ext(repo.db, exec)
	var r userRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q), args...); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "updating user")
	}
	return r.unpack(), nil
}

func (repo userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr, exec...)
	}
	return repo.UpdateUser(ctx, usr, exec...)
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	return rowsAffected(res, "deleting users")
}
