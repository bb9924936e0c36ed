package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/news"
)

type updateRow struct {
	ID          string      `db:"id"`
	Title       string      `db:"title"`
	Date        null.Time   `db:"date"`
	Author      string      `db:"author"`
	Category    string      `db:"category"`
	Excerpt     string      `db:"excerpt"`
	Content     string      `db:"content"`
	ImageKey    null.String `db:"image_key"`
	ImageURL    null.String `db:"image_url"`
	IsFeatured  bool        `db:"is_featured"`
	IsPublished bool        `db:"is_published"`
	CreatedAt   null.Time   `db:"created_at"`
	UpdatedAt   null.Time   `db:"updated_at"`
}

func (r updateRow) unpack() news.Update {
	return news.Update{
		ID:          r.ID,
		Title:       r.Title,
		Date:        r.Date.Time,
		Author:      r.Author,
		Category:    r.Category,
		Excerpt:     r.Excerpt,
		Content:     r.Content,
		ImageKey:    r.ImageKey.String,
		ImageURL:    r.ImageURL.String,
		IsFeatured:  r.IsFeatured,
		IsPublished: r.IsPublished,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
}

type updateRepository struct {
	db *sqlx.DB
}

var _ news.UpdateRepository = (*updateRepository)(nil) // interface compliance check

func NewUpdateRepository(db *sqlx.DB) *updateRepository {
	return &updateRepository{db: db}
}

func (repo updateRepository) CreateUpdate(ctx context.Context, u news.Update, exec ...core.DBExecutor) (news.Update, error) {
	u.ID = uuid.New().String()

	q := `
		INSERT INTO news_update (
			id, title, date, author, category, excerpt, content, image_key, image_url,
			is_featured, is_published, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		u.ID, u.Title, u.Date, u.Author, u.Category, u.Excerpt, u.Content,
		null.NewString(u.ImageKey, u.ImageKey != ""),
		null.NewString(u.ImageURL, u.ImageURL != ""),
		u.IsFeatured, u.IsPublished, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return news.Update{}, errors.Wrap(err, "inserting news update")
	}
	return u, nil
}

func (repo updateRepository) QueryUpdates(ctx context.Context, publishedOnly, featuredOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]news.Update, error) {
	q := `SELECT * FROM news_update WHERE 1=1`
	if publishedOnly {
		q += ` AND is_published`
	}
	if featuredOnly {
		q += ` AND is_featured`
	}
	q += orderBy(ordering)

	exe := ext(repo.db, exec)
	var rows []updateRow
	if err := sqlx.SelectContext(ctx, exe, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying news updates")
	}

	updates := make([]news.Update, 0, len(rows))
	for _, r := range rows {
		updates = append(updates, r.unpack())
	}
	return updates, nil
}

func (repo updateRepository) GetUpdate(ctx context.Context, id string, exec ...core.DBExecutor) (news.Update, error) {
	if _, err := uuid.Parse(id); err != nil {
		return news.Update{}, news.ErrUpdateNotFound
	}

	exe := ext(repo.db, exec)
	var r updateRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(`SELECT * FROM news_update WHERE id = ?`), id); err != nil {
		return news.Update{}, trapNoRowsErr(err, news.ErrUpdateNotFound, "finding news update")
	}
	return r.unpack(), nil
}

func (repo updateRepository) UpdateUpdate(ctx context.Context, u news.Update, exec ...core.DBExecutor) (news.Update, error) {
	q := `
		UPDATE news_update SET
			title = ?, date = ?, author = ?, category = ?, excerpt = ?, content = ?,
			image_key = ?, image_url = ?, is_featured = ?, is_published = ?, updated_at = ?
		WHERE id = ?
		RETURNING *`
	exe := ext(repo.db, exec)
	var r updateRow
	err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q),
		u.Title, u.Date, u.Author, u.Category, u.Excerpt, u.Content,
		null.NewString(u.ImageKey, u.ImageKey != ""),
		null.NewString(u.ImageURL, u.ImageURL != ""),
		u.IsFeatured, u.IsPublished, u.UpdatedAt, u.ID)
	if err != nil {
		return news.Update{}, trapNoRowsErr(err, news.ErrUpdateNotFound, "updating news update")
	}
	return r.unpack(), nil
}

func (repo updateRepository) DeleteUpdatesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM news_update WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting news updates")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting news updates")
	}
	return rowsAffected(res, "deleting news updates")
}

type announcementRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	IsActive  bool      `db:"is_active"`
	CreatedAt null.Time `db:"created_at"`
	UpdatedAt null.Time `db:"updated_at"`
}

func (r announcementRow) unpack() news.Announcement {
	return news.Announcement{
		ID:        r.ID,
		Title:     r.Title,
		Message:   r.Message,
		Type:      r.Type,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

type announcementRepository struct {
	db *sqlx.DB
}

var _ news.AnnouncementRepository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *sqlx.DB) *announcementRepository {
	return &announcementRepository{db: db}
}

func (repo announcementRepository) CreateAnnouncement(ctx context.Context, a news.Announcement, exec ...core.DBExecutor) (news.Announcement, error) {
	a.ID = uuid.New().String()

	q := `
		INSERT INTO announcement (id, title, message, type, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	exe := ext(repo.db, exec)
	_, err := exe.ExecContext(ctx, exe.Rebind(q),
		a.ID, a.Title, a.Message, a.Type, a.IsActive, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return news.Announcement{}, errors.Wrap(err, "inserting announcement")
	}
	return a, nil
}

func (repo announcementRepository) QueryAnnouncements(ctx context.Context, activeOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]news.Announcement, error) {
	q := `SELECT * FROM announcement`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += orderBy(ordering)

	exe := ext(repo.db, exec)
	var rows []announcementRow
	if err := sqlx.SelectContext(ctx, exe, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}

	anns := make([]news.Announcement, 0, len(rows))
	for _, r := range rows {
		anns = append(anns, r.unpack())
	}
	return anns, nil
}

func (repo announcementRepository) GetAnnouncement(ctx context.Context, id string, exec ...core.DBExecutor) (news.Announcement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return news.Announcement{}, news.ErrAnnouncementNotFound
	}

	exe := ext(repo.db, exec)
	var r announcementRow
	if err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(`SELECT * FROM announcement WHERE id = ?`), id); err != nil {
		return news.Announcement{}, trapNoRowsErr(err, news.ErrAnnouncementNotFound, "finding announcement")
	}
	return r.unpack(), nil
}

func (repo announcementRepository) UpdateAnnouncement(ctx context.Context, a news.Announcement, exec ...core.DBExecutor) (news.Announcement, error) {
	q := `
		UPDATE announcement SET title = ?, message = ?, type = ?, is_active = ?, updated_at = ?
		WHERE id = ?
		RETURNING *`
	exe := ext(repo.db, exec)
	var r announcementRow
	err := sqlx.GetContext(ctx, exe, &r, exe.Rebind(q),
		a.Title, a.Message, a.Type, a.IsActive, a.UpdatedAt, a.ID)
	if err != nil {
		return news.Announcement{}, trapNoRowsErr(err, news.ErrAnnouncementNotFound, "updating announcement")
	}
	return r.unpack(), nil
}

func (repo announcementRepository) DeleteAnnouncementsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	q, args, err := sqlx.In(`DELETE FROM announcement WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "deleting announcements")
	}
	exe := ext(repo.db, exec)
	res, err := exe.ExecContext(ctx, exe.Rebind(q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting announcements")
	}
	return rowsAffected(res, "deleting announcements")
}
