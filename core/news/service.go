package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/starville/academy/core"
)

var (
	ErrUpdateNotFound       = errors.New("news update not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

type (
	UpdateRepository interface {
		CreateUpdate(ctx context.Context, u Update, exec ...core.DBExecutor) (Update, error)
		// QueryUpdates applies the requested flags; both false means all rows.
		QueryUpdates(ctx context.Context, publishedOnly, featuredOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Update, error)
		GetUpdate(ctx context.Context, id string, exec ...core.DBExecutor) (Update, error)
		UpdateUpdate(ctx context.Context, u Update, exec ...core.DBExecutor) (Update, error)
		DeleteUpdatesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	AnnouncementRepository interface {
		CreateAnnouncement(ctx context.Context, a Announcement, exec ...core.DBExecutor) (Announcement, error)
		QueryAnnouncements(ctx context.Context, activeOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Announcement, error)
		GetAnnouncement(ctx context.Context, id string, exec ...core.DBExecutor) (Announcement, error)
		UpdateAnnouncement(ctx context.Context, a Announcement, exec ...core.DBExecutor) (Announcement, error)
		DeleteAnnouncementsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		db            core.DB
		updates       UpdateRepository
		announcements AnnouncementRepository
		fileStore     core.FileStore
		logger        core.Logger
	}
)

func NewService(db core.DB, updates UpdateRepository, announcements AnnouncementRepository, fileStore core.FileStore, logger core.Logger) *Service {
	return &Service{db: db, updates: updates, announcements: announcements, fileStore: fileStore, logger: logger}
}

// Updates

// CreateUpdate publishes a news update. An image, if provided, is uploaded
// first; when the insert then fails, the upload is deleted again.
func (svc *Service) CreateUpdate(ctx context.Context, nu NewUpdate, image *core.Upload) (Update, error) {
	now := time.Now().UTC()
	date := nu.Date
	if date.IsZero() {
		date = now
	}
	u := Update{
		Title:       nu.Title,
		Date:        date,
		Author:      nu.Author,
		Category:    nu.Category,
		Excerpt:     nu.Excerpt,
		Content:     nu.Content,
		IsFeatured:  nu.IsFeatured,
		IsPublished: nu.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if image != nil {
		if err := image.ValidateImage("image"); err != nil {
			return Update{}, err
		}
		stored, err := svc.fileStore.Save(ctx, image.Key("news"), image.ContentType, image.Body)
		if err != nil {
			return Update{}, pkgerrors.Wrap(err, "uploading news image")
		}
		u.ImageKey = stored.Key
		u.ImageURL = stored.URL
	}

	imageKey := u.ImageKey
	u, err := svc.updates.CreateUpdate(ctx, u)
	if err != nil {
		if imageKey != "" {
			if delErr := svc.fileStore.Delete(ctx, imageKey); delErr != nil {
				svc.logger.Error(fmt.Sprintf("deleting orphaned news image %s: %v", imageKey, delErr), delErr)
			}
		}
		return Update{}, pkgerrors.Wrap(err, "inserting news update")
	}
	return u, nil
}

func (svc *Service) QueryAllUpdates(ctx context.Context) ([]Update, error) {
	return svc.updates.QueryUpdates(ctx, false, false, defaultOrdering())
}

func (svc *Service) QueryPublishedUpdates(ctx context.Context) ([]Update, error) {
	return svc.updates.QueryUpdates(ctx, true, false, defaultOrdering())
}

func (svc *Service) QueryFeaturedUpdates(ctx context.Context) ([]Update, error) {
	return svc.updates.QueryUpdates(ctx, true, true, defaultOrdering())
}

func (svc *Service) GetUpdateByID(ctx context.Context, id string) (Update, error) {
	return svc.updates.GetUpdate(ctx, id)
}

// UpdateUpdate applies a partial update; fields left empty keep their
// current values.
func (svc *Service) UpdateUpdate(ctx context.Context, id string, uu UpdateUpdate) (Update, error) {
	orig, err := svc.updates.GetUpdate(ctx, id)
	if err != nil {
		return Update{}, err
	}
	if err := uu.Validate(orig); err != nil {
		return Update{}, err
	}

	u := orig
	u.Title = uu.Title
	if uu.Date != nil {
		u.Date = *uu.Date
	}
	u.Author = uu.Author
	u.Category = uu.Category
	u.Excerpt = uu.Excerpt
	u.Content = uu.Content
	if uu.IsFeatured != nil {
		u.IsFeatured = *uu.IsFeatured
	}
	if uu.IsPublished != nil {
		u.IsPublished = *uu.IsPublished
	}
	u.UpdatedAt = time.Now().UTC()
	return svc.updates.UpdateUpdate(ctx, u)
}

func (svc *Service) DeleteUpdates(ctx context.Context, ids ...string) error {
	cnt, err := svc.updates.DeleteUpdatesByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrUpdateNotFound
	}
	return nil
}

// Announcements

func (svc *Service) CreateAnnouncement(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	now := time.Now().UTC()
	a := Announcement{
		Title:     na.Title,
		Message:   na.Message,
		Type:      na.Type,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.announcements.CreateAnnouncement(ctx, a)
}

func (svc *Service) QueryAllAnnouncements(ctx context.Context) ([]Announcement, error) {
	return svc.announcements.QueryAnnouncements(ctx, false, defaultOrdering())
}

func (svc *Service) QueryActiveAnnouncements(ctx context.Context) ([]Announcement, error) {
	return svc.announcements.QueryAnnouncements(ctx, true, defaultOrdering())
}

// UpdateAnnouncement applies a partial update; fields left empty keep
// their current values.
func (svc *Service) UpdateAnnouncement(ctx context.Context, id string, ua UpdateAnnouncement) (Announcement, error) {
	orig, err := svc.announcements.GetAnnouncement(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	if err := ua.Validate(orig); err != nil {
		return Announcement{}, err
	}

	a := orig
	a.Title = ua.Title
	a.Message = ua.Message
	a.Type = ua.Type
	if ua.IsActive != nil {
		a.IsActive = *ua.IsActive
	}
	a.UpdatedAt = time.Now().UTC()
	return svc.announcements.UpdateAnnouncement(ctx, a)
}

// ToggleAnnouncementActive flips the announcement's active flag.
func (svc *Service) ToggleAnnouncementActive(ctx context.Context, id string) (Announcement, error) {
	a, err := svc.announcements.GetAnnouncement(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	a.IsActive = !a.IsActive
	a.UpdatedAt = time.Now().UTC()
	return svc.announcements.UpdateAnnouncement(ctx, a)
}

func (svc *Service) DeleteAnnouncements(ctx context.Context, ids ...string) error {
	cnt, err := svc.announcements.DeleteAnnouncementsByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func defaultOrdering() []core.DBOrdering {
	return []core.DBOrdering{{Field: "created_at", Ascending: false}}
}
