package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/starville/academy/core"
)

var (
	ErrNotFound             = errors.New("staff member not found")
	ErrProprietressNotFound = errors.New("no proprietress on record")
)

type (
	Repository interface {
		CreateMember(ctx context.Context, m Member, exec ...core.DBExecutor) (Member, error)
		// QueryMembers returns members ordered by DisplayOrder (then created_at).
		QueryMembers(ctx context.Context, activeOnly, keyOnly bool, exec ...core.DBExecutor) ([]Member, error)
		GetMember(ctx context.Context, id string, exec ...core.DBExecutor) (Member, error)
		GetProprietress(ctx context.Context, exec ...core.DBExecutor) (Member, error)
		// MaxDisplayOrder returns the current highest DisplayOrder, 0 when empty.
		MaxDisplayOrder(ctx context.Context, exec ...core.DBExecutor) (int, error)
		UpdateMember(ctx context.Context, m Member, exec ...core.DBExecutor) (Member, error)
		// SwapDisplayOrder atomically exchanges the two members' DisplayOrder values.
		SwapDisplayOrder(ctx context.Context, a, b Member) error
		DeleteMembersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		db        core.DB
		repo      Repository
		fileStore core.FileStore
		logger    core.Logger
	}
)

func NewService(db core.DB, repo Repository, fileStore core.FileStore, logger core.Logger) *Service {
	return &Service{db: db, repo: repo, fileStore: fileStore, logger: logger}
}

// Create appends the new member at the end of the display order.
// A photo, if provided, is uploaded first; when the insert then fails, the
// upload is deleted again so no orphan object is left behind.
func (svc *Service) Create(ctx context.Context, nm NewMember, photo *core.Upload) (Member, error) {
	maxOrd, err := svc.repo.MaxDisplayOrder(ctx)
	if err != nil {
		return Member{}, err
	}

	now := time.Now().UTC()
	m := Member{
		Name:           nm.Name,
		Title:          nm.Title,
		Education:      nm.Education,
		Experience:     nm.Experience,
		Specialization: nm.Specialization,
		Bio:            nm.Bio,
		Achievements:   nm.Achievements,
		Email:          nm.Email,
		Phone:          nm.Phone,
		IsKeyStaff:     nm.IsKeyStaff,
		IsProprietress: nm.IsProprietress,
		IsActive:       true,
		DisplayOrder:   maxOrd + 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if photo != nil {
		if err := photo.ValidateImage("photo"); err != nil {
			return Member{}, err
		}
		stored, err := svc.fileStore.Save(ctx, photo.Key("staff"), photo.ContentType, photo.Body)
		if err != nil {
			return Member{}, pkgerrors.Wrap(err, "uploading staff photo")
		}
		m.PhotoKey = stored.Key
		m.PhotoURL = stored.URL
	}

	photoKey := m.PhotoKey
	m, err = svc.repo.CreateMember(ctx, m)
	if err != nil {
		if photoKey != "" {
			if delErr := svc.fileStore.Delete(ctx, photoKey); delErr != nil {
				svc.logger.Error(fmt.Sprintf("deleting orphaned staff photo %s: %v", photoKey, delErr), delErr)
			}
		}
		return Member{}, pkgerrors.Wrap(err, "inserting staff member")
	}
	return m, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Member, error) {
	return svc.repo.QueryMembers(ctx, false, false)
}

func (svc *Service) QueryActive(ctx context.Context) ([]Member, error) {
	return svc.repo.QueryMembers(ctx, true, false)
}

func (svc *Service) QueryKeyStaff(ctx context.Context) ([]Member, error) {
	return svc.repo.QueryMembers(ctx, true, true)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Member, error) {
	return svc.repo.GetMember(ctx, id)
}

func (svc *Service) GetProprietress(ctx context.Context) (Member, error) {
	return svc.repo.GetProprietress(ctx)
}

// Update applies a partial update; fields left empty keep their current
// values.
func (svc *Service) Update(ctx context.Context, id string, um UpdateMember, photo *core.Upload) (Member, error) {
	orig, err := svc.repo.GetMember(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if err := um.Validate(orig); err != nil {
		return Member{}, err
	}

	m := orig
	m.Name = um.Name
	m.Title = um.Title
	m.Education = um.Education
	m.Experience = um.Experience
	m.Specialization = um.Specialization
	m.Bio = um.Bio
	m.Achievements = um.Achievements
	m.Email = um.Email
	m.Phone = um.Phone
	if um.IsKeyStaff != nil {
		m.IsKeyStaff = *um.IsKeyStaff
	}
	if um.IsProprietress != nil {
		m.IsProprietress = *um.IsProprietress
	}
	if um.IsActive != nil {
		m.IsActive = *um.IsActive
	}
	m.UpdatedAt = time.Now().UTC()

	if photo != nil {
		if err := photo.ValidateImage("photo"); err != nil {
			return Member{}, err
		}
		stored, err := svc.fileStore.Save(ctx, photo.Key("staff"), photo.ContentType, photo.Body)
		if err != nil {
			return Member{}, pkgerrors.Wrap(err, "uploading staff photo")
		}
		if orig.PhotoKey != "" {
			if delErr := svc.fileStore.Delete(ctx, orig.PhotoKey); delErr != nil {
				svc.logger.Error(fmt.Sprintf("deleting replaced staff photo %s: %v", orig.PhotoKey, delErr), delErr)
			}
		}
		m.PhotoKey = stored.Key
		m.PhotoURL = stored.URL
	}

	return svc.repo.UpdateMember(ctx, m)
}

// Move swaps the member's DisplayOrder with its neighbor in the given
// direction. Moving the first member up (or the last one down) is a no-op.
// All other members keep their order untouched.
func (svc *Service) Move(ctx context.Context, id string, mm MoveMember) error {
	members, err := svc.repo.QueryMembers(ctx, false, false)
	if err != nil {
		return err
	}

	idx := -1
	for i, m := range members {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	var other int
	switch mm.Direction {
	case MoveUp:
		other = idx - 1
	case MoveDown:
		other = idx + 1
	}
	if other < 0 || other >= len(members) {
		return nil
	}
	return svc.repo.SwapDisplayOrder(ctx, members[idx], members[other])
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	cnt, err := svc.repo.DeleteMembersByID(ctx, ids)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}
