package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/news"
)

type updateRepository struct {
	db *updateTable
}

var _ news.UpdateRepository = (*updateRepository)(nil) // interface compliance check

func NewUpdateRepository(db *DB) *updateRepository {
	return &updateRepository{db: db.update}
}

func (repo *updateRepository) CreateUpdate(ctx context.Context, u news.Update, exec ...core.DBExecutor) (news.Update, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	u.ID = uuid.New().String()
	repo.db.table[u.ID] = &u
	return u, nil
}

func (repo *updateRepository) QueryUpdates(ctx context.Context, publishedOnly, featuredOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]news.Update, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	updates := make([]news.Update, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		if publishedOnly && !u.IsPublished {
			continue
		}
		if featuredOnly && !u.IsFeatured {
			continue
		}
		updates = append(updates, *u)
	}
	if createdAtDesc(ordering) {
		sort.Slice(updates, func(i, j int) bool { return updates[i].CreatedAt.After(updates[j].CreatedAt) })
	}
	return updates, nil
}

func (repo *updateRepository) GetUpdate(ctx context.Context, id string, exec ...core.DBExecutor) (news.Update, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if u, ok := repo.db.table[id]; ok {
		return *u, nil
	}
	return news.Update{}, news.ErrUpdateNotFound
}

func (repo *updateRepository) UpdateUpdate(ctx context.Context, u news.Update, exec ...core.DBExecutor) (news.Update, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[u.ID]; !ok {
		return news.Update{}, news.ErrUpdateNotFound
	}
	repo.db.table[u.ID] = &u
	return u, nil
}

func (repo *updateRepository) DeleteUpdatesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}

type announcementRepository struct {
	db *announcementTable
}

var _ news.AnnouncementRepository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) *announcementRepository {
	return &announcementRepository{db: db.announcement}
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, a news.Announcement, exec ...core.DBExecutor) (news.Announcement, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a.ID = uuid.New().String()
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *announcementRepository) QueryAnnouncements(ctx context.Context, activeOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]news.Announcement, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	anns := make([]news.Announcement, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		if activeOnly && !a.IsActive {
			continue
		}
		anns = append(anns, *a)
	}
	if createdAtDesc(ordering) {
		sort.Slice(anns, func(i, j int) bool { return anns[i].CreatedAt.After(anns[j].CreatedAt) })
	}
	return anns, nil
}

func (repo *announcementRepository) GetAnnouncement(ctx context.Context, id string, exec ...core.DBExecutor) (news.Announcement, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return news.Announcement{}, news.ErrAnnouncementNotFound
}

func (repo *announcementRepository) UpdateAnnouncement(ctx context.Context, a news.Announcement, exec ...core.DBExecutor) (news.Announcement, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[a.ID]; !ok {
		return news.Announcement{}, news.ErrAnnouncementNotFound
	}
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *announcementRepository) DeleteAnnouncementsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}
