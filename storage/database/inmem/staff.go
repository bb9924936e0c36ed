package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/staff"
)

type staffRepository struct {
	db *staffTable
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db *DB) *staffRepository {
	return &staffRepository{db: db.staff}
}

func (repo *staffRepository) CreateMember(ctx context.Context, m staff.Member, exec ...core.DBExecutor) (staff.Member, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	m.ID = uuid.New().String()
	repo.db.table[m.ID] = &m
	return m, nil
}

func (repo *staffRepository) QueryMembers(ctx context.Context, activeOnly, keyOnly bool, exec ...core.DBExecutor) ([]staff.Member, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	members := make([]staff.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		if activeOnly && !m.IsActive {
			continue
		}
		if keyOnly && !m.IsKeyStaff {
			continue
		}
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].DisplayOrder != members[j].DisplayOrder {
			return members[i].DisplayOrder < members[j].DisplayOrder
		}
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})
	return members, nil
}

func (repo *staffRepository) GetMember(ctx context.Context, id string, exec ...core.DBExecutor) (staff.Member, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return staff.Member{}, staff.ErrNotFound
}

func (repo *staffRepository) GetProprietress(ctx context.Context, exec ...core.DBExecutor) (staff.Member, error) {
	members, err := repo.QueryMembers(ctx, true, false)
	if err != nil {
		return staff.Member{}, err
	}
	for _, m := range members {
		if m.IsProprietress {
			return m, nil
		}
	}
	return staff.Member{}, staff.ErrProprietressNotFound
}

func (repo *staffRepository) MaxDisplayOrder(ctx context.Context, exec ...core.DBExecutor) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var max int
	for _, m := range repo.db.table {
		if m.DisplayOrder > max {
			max = m.DisplayOrder
		}
	}
	return max, nil
}

func (repo *staffRepository) UpdateMember(ctx context.Context, m staff.Member, exec ...core.DBExecutor) (staff.Member, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[m.ID]; !ok {
		return staff.Member{}, staff.ErrNotFound
	}
	repo.db.table[m.ID] = &m
	return m, nil
}

func (repo *staffRepository) SwapDisplayOrder(ctx context.Context, a, b staff.Member) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ma, ok := repo.db.table[a.ID]
	if !ok {
		return staff.ErrNotFound
	}
	mb, ok := repo.db.table[b.ID]
	if !ok {
		return staff.ErrNotFound
	}
	ma.DisplayOrder, mb.DisplayOrder = b.DisplayOrder, a.DisplayOrder
	return nil
}

func (repo *staffRepository) DeleteMembersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
