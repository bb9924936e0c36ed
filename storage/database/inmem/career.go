package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/career"
)

type openingRepository struct {
	db *openingTable
}

var _ career.OpeningRepository = (*openingRepository)(nil) // interface compliance check

func NewOpeningRepository(db *DB) *openingRepository {
	return &openingRepository{db: db.opening}
}

func (repo *openingRepository) CreateOpening(ctx context.Context, op career.Opening, exec ...core.DBExecutor) (career.Opening, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	op.ID = uuid.New().String()
	repo.db.table[op.ID] = &op
	return op, nil
}

func (repo *openingRepository) QueryOpenings(ctx context.Context, activeOnly bool, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]career.Opening, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ops := make([]career.Opening, 0, len(repo.db.table))
	for _, op := range repo.db.table {
		if activeOnly && !op.IsActive {
			continue
		}
		ops = append(ops, *op)
	}
	if createdAtDesc(ordering) {
		sort.Slice(ops, func(i, j int) bool { return ops[i].CreatedAt.After(ops[j].CreatedAt) })
	}
	return ops, nil
}

func (repo *openingRepository) GetOpening(ctx context.Context, id string, exec ...core.DBExecutor) (career.Opening, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if op, ok := repo.db.table[id]; ok {
		return *op, nil
	}
	return career.Opening{}, career.ErrOpeningNotFound
}

func (repo *openingRepository) UpdateOpening(ctx context.Context, op career.Opening, exec ...core.DBExecutor) (career.Opening, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[op.ID]; !ok {
		return career.Opening{}, career.ErrOpeningNotFound
	}
	repo.db.table[op.ID] = &op
	return op, nil
}

func (repo *openingRepository) DeleteOpeningsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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

type applicationRepository struct {
	db *applicationTable
}

var _ career.ApplicationRepository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *DB) *applicationRepository {
	return &applicationRepository{db: db.application}
}

func (repo *applicationRepository) CreateApplication(ctx context.Context, app career.Application, exec ...core.DBExecutor) (career.Application, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	app.ID = uuid.New().String()
	repo.db.table[app.ID] = &app
	return app, nil
}

func (repo *applicationRepository) QueryApplications(ctx context.Context, openingID string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]career.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	apps := make([]career.Application, 0, len(repo.db.table))
	for _, app := range repo.db.table {
		if openingID != "" && app.OpeningID != openingID {
			continue
		}
		apps = append(apps, *app)
	}
	if createdAtDesc(ordering) {
		sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	}
	return apps, nil
}

func (repo *applicationRepository) GetApplication(ctx context.Context, id string, exec ...core.DBExecutor) (career.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if app, ok := repo.db.table[id]; ok {
		return *app, nil
	}
	return career.Application{}, career.ErrApplicationNotFound
}

func (repo *applicationRepository) UpdateApplication(ctx context.Context, app career.Application, exec ...core.DBExecutor) (career.Application, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[app.ID]; !ok {
		return career.Application{}, career.ErrApplicationNotFound
	}
	repo.db.table[app.ID] = &app
	return app, nil
}

func (repo *applicationRepository) DeleteApplicationsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
