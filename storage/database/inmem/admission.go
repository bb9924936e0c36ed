package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/admission"
)

type admissionRepository struct {
	db *admissionTable
}

var _ admission.Repository = (*admissionRepository)(nil) // interface compliance check

func NewAdmissionRepository(db *DB) *admissionRepository {
	return &admissionRepository{db: db.admission}
}

func (repo *admissionRepository) query() []admission.Admission {
	adms := make([]admission.Admission, 0, len(repo.db.table))
	for _, adm := range repo.db.table {
		adms = append(adms, *adm)
	}
	return adms
}

func (repo *admissionRepository) CreateAdmission(ctx context.Context, adm admission.Admission, exec ...core.DBExecutor) (admission.Admission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	adm.ID = uuid.New().String()
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

func (repo *admissionRepository) QueryAdmissions(ctx context.Context, filter *admission.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]admission.Admission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	adms := make([]admission.Admission, 0)
	for _, adm := range repo.query() {
		if filter == nil || matchAdmission(adm, filter) {
			adms = append(adms, adm)
		}
	}
	if createdAtDesc(ordering) {
		sort.Slice(adms, func(i, j int) bool { return adms[i].CreatedAt.After(adms[j].CreatedAt) })
	}
	return adms, nil
}

func matchAdmission(adm admission.Admission, filter *admission.QueryFilter) bool {
	if filter.Search != "" {
		s := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(adm.ParentName), s) &&
			!strings.Contains(strings.ToLower(adm.ParentEmail), s) &&
			!strings.Contains(strings.ToLower(adm.ChildName), s) {
			return false
		}
	}
	if filter.Status != "" && adm.Status != filter.Status {
		return false
	}
	if filter.Level != "" && adm.Level != filter.Level {
		return false
	}
	return true
}

func (repo *admissionRepository) GetAdmission(ctx context.Context, id string, exec ...core.DBExecutor) (admission.Admission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if adm, ok := repo.db.table[id]; ok {
		return *adm, nil
	}
	return admission.Admission{}, admission.ErrNotFound
}

func (repo *admissionRepository) UpdateAdmission(ctx context.Context, adm admission.Admission, exec ...core.DBExecutor) (admission.Admission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[adm.ID]; !ok {
		return admission.Admission{}, admission.ErrNotFound
	}
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

func (repo *admissionRepository) DeleteAdmissionsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
