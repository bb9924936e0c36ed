package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/contact"
)

type contactRepository struct {
	db *contactTable
}

var _ contact.Repository = (*contactRepository)(nil) // interface compliance check

func NewContactRepository(db *DB) *contactRepository {
	return &contactRepository{db: db.contact}
}

func (repo *contactRepository) CreateMessage(ctx context.Context, msg contact.Message, exec ...core.DBExecutor) (contact.Message, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	msg.ID = uuid.New().String()
	repo.db.table[msg.ID] = &msg
	return msg, nil
}

func (repo *contactRepository) QueryMessages(ctx context.Context, status string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]contact.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	msgs := make([]contact.Message, 0, len(repo.db.table))
	for _, msg := range repo.db.table {
		if status != "" && msg.Status != status {
			continue
		}
		msgs = append(msgs, *msg)
	}
	if createdAtDesc(ordering) {
		sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.After(msgs[j].CreatedAt) })
	}
	return msgs, nil
}

func (repo *contactRepository) GetMessage(ctx context.Context, id string, exec ...core.DBExecutor) (contact.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if msg, ok := repo.db.table[id]; ok {
		return *msg, nil
	}
	return contact.Message{}, contact.ErrNotFound
}

func (repo *contactRepository) UpdateMessage(ctx context.Context, msg contact.Message, exec ...core.DBExecutor) (contact.Message, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[msg.ID]; !ok {
		return contact.Message{}, contact.ErrNotFound
	}
	repo.db.table[msg.ID] = &msg
	return msg, nil
}

func (repo *contactRepository) DeleteMessagesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
