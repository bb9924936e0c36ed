// Package inmemdb provides map-backed repositories for tests and local hacking.
package inmemdb

import (
	"sync"

	"github.com/starville/academy/core"
	"github.com/starville/academy/core/admission"
	"github.com/starville/academy/core/career"
	"github.com/starville/academy/core/contact"
	"github.com/starville/academy/core/news"
	"github.com/starville/academy/core/staff"
	"github.com/starville/academy/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}
	admissionTable struct {
		mutex sync.RWMutex
		table map[string]*admission.Admission
	}
	openingTable struct {
		mutex sync.RWMutex
		table map[string]*career.Opening
	}
	applicationTable struct {
		mutex sync.RWMutex
		table map[string]*career.Application
	}
	staffTable struct {
		mutex sync.RWMutex
		table map[string]*staff.Member
	}
	updateTable struct {
		mutex sync.RWMutex
		table map[string]*news.Update
	}
	announcementTable struct {
		mutex sync.RWMutex
		table map[string]*news.Announcement
	}
	contactTable struct {
		mutex sync.RWMutex
		table map[string]*contact.Message
	}

	DB struct {
		user         *userTable
		admission    *admissionTable
		opening      *openingTable
		application  *applicationTable
		staff        *staffTable
		update       *updateTable
		announcement *announcementTable
		contact      *contactTable
	}
)

func NewDB() *DB {
	return &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		admission:    &admissionTable{table: make(map[string]*admission.Admission)},
		opening:      &openingTable{table: make(map[string]*career.Opening)},
		application:  &applicationTable{table: make(map[string]*career.Application)},
		staff:        &staffTable{table: make(map[string]*staff.Member)},
		update:       &updateTable{table: make(map[string]*news.Update)},
		announcement: &announcementTable{table: make(map[string]*news.Announcement)},
		contact:      &contactTable{table: make(map[string]*contact.Message)},
	}
}

// Reset empties all tables.
func (db *DB) Reset() {
	db.user.mutex.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.mutex.Unlock()

	db.admission.mutex.Lock()
	db.admission.table = make(map[string]*admission.Admission)
	db.admission.mutex.Unlock()

	db.opening.mutex.Lock()
	db.opening.table = make(map[string]*career.Opening)
	db.opening.mutex.Unlock()

	db.application.mutex.Lock()
	db.application.table = make(map[string]*career.Application)
	db.application.mutex.Unlock()

	db.staff.mutex.Lock()
	db.staff.table = make(map[string]*staff.Member)
	db.staff.mutex.Unlock()

	db.update.mutex.Lock()
	db.update.table = make(map[string]*news.Update)
	db.update.mutex.Unlock()

	db.announcement.mutex.Lock()
	db.announcement.table = make(map[string]*news.Announcement)
	db.announcement.mutex.Unlock()

	db.contact.mutex.Lock()
	db.contact.table = make(map[string]*contact.Message)
	db.contact.mutex.Unlock()
}

// createdAtDesc reports whether the requested ordering is the default
// newest-first one; it is the only ordering these repositories honor.
func createdAtDesc(ordering []core.DBOrdering) bool {
	return len(ordering) > 0 && ordering[0].Field == "created_at" && !ordering[0].Ascending
}
