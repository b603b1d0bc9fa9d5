// Package inmemdb is a mutex-guarded map implementation of the domain
// repositories, used by tests and local development.
package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/blog"
	"github.com/enlightiq/enlightiq/core/exam"
	"github.com/enlightiq/enlightiq/core/matchset"
	"github.com/enlightiq/enlightiq/core/task"
)

type DB struct {
	// one lock for the whole store keeps the principal-index insert and the
	// variant-table insert atomic, mirroring the single SQL transaction
	mutex sync.RWMutex

	principals   map[string]account.Principal // email -> entry
	users        map[int64]*account.User
	admins       map[int64]*account.Admin
	salesmen     map[int64]*account.SalesMan
	schools      map[int64]*account.School
	coordinators map[int64]*account.Coordinator

	exams         map[uuid.UUID]*exam.Exam
	registrations map[uuid.UUID]map[int64]bool // examID -> set of userIDs
	results       map[resultKey]exam.UserExam

	matchsets map[int64]*matchset.MatchSet
	tasks     map[int64]*task.Task
	blogs     map[uuid.UUID]*blog.Blog

	userPK     int64
	adminPK    int64
	salesManPK int64
	schoolPK   int64
	coordPK    int64
	matchSetPK int64
	questionPK int64
	taskPK     int64
}

type resultKey struct {
	userID int64
	examID uuid.UUID
}

func Open() (*DB, error) {
	db := &DB{
		principals:    make(map[string]account.Principal),
		users:         make(map[int64]*account.User),
		admins:        make(map[int64]*account.Admin),
		salesmen:      make(map[int64]*account.SalesMan),
		schools:       make(map[int64]*account.School),
		coordinators:  make(map[int64]*account.Coordinator),
		exams:         make(map[uuid.UUID]*exam.Exam),
		registrations: make(map[uuid.UUID]map[int64]bool),
		results:       make(map[resultKey]exam.UserExam),
		matchsets:     make(map[int64]*matchset.MatchSet),
		tasks:         make(map[int64]*task.Task),
		blogs:         make(map[uuid.UUID]*blog.Blog),
	}
	return db, nil
}
