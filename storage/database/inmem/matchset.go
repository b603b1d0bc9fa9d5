package inmemdb

import (
	"context"

	"github.com/enlightiq/enlightiq/core/matchset"
)

type matchSetRepository struct {
	db *DB
}

func NewMatchSetRepository(db *DB) matchset.Repository {
	return &matchSetRepository{db: db}
}

func (repo *matchSetRepository) CreateMatchSet(_ context.Context, ms matchset.MatchSet) (matchset.MatchSet, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.matchSetPK++
	ms.ID = repo.db.matchSetPK
	repo.db.matchsets[ms.ID] = &ms
	return copyMatchSet(&ms), nil
}

func (repo *matchSetRepository) GetMatchSet(_ context.Context, id int64) (matchset.MatchSet, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if ms, ok := repo.db.matchsets[id]; ok {
		return copyMatchSet(ms), nil
	}
	return matchset.MatchSet{}, matchset.ErrNotFound
}

func (repo *matchSetRepository) QueryAllMatchSets(_ context.Context) ([]matchset.MatchSet, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sets := make([]matchset.MatchSet, 0, len(repo.db.matchsets))
	for _, ms := range repo.db.matchsets {
		sets = append(sets, copyMatchSet(ms))
	}
	return sets, nil
}

func (repo *matchSetRepository) AddQuestions(_ context.Context, matchSetID int64, questions []matchset.Question) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ms, ok := repo.db.matchsets[matchSetID]
	if !ok {
		return matchset.ErrNotFound
	}
	for _, q := range questions {
		repo.db.questionPK++
		q.ID = repo.db.questionPK
		ms.Questions = append(ms.Questions, q)
	}
	return nil
}

func (repo *matchSetRepository) DeleteQuestions(_ context.Context, matchSetID int64, questionIDs []int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ms, ok := repo.db.matchsets[matchSetID]
	if !ok {
		return matchset.ErrNotFound
	}
	drop := make(map[int64]bool, len(questionIDs))
	for _, id := range questionIDs {
		drop[id] = true
	}
	kept := ms.Questions[:0]
	for _, q := range ms.Questions {
		if !drop[q.ID] {
			kept = append(kept, q)
		}
	}
	ms.Questions = kept
	return nil
}

// copyMatchSet deep-copies the questions slice so callers can mutate their
// copy (e.g. stripping correct answers) without touching the store.
func copyMatchSet(ms *matchset.MatchSet) matchset.MatchSet {
	out := *ms
	out.Questions = make([]matchset.Question, len(ms.Questions))
	copy(out.Questions, ms.Questions)
	return out
}
