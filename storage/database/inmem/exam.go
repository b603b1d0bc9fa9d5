package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/enlightiq/enlightiq/core/exam"
)

type examRepository struct {
	db *DB
}

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) CreateExam(_ context.Context, ex exam.Exam) (exam.Exam, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.exams[ex.ID] = &ex
	return ex, nil
}

func (repo *examRepository) GetExam(_ context.Context, id uuid.UUID) (exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if ex, ok := repo.db.exams[id]; ok {
		return *ex, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) QueryAllExams(_ context.Context) ([]exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exams := make([]exam.Exam, 0, len(repo.db.exams))
	for _, ex := range repo.db.exams {
		exams = append(exams, *ex)
	}
	return exams, nil
}

func (repo *examRepository) QueryExamsByStatus(_ context.Context, status string) ([]exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exams := make([]exam.Exam, 0)
	for _, ex := range repo.db.exams {
		if ex.Status.Valid && ex.Status.String == status {
			exams = append(exams, *ex)
		}
	}
	return exams, nil
}

func (repo *examRepository) UpdateExam(_ context.Context, ex exam.Exam) (exam.Exam, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.exams[ex.ID]; !ok {
		return exam.Exam{}, exam.ErrNotFound
	}
	repo.db.exams[ex.ID] = &ex
	return ex, nil
}

func (repo *examRepository) DeleteExam(_ context.Context, id uuid.UUID) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.exams[id]; !ok {
		return exam.ErrNotFound
	}
	delete(repo.db.exams, id)
	delete(repo.db.registrations, id)
	return nil
}

func (repo *examRepository) AddRegistration(_ context.Context, examID uuid.UUID, userID int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	set, ok := repo.db.registrations[examID]
	if !ok {
		set = make(map[int64]bool)
		repo.db.registrations[examID] = set
	}
	set[userID] = true
	return nil
}

func (repo *examRepository) IsUserRegistered(_ context.Context, examID uuid.UUID, userID int64) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	return repo.db.registrations[examID][userID], nil
}

func (repo *examRepository) QueryExamsByUser(_ context.Context, userID int64) ([]exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exams := make([]exam.Exam, 0)
	for examID, set := range repo.db.registrations {
		if !set[userID] {
			continue
		}
		if ex, ok := repo.db.exams[examID]; ok {
			exams = append(exams, *ex)
		}
	}
	return exams, nil
}

func (repo *examRepository) UpsertResult(_ context.Context, ue exam.UserExam) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.results[resultKey{userID: ue.UserID, examID: ue.ExamID}] = ue
	return nil
}

func (repo *examRepository) QueryResultsByExam(_ context.Context, examID uuid.UUID) ([]exam.UserExam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	results := make([]exam.UserExam, 0)
	for key, ue := range repo.db.results {
		if key.examID == examID {
			results = append(results, ue)
		}
	}
	return results, nil
}

func (repo *examRepository) QueryResultsByUser(_ context.Context, userID int64) ([]exam.UserExam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	results := make([]exam.UserExam, 0)
	for key, ue := range repo.db.results {
		if key.userID == userID {
			results = append(results, ue)
		}
	}
	return results, nil
}
