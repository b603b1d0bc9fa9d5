package inmemdb

import (
	"context"

	"github.com/enlightiq/enlightiq/core/task"
)

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.taskPK++
	t.ID = repo.db.taskPK
	repo.db.tasks[t.ID] = &t
	return t, nil
}

func (repo *taskRepository) GetTask(_ context.Context, id int64) (task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.tasks[id]; ok {
		return *t, nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) QueryAllTasks(_ context.Context) ([]task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tasks := make([]task.Task, 0, len(repo.db.tasks))
	for _, t := range repo.db.tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (repo *taskRepository) QueryTasksBySalesMan(_ context.Context, salesManID int64) ([]task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tasks := make([]task.Task, 0)
	for _, t := range repo.db.tasks {
		if t.SalesManID == salesManID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (repo *taskRepository) UpdateTaskRemarks(_ context.Context, id int64, remarks string) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	t, ok := repo.db.tasks[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	t.Remarks = remarks
	return *t, nil
}
