package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/task"
)

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) task.Repository {
	return &taskRepository{db: db}
}

type taskRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	Priority    string    `db:"priority"`
	Remarks     string    `db:"remarks"`
	SalesManID  int64     `db:"sales_man_id"`
}

func (r taskRow) toDomain() task.Task {
	return task.Task(r)
}

const selectTask = `SELECT id, title, description, due_date, priority, remarks, sales_man_id FROM tasks`

func (repo *taskRepository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO tasks (title, description, due_date, priority, remarks, sales_man_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		t.Title, t.Description, t.DueDate, t.Priority, t.Remarks, t.SalesManID,
	).Scan(&t.ID)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "creating task")
	}
	return t, nil
}

func (repo *taskRepository) GetTask(ctx context.Context, id int64) (task.Task, error) {
	var row taskRow
	if err := repo.db.GetContext(ctx, &row, selectTask+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, errors.Wrap(err, "getting task")
	}
	return row.toDomain(), nil
}

func (repo *taskRepository) QueryAllTasks(ctx context.Context) ([]task.Task, error) {
	var rows []taskRow
	if err := repo.db.SelectContext(ctx, &rows, selectTask+` ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	return tasksFromRows(rows), nil
}

func (repo *taskRepository) QueryTasksBySalesMan(ctx context.Context, salesManID int64) ([]task.Task, error) {
	var rows []taskRow
	if err := repo.db.SelectContext(ctx, &rows, selectTask+` WHERE sales_man_id = $1 ORDER BY id`, salesManID); err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	return tasksFromRows(rows), nil
}

func (repo *taskRepository) UpdateTaskRemarks(ctx context.Context, id int64, remarks string) (task.Task, error) {
	var row taskRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE tasks SET remarks = $2 WHERE id = $1
		 RETURNING id, title, description, due_date, priority, remarks, sales_man_id`, id, remarks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, errors.Wrap(err, "updating task remarks")
	}
	return row.toDomain(), nil
}

func tasksFromRows(rows []taskRow) []task.Task {
	tasks := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks
}
