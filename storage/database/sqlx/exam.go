package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/enlightiq/enlightiq/core/exam"
)

type examRepository struct {
	db *sqlx.DB
}

func NewExamRepository(db *sqlx.DB) exam.Repository {
	return &examRepository{db: db}
}

type examRow struct {
	ID                   uuid.UUID   `db:"id"`
	Title                string      `db:"title"`
	Date                 string      `db:"date"`
	Time                 string      `db:"time"`
	Subject              string      `db:"subject"`
	Status               null.String `db:"status"`
	RegistrationDeadline time.Time   `db:"registration_deadline"`
	Eligibility          string      `db:"eligibility"`
	Syllabus             string      `db:"syllabus"`
	Description          string      `db:"description"`
	Duration             string      `db:"duration"`
	Image                string      `db:"image"`
}

func (r examRow) toDomain() exam.Exam {
	return exam.Exam(r)
}

const selectExam = `
	SELECT id, title, date, time, subject, status, registration_deadline, eligibility,
	       syllabus, description, duration, image
	FROM exams`

func (repo *examRepository) CreateExam(ctx context.Context, ex exam.Exam) (exam.Exam, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO exams (id, title, date, time, subject, status, registration_deadline,
		                    eligibility, syllabus, description, duration, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ex.ID, ex.Title, ex.Date, ex.Time, ex.Subject, ex.Status, ex.RegistrationDeadline,
		ex.Eligibility, ex.Syllabus, ex.Description, ex.Duration, ex.Image)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "creating exam")
	}
	return ex, nil
}

func (repo *examRepository) GetExam(ctx context.Context, id uuid.UUID) (exam.Exam, error) {
	var row examRow
	if err := repo.db.GetContext(ctx, &row, selectExam+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return exam.Exam{}, exam.ErrNotFound
		}
		return exam.Exam{}, errors.Wrap(err, "getting exam")
	}
	return row.toDomain(), nil
}

func (repo *examRepository) QueryAllExams(ctx context.Context) ([]exam.Exam, error) {
	var rows []examRow
	if err := repo.db.SelectContext(ctx, &rows, selectExam+` ORDER BY registration_deadline`); err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}
	return examsFromRows(rows), nil
}

func (repo *examRepository) QueryExamsByStatus(ctx context.Context, status string) ([]exam.Exam, error) {
	var rows []examRow
	if err := repo.db.SelectContext(ctx, &rows, selectExam+` WHERE status = $1 ORDER BY registration_deadline`, status); err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}
	return examsFromRows(rows), nil
}

func (repo *examRepository) UpdateExam(ctx context.Context, ex exam.Exam) (exam.Exam, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE exams
		 SET title = $2, date = $3, time = $4, subject = $5, status = $6, registration_deadline = $7,
		     eligibility = $8, syllabus = $9, description = $10, duration = $11, image = $12
		 WHERE id = $1`,
		ex.ID, ex.Title, ex.Date, ex.Time, ex.Subject, ex.Status, ex.RegistrationDeadline,
		ex.Eligibility, ex.Syllabus, ex.Description, ex.Duration, ex.Image)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "updating exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.Exam{}, exam.ErrNotFound
	}
	return ex, nil
}

func (repo *examRepository) DeleteExam(ctx context.Context, id uuid.UUID) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.ErrNotFound
	}
	return nil
}

func (repo *examRepository) AddRegistration(ctx context.Context, examID uuid.UUID, userID int64) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO exam_registrations (exam_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (exam_id, user_id) DO NOTHING`, examID, userID)
	return errors.Wrap(err, "adding registration")
}

func (repo *examRepository) IsUserRegistered(ctx context.Context, examID uuid.UUID, userID int64) (bool, error) {
	var registered bool
	err := repo.db.QueryRowxContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM exam_registrations WHERE exam_id = $1 AND user_id = $2)`,
		examID, userID,
	).Scan(&registered)
	return registered, errors.Wrap(err, "checking registration")
}

func (repo *examRepository) QueryExamsByUser(ctx context.Context, userID int64) ([]exam.Exam, error) {
	var rows []examRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT e.id, e.title, e.date, e.time, e.subject, e.status, e.registration_deadline,
		        e.eligibility, e.syllabus, e.description, e.duration, e.image
		 FROM exams e
		 JOIN exam_registrations r ON r.exam_id = e.id
		 WHERE r.user_id = $1
		 ORDER BY e.registration_deadline`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}
	return examsFromRows(rows), nil
}

func (repo *examRepository) UpsertResult(ctx context.Context, ue exam.UserExam) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO user_exams (user_id, exam_id, percentage) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, exam_id) DO UPDATE SET percentage = EXCLUDED.percentage`,
		ue.UserID, ue.ExamID, ue.Percentage)
	return errors.Wrap(err, "upserting result")
}

type userExamRow struct {
	UserID     int64     `db:"user_id"`
	ExamID     uuid.UUID `db:"exam_id"`
	Percentage float64   `db:"percentage"`
}

func (repo *examRepository) QueryResultsByExam(ctx context.Context, examID uuid.UUID) ([]exam.UserExam, error) {
	var rows []userExamRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT user_id, exam_id, percentage FROM user_exams WHERE exam_id = $1 ORDER BY user_id`, examID)
	if err != nil {
		return nil, errors.Wrap(err, "querying results")
	}
	return resultsFromRows(rows), nil
}

func (repo *examRepository) QueryResultsByUser(ctx context.Context, userID int64) ([]exam.UserExam, error) {
	var rows []userExamRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT user_id, exam_id, percentage FROM user_exams WHERE user_id = $1`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying results")
	}
	return resultsFromRows(rows), nil
}

func resultsFromRows(rows []userExamRow) []exam.UserExam {
	results := make([]exam.UserExam, 0, len(rows))
	for _, row := range rows {
		results = append(results, exam.UserExam(row))
	}
	return results
}

func examsFromRows(rows []examRow) []exam.Exam {
	exams := make([]exam.Exam, 0, len(rows))
	for _, row := range rows {
		exams = append(exams, row.toDomain())
	}
	return exams
}
