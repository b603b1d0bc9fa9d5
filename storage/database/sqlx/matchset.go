package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/enlightiq/enlightiq/core/matchset"
)

type matchSetRepository struct {
	db *sqlx.DB
}

func NewMatchSetRepository(db *sqlx.DB) matchset.Repository {
	return &matchSetRepository{db: db}
}

type matchSetRow struct {
	ID              int64  `db:"id"`
	Title           string `db:"title"`
	Subject         string `db:"subject"`
	Date            string `db:"date"`
	DurationMinutes int    `db:"duration_minutes"`
	Image           string `db:"image"`
}

func (r matchSetRow) toDomain() matchset.MatchSet {
	return matchset.MatchSet{
		ID:              r.ID,
		Title:           r.Title,
		Subject:         r.Subject,
		Date:            r.Date,
		DurationMinutes: r.DurationMinutes,
		Image:           r.Image,
	}
}

const selectMatchSet = `SELECT id, title, subject, date, duration_minutes, image FROM match_sets`

func (repo *matchSetRepository) CreateMatchSet(ctx context.Context, ms matchset.MatchSet) (matchset.MatchSet, error) {
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO match_sets (title, subject, date, duration_minutes, image)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		ms.Title, ms.Subject, ms.Date, ms.DurationMinutes, ms.Image,
	).Scan(&ms.ID)
	if err != nil {
		return matchset.MatchSet{}, errors.Wrap(err, "creating match set")
	}
	return ms, nil
}

func (repo *matchSetRepository) GetMatchSet(ctx context.Context, id int64) (matchset.MatchSet, error) {
	var row matchSetRow
	if err := repo.db.GetContext(ctx, &row, selectMatchSet+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matchset.MatchSet{}, matchset.ErrNotFound
		}
		return matchset.MatchSet{}, errors.Wrap(err, "getting match set")
	}
	ms := row.toDomain()

	questions, err := repo.queryQuestions(ctx, id)
	if err != nil {
		return matchset.MatchSet{}, err
	}
	ms.Questions = questions
	return ms, nil
}

func (repo *matchSetRepository) queryQuestions(ctx context.Context, matchSetID int64) ([]matchset.Question, error) {
	rows, err := repo.db.QueryxContext(ctx,
		`SELECT id, question_text, options, correct_answer FROM questions
		 WHERE match_set_id = $1 ORDER BY id`, matchSetID)
	if err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	defer func() { _ = rows.Close() }()

	questions := make([]matchset.Question, 0)
	for rows.Next() {
		var q matchset.Question
		var options pq.StringArray
		if err = rows.Scan(&q.ID, &q.Text, &options, &q.CorrectAnswer); err != nil {
			return nil, errors.Wrap(err, "scanning question")
		}
		q.Options = options
		questions = append(questions, q)
	}
	return questions, errors.Wrap(rows.Err(), "querying questions")
}

func (repo *matchSetRepository) QueryAllMatchSets(ctx context.Context) ([]matchset.MatchSet, error) {
	var rows []matchSetRow
	if err := repo.db.SelectContext(ctx, &rows, selectMatchSet+` ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying match sets")
	}
	sets := make([]matchset.MatchSet, 0, len(rows))
	for _, row := range rows {
		sets = append(sets, row.toDomain())
	}
	return sets, nil
}

func (repo *matchSetRepository) AddQuestions(ctx context.Context, matchSetID int64, questions []matchset.Question) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	for _, q := range questions {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (match_set_id, question_text, options, correct_answer)
			 VALUES ($1, $2, $3, $4)`,
			matchSetID, q.Text, pq.StringArray(q.Options), q.CorrectAnswer)
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "inserting question")
		}
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

func (repo *matchSetRepository) DeleteQuestions(ctx context.Context, matchSetID int64, questionIDs []int64) error {
	_, err := repo.db.ExecContext(ctx,
		`DELETE FROM questions WHERE match_set_id = $1 AND id = ANY($2)`,
		matchSetID, pq.Int64Array(questionIDs))
	return errors.Wrap(err, "deleting questions")
}
