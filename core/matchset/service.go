package matchset

import (
	"context"
	"strings"

	"github.com/enlightiq/enlightiq/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("match set not found")
)

type (
	Repository interface {
		CreateMatchSet(ctx context.Context, ms MatchSet) (MatchSet, error)
		// GetMatchSet returns the set with its questions loaded.
		GetMatchSet(ctx context.Context, id int64) (MatchSet, error)
		QueryAllMatchSets(ctx context.Context) ([]MatchSet, error)
		AddQuestions(ctx context.Context, matchSetID int64, questions []Question) error
		DeleteQuestions(ctx context.Context, matchSetID int64, questionIDs []int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nm NewMatchSet) (MatchSet, error) {
	ms := MatchSet{
		Title:           nm.Title,
		Subject:         nm.Subject,
		Date:            nm.Date,
		DurationMinutes: nm.DurationMinutes,
		Image:           nm.Image,
	}
	return svc.repo.CreateMatchSet(ctx, ms)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (MatchSet, error) {
	return svc.repo.GetMatchSet(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Summary, error) {
	sets, err := svc.repo.QueryAllMatchSets(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(sets))
	for _, ms := range sets {
		summaries = append(summaries, Summary{
			ID:              ms.ID,
			Title:           ms.Title,
			Subject:         ms.Subject,
			Date:            ms.Date,
			DurationMinutes: ms.DurationMinutes,
		})
	}
	return summaries, nil
}

// Questions returns a set's questions without their correct answers.
func (svc *Service) Questions(ctx context.Context, id int64) ([]Question, error) {
	ms, err := svc.repo.GetMatchSet(ctx, id)
	if err != nil {
		return nil, err
	}
	questions := make([]Question, 0, len(ms.Questions))
	for _, q := range ms.Questions {
		q.CorrectAnswer = ""
		questions = append(questions, q)
	}
	return questions, nil
}

// Details returns the set with its questions, correct answers stripped.
func (svc *Service) Details(ctx context.Context, id int64) (MatchSet, error) {
	ms, err := svc.repo.GetMatchSet(ctx, id)
	if err != nil {
		return MatchSet{}, err
	}
	for i := range ms.Questions {
		ms.Questions[i].CorrectAnswer = ""
	}
	return ms, nil
}

func (svc *Service) BulkAddQuestions(ctx context.Context, id int64, nqs []NewQuestion) error {
	if _, err := svc.repo.GetMatchSet(ctx, id); err != nil {
		return err
	}
	questions := make([]Question, 0, len(nqs))
	for _, nq := range nqs {
		questions = append(questions, Question{
			Text:          nq.Text,
			Options:       nq.Options,
			CorrectAnswer: nq.CorrectAnswer,
		})
	}
	return svc.repo.AddQuestions(ctx, id, questions)
}

func (svc *Service) BulkDeleteQuestions(ctx context.Context, id int64, questionIDs []int64) error {
	if _, err := svc.repo.GetMatchSet(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteQuestions(ctx, id, questionIDs)
}

// Evaluate grades a submission against the set's current questions. An answer
// counts as correct iff its question id exists in the set and the trimmed,
// case-insensitive text equals the correct answer. The denominator is the
// number of submitted answers; an empty submission yields a zero result
// rather than a division by zero. Nothing is persisted here.
func (svc *Service) Evaluate(ctx context.Context, sub Submission) (Result, error) {
	ms, err := svc.repo.GetMatchSet(ctx, sub.MatchSetID)
	if err != nil {
		return Result{}, err
	}

	correctAnswers := make(map[int64]string, len(ms.Questions))
	for _, q := range ms.Questions {
		correctAnswers[q.ID] = q.CorrectAnswer
	}

	total := len(sub.Answers)
	var correct int
	for _, ans := range sub.Answers {
		want, ok := correctAnswers[ans.QuestionID]
		if ok && answersEqual(want, ans.SelectedAnswer) {
			correct++
		}
	}

	result := Result{
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		IncorrectAnswers: total - correct,
		ResultStatus:     StatusFail,
	}
	if total > 0 {
		result.Percentage = float64(correct) * 100 / float64(total)
	}
	if total > 0 && result.Percentage >= PassThreshold {
		result.ResultStatus = StatusPass
	}
	return result, nil
}

func answersEqual(want, got string) bool {
	return strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(got))
}
