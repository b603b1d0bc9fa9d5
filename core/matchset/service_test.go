package matchset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/matchset"
	"github.com/enlightiq/enlightiq/storage/database/inmem"
)

func setup(t *testing.T) *matchset.Service {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return matchset.NewService(inmemdb.NewMatchSetRepository(db))
}

func createSet(t *testing.T, svc *matchset.Service, questions ...matchset.NewQuestion) matchset.MatchSet {
	ctx := context.Background()
	ms, err := svc.Create(ctx, matchset.NewMatchSet{Title: "Weekly Science Quiz", Subject: "Science"})
	require.NoError(t, err)
	if len(questions) > 0 {
		require.NoError(t, svc.BulkAddQuestions(ctx, ms.ID, questions))
		ms, err = svc.GetByID(ctx, ms.ID)
		require.NoError(t, err)
	}
	return ms
}

func twoQuestions() []matchset.NewQuestion {
	return []matchset.NewQuestion{
		{Text: "Chemical symbol of water?", Options: []string{"H2O", "CO2"}, CorrectAnswer: "H2O"},
		{Text: "Planet closest to the sun?", Options: []string{"Venus", "Mercury"}, CorrectAnswer: "Mercury"},
	}
}

func TestService_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("half correct is a pass", func(t *testing.T) {
		svc := setup(t)
		ms := createSet(t, svc, twoQuestions()...)

		result, err := svc.Evaluate(ctx, matchset.Submission{
			MatchSetID: ms.ID,
			Answers: []matchset.Answer{
				{QuestionID: ms.Questions[0].ID, SelectedAnswer: "H2O"},
				{QuestionID: ms.Questions[1].ID, SelectedAnswer: "Venus"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalQuestions)
		assert.Equal(t, 1, result.CorrectAnswers)
		assert.Equal(t, 1, result.IncorrectAnswers)
		assert.Equal(t, 50.0, result.Percentage)
		assert.Equal(t, matchset.StatusPass, result.ResultStatus)
	})

	t.Run("matching ignores case and padding", func(t *testing.T) {
		svc := setup(t)
		ms := createSet(t, svc, twoQuestions()...)

		result, err := svc.Evaluate(ctx, matchset.Submission{
			MatchSetID: ms.ID,
			Answers: []matchset.Answer{
				{QuestionID: ms.Questions[0].ID, SelectedAnswer: "  h2o "},
				{QuestionID: ms.Questions[1].ID, SelectedAnswer: "MERCURY"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.CorrectAnswers)
		assert.Equal(t, 100.0, result.Percentage)
		assert.Equal(t, matchset.StatusPass, result.ResultStatus)
	})

	t.Run("unknown question id counts as incorrect", func(t *testing.T) {
		svc := setup(t)
		ms := createSet(t, svc, twoQuestions()...)

		result, err := svc.Evaluate(ctx, matchset.Submission{
			MatchSetID: ms.ID,
			Answers: []matchset.Answer{
				{QuestionID: 9999, SelectedAnswer: "H2O"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalQuestions)
		assert.Equal(t, 0, result.CorrectAnswers)
		assert.Equal(t, matchset.StatusFail, result.ResultStatus)
	})

	t.Run("empty submission yields a zero result", func(t *testing.T) {
		svc := setup(t)
		ms := createSet(t, svc, twoQuestions()...)

		result, err := svc.Evaluate(ctx, matchset.Submission{MatchSetID: ms.ID})
		require.NoError(t, err)
		assert.Equal(t, 0, result.TotalQuestions)
		assert.Equal(t, 0.0, result.Percentage)
		assert.Equal(t, matchset.StatusFail, result.ResultStatus)
	})

	t.Run("unknown set", func(t *testing.T) {
		svc := setup(t)
		_, err := svc.Evaluate(ctx, matchset.Submission{MatchSetID: 42})
		assert.True(t, core.IsNotFound(err))
	})
}

func TestService_answerStripping(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)
	ms := createSet(t, svc, twoQuestions()...)

	questions, err := svc.Questions(ctx, ms.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Empty(t, q.CorrectAnswer)
	}

	details, err := svc.Details(ctx, ms.ID)
	require.NoError(t, err)
	for _, q := range details.Questions {
		assert.Empty(t, q.CorrectAnswer)
	}

	// the stored set still has its answers
	stored, err := svc.GetByID(ctx, ms.ID)
	require.NoError(t, err)
	assert.Equal(t, "H2O", stored.Questions[0].CorrectAnswer)
}

func TestService_BulkDeleteQuestions(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)
	ms := createSet(t, svc, twoQuestions()...)

	require.NoError(t, svc.BulkDeleteQuestions(ctx, ms.ID, []int64{ms.Questions[0].ID}))

	ms, err := svc.GetByID(ctx, ms.ID)
	require.NoError(t, err)
	require.Len(t, ms.Questions, 1)
	assert.Equal(t, "Planet closest to the sun?", ms.Questions[0].Text)
}
