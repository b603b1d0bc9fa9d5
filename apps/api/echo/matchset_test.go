package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core/matchset"
)

func TestMatchSetAPI_submitFlow(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.adminToken(t)

	// create a set with questions through the admin endpoints
	rec := env.do(t, httpTest{
		method:   http.MethodPost,
		path:     "/api/matchsets",
		body:     marshallObj(t, matchset.NewMatchSet{Title: "Weekly Science Quiz", Subject: "Science"}),
		token:    adminToken,
		wantCode: http.StatusCreated,
	})
	var ms matchset.MatchSet
	decodeBody(t, rec, &ms)

	questions := []matchset.NewQuestion{
		{Text: "Chemical symbol of water?", Options: []string{"H2O", "CO2"}, CorrectAnswer: "H2O"},
		{Text: "Planet closest to the sun?", Options: []string{"Venus", "Mercury"}, CorrectAnswer: "Mercury"},
	}
	env.do(t, httpTest{
		method:   http.MethodPost,
		path:     "/api/matchsets/1/questions/bulk",
		body:     marshallObj(t, questions),
		token:    adminToken,
		wantCode: http.StatusCreated,
	})

	t.Run("questions are served without answers", func(t *testing.T) {
		rec := env.do(t, httpTest{
			method:   http.MethodGet,
			path:     "/api/matchsets/1/questions",
			wantCode: http.StatusOK,
		})
		var served []matchset.Question
		decodeBody(t, rec, &served)
		require.Len(t, served, 2)
		for _, q := range served {
			assert.Empty(t, q.CorrectAnswer)
		}
	})

	t.Run("submit is scored", func(t *testing.T) {
		rec := env.do(t, httpTest{
			method: http.MethodPost,
			path:   "/api/matchsets/submit",
			body: marshallObj(t, matchset.Submission{
				MatchSetID: ms.ID,
				Answers: []matchset.Answer{
					{QuestionID: 1, SelectedAnswer: "h2o"},
					{QuestionID: 2, SelectedAnswer: "Venus"},
				},
			}),
			wantCode: http.StatusOK,
		})
		var result matchset.Result
		decodeBody(t, rec, &result)
		assert.Equal(t, 1, result.CorrectAnswers)
		assert.Equal(t, 50.0, result.Percentage)
		assert.Equal(t, matchset.StatusPass, result.ResultStatus)
	})

	t.Run("unknown set 404s", func(t *testing.T) {
		env.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/matchsets/submit",
			body:     marshallObj(t, matchset.Submission{MatchSetID: 42}),
			wantCode: http.StatusNotFound,
		})
	})

	t.Run("create requires admin", func(t *testing.T) {
		env.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/matchsets",
			body:     marshallObj(t, matchset.NewMatchSet{Title: "Another", Subject: "Maths"}),
			wantCode: http.StatusUnauthorized,
		})
	})
}
