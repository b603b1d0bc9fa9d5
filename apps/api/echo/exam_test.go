package echoapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/exam"
)

func TestExamAPI_registrationFlow(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.adminToken(t)

	rec := env.do(t, httpTest{
		method: http.MethodPost,
		path:   "/api/exams",
		body: marshallObj(t, exam.NewExam{
			Title:                "National Science Olympiad",
			Subject:              "Science",
			Eligibility:          "Grade 6-10 students",
			RegistrationDeadline: time.Now().Add(24 * time.Hour),
		}),
		token:    adminToken,
		wantCode: http.StatusCreated,
	})
	var ex exam.Exam
	decodeBody(t, rec, &ex)

	usr, err := env.accountSvc.RegisterUser(context.Background(), account.NewUser{
		Name:     "Amina Yusuf",
		Email:    "amina@test.com",
		Class:    "8",
		Password: "Secret123",
	})
	require.NoError(t, err)

	registerPath := "/api/user/1/exam/" + ex.ID.String()

	t.Run("eligible user registers", func(t *testing.T) {
		rec := env.do(t, httpTest{
			method:   http.MethodPost,
			path:     registerPath,
			wantCode: http.StatusOK,
		})
		var resp MessageResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, exam.MsgRegistered, resp.Message)
	})

	t.Run("repeat registration is reported, not duplicated", func(t *testing.T) {
		rec := env.do(t, httpTest{
			method:   http.MethodPost,
			path:     registerPath,
			wantCode: http.StatusOK,
		})
		var resp MessageResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, exam.MsgAlreadyRegistered, resp.Message)

		registered, err := env.examSvc.QueryRegisteredByUser(context.Background(), usr.ID)
		require.NoError(t, err)
		assert.Len(t, registered, 1)
	})

	t.Run("ineligible class is a validation error", func(t *testing.T) {
		_, err := env.accountSvc.RegisterUser(context.Background(), account.NewUser{
			Name:     "Tunde Bello",
			Email:    "tunde@test.com",
			Class:    "5",
			Password: "Secret123",
		})
		require.NoError(t, err)

		rec := env.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/user/2/exam/" + ex.ID.String(),
			wantCode: http.StatusBadRequest,
		})
		var resp httpErr
		decodeBody(t, rec, &resp)
		assert.Contains(t, resp.Error, "not eligible")
	})

	t.Run("garbled exam id 404s", func(t *testing.T) {
		env.do(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/user/1/exam/not-a-uuid",
			wantCode: http.StatusNotFound,
		})
	})
}
