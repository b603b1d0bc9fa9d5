package cert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/cert"
	"github.com/enlightiq/enlightiq/core/exam"
	"github.com/enlightiq/enlightiq/storage/database/inmem"
)

type fakeStore struct {
	uploaded map[string]string // path -> content type
}

func (s *fakeStore) Upload(_ context.Context, path, contentType string, _ []byte) (string, error) {
	s.uploaded[path] = contentType
	return "https://files.test/" + path, nil
}

func (s *fakeStore) PublicURL(path string) string {
	return "https://files.test/" + path
}

type fakeRenderer struct {
	rendered []cert.Data
}

func (r *fakeRenderer) Render(_ string, data cert.Data) ([]byte, error) {
	r.rendered = append(r.rendered, data)
	return []byte("%PDF"), nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

var _ core.Logger = nopLogger{}

func TestService_Process(t *testing.T) {
	ctx := context.Background()

	db, err := inmemdb.Open()
	require.NoError(t, err)
	accountSvc := account.NewService(inmemdb.NewAccountRepository(db), nil)
	examSvc := exam.NewService(inmemdb.NewExamRepository(db), accountSvc, nil)

	store := &fakeStore{uploaded: make(map[string]string)}
	renderer := &fakeRenderer{}
	svc := cert.NewService(accountSvc, examSvc, renderer, store, nopLogger{})

	usr, err := accountSvc.RegisterUser(ctx, account.NewUser{
		Name:     "Amina Yusuf",
		Email:    "amina@test.com",
		Class:    "8",
		Password: "Secret123",
	})
	require.NoError(t, err)

	ex, err := examSvc.Create(ctx, exam.NewExam{
		Title:                "National Science Olympiad",
		Subject:              "Science",
		Eligibility:          "Grade 6-10 students",
		RegistrationDeadline: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	t.Run("renders, uploads and records the result", func(t *testing.T) {
		count, err := svc.Process(ctx, []cert.Request{{
			UserID:     usr.ID,
			ExamID:     ex.ID,
			Percentage: 88,
			Subject:    "Science",
			Template:   "template1",
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.Len(t, renderer.rendered, 1)
		assert.Equal(t, "Amina Yusuf", renderer.rendered[0].Name)
		assert.Equal(t, 88.0, renderer.rendered[0].Percentage)

		assert.Equal(t, "application/pdf", store.uploaded["certificates/Amina_Yusuf/Science.pdf"])

		results, err := examSvc.ResultsByUser(ctx, usr.ID)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 88.0, results[0].Percentage)
	})

	t.Run("unknown user aborts the batch", func(t *testing.T) {
		count, err := svc.Process(ctx, []cert.Request{{
			UserID:     999,
			ExamID:     ex.ID,
			Percentage: 50,
			Subject:    "Science",
			Template:   "template1",
		}})
		require.Error(t, err)
		assert.Equal(t, 0, count)
	})
}
