package exam_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/exam"
	"github.com/enlightiq/enlightiq/storage/database/inmem"
)

type fakeStore struct{}

func (fakeStore) Upload(_ context.Context, path, _ string, _ []byte) (string, error) {
	return "https://files.test/" + path, nil
}

func (fakeStore) PublicURL(path string) string {
	return "https://files.test/" + path
}

var _ core.FileStore = fakeStore{}

func setup(t *testing.T) (*exam.Service, *account.Service) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	accountSvc := account.NewService(inmemdb.NewAccountRepository(db), nil)
	examSvc := exam.NewService(inmemdb.NewExamRepository(db), accountSvc, fakeStore{})
	return examSvc, accountSvc
}

func createUser(t *testing.T, svc *account.Service, name, email, class string) account.User {
	usr, err := svc.RegisterUser(context.Background(), account.NewUser{
		Name:     name,
		Email:    email,
		Class:    class,
		Password: "Secret123",
	})
	require.NoError(t, err)
	return usr
}

func createExam(t *testing.T, svc *exam.Service, eligibility string, deadline time.Time) exam.Exam {
	ex, err := svc.Create(context.Background(), exam.NewExam{
		Title:                "National Science Olympiad",
		Subject:              "Science",
		Eligibility:          eligibility,
		RegistrationDeadline: deadline,
	})
	require.NoError(t, err)
	return ex
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(24 * time.Hour)

	t.Run("eligible class registers", func(t *testing.T) {
		examSvc, accountSvc := setup(t)
		ex := createExam(t, examSvc, "Grade 6-10 students", future)
		usr := createUser(t, accountSvc, "Amina", "amina@test.com", "8")

		msg, err := examSvc.Register(ctx, usr.ID, ex.ID)
		require.NoError(t, err)
		assert.Equal(t, exam.MsgRegistered, msg)
	})

	t.Run("boundary classes are inclusive", func(t *testing.T) {
		examSvc, accountSvc := setup(t)
		ex := createExam(t, examSvc, "Grade 6-10 students", future)
		low := createUser(t, accountSvc, "Low", "low@test.com", "6")
		high := createUser(t, accountSvc, "High", "high@test.com", "10")

		msg, err := examSvc.Register(ctx, low.ID, ex.ID)
		require.NoError(t, err)
		assert.Equal(t, exam.MsgRegistered, msg)

		msg, err = examSvc.Register(ctx, high.ID, ex.ID)
		require.NoError(t, err)
		assert.Equal(t, exam.MsgRegistered, msg)
	})

	t.Run("class outside range is rejected", func(t *testing.T) {
		examSvc, accountSvc := setup(t)
		ex := createExam(t, examSvc, "Grade 6-10 students", future)
		usr := createUser(t, accountSvc, "Young", "young@test.com", "5")

		_, err := examSvc.Register(ctx, usr.ID, ex.ID)
		require.Error(t, err)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Error(), "not eligible")
	})

	t.Run("deadline passed", func(t *testing.T) {
		examSvc, accountSvc := setup(t)
		ex := createExam(t, examSvc, "Grade 6-10 students", time.Now().Add(-time.Hour))
		usr := createUser(t, accountSvc, "Late", "late@test.com", "8")

		_, err := examSvc.Register(ctx, usr.ID, ex.ID)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Error(), "deadline")
	})

	t.Run("malformed eligibility fails closed", func(t *testing.T) {
		examSvc, accountSvc := setup(t)
		ex := createExam(t, examSvc, "", future)
		usr := createUser(t, accountSvc, "Any", "any@test.com", "8")

		_, err := examSvc.Register(ctx, usr.ID, ex.ID)
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Error(), "eligibility check failed")
	})

	t.Run("repeat registration is idempotent", func(t *testing.T) {
		examSvc, accountSvc := setup(t)
		ex := createExam(t, examSvc, "Grade 6-10 students", future)
		usr := createUser(t, accountSvc, "Amina", "amina@test.com", "8")

		_, err := examSvc.Register(ctx, usr.ID, ex.ID)
		require.NoError(t, err)
		msg, err := examSvc.Register(ctx, usr.ID, ex.ID)
		require.NoError(t, err)
		assert.Equal(t, exam.MsgAlreadyRegistered, msg)

		registered, err := examSvc.QueryRegisteredByUser(ctx, usr.ID)
		require.NoError(t, err)
		assert.Len(t, registered, 1)
	})

	t.Run("unknown exam", func(t *testing.T) {
		examSvc, accountSvc := setup(t)
		usr := createUser(t, accountSvc, "Amina", "amina@test.com", "8")

		_, err := examSvc.Register(ctx, usr.ID, uuid.New())
		assert.True(t, core.IsNotFound(err))
	})
}

func TestService_ToggleRecommended(t *testing.T) {
	ctx := context.Background()
	examSvc, _ := setup(t)
	ex1 := createExam(t, examSvc, "Grade 6-10 students", time.Now().Add(24*time.Hour))
	ex2 := createExam(t, examSvc, "Grade 6-10 students", time.Now().Add(24*time.Hour))

	ex1, err := examSvc.ToggleRecommended(ctx, ex1.ID)
	require.NoError(t, err)
	assert.True(t, ex1.IsRecommended())

	// flag is per exam; recommending a second one keeps the first
	ex2, err = examSvc.ToggleRecommended(ctx, ex2.ID)
	require.NoError(t, err)
	assert.True(t, ex2.IsRecommended())

	recommended, err := examSvc.QueryRecommended(ctx)
	require.NoError(t, err)
	assert.Len(t, recommended, 2)

	// toggling again clears it
	ex1, err = examSvc.ToggleRecommended(ctx, ex1.ID)
	require.NoError(t, err)
	assert.False(t, ex1.IsRecommended())
}

func TestService_results(t *testing.T) {
	ctx := context.Background()
	examSvc, accountSvc := setup(t)
	ex := createExam(t, examSvc, "Grade 6-10 students", time.Now().Add(24*time.Hour))
	usr := createUser(t, accountSvc, "Amina Yusuf", "amina@test.com", "8")

	require.NoError(t, examSvc.SaveResult(ctx, usr.ID, ex.ID, 72.5))

	// resubmission overwrites the percentage on the composite key
	require.NoError(t, examSvc.SaveResult(ctx, usr.ID, ex.ID, 81))

	byExam, err := examSvc.ResultsByExam(ctx, ex.ID)
	require.NoError(t, err)
	require.Len(t, byExam, 1)
	assert.Equal(t, "Amina Yusuf", byExam[0].StudentName)
	assert.Equal(t, 81.0, byExam[0].Percentage)
	assert.Equal(t, "https://files.test/certificates/Amina_Yusuf/Science.pdf", byExam[0].CertificateURL)

	byUser, err := examSvc.ResultsByUser(ctx, usr.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "National Science Olympiad", byUser[0].ExamTitle)
	assert.Equal(t, 81.0, byUser[0].Percentage)
}
