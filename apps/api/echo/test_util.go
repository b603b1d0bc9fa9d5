package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/blog"
	"github.com/enlightiq/enlightiq/core/cert"
	"github.com/enlightiq/enlightiq/core/exam"
	"github.com/enlightiq/enlightiq/core/matchset"
	"github.com/enlightiq/enlightiq/core/task"
	"github.com/enlightiq/enlightiq/services/email"
	"github.com/enlightiq/enlightiq/storage/database/inmem"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
}

type testEnv struct {
	server     Server
	accountSvc *account.Service
	examSvc    *exam.Service
}

type testStore struct{}

func (testStore) Upload(_ context.Context, path, _ string, _ []byte) (string, error) {
	return "https://files.test/" + path, nil
}

func (testStore) PublicURL(path string) string {
	return "https://files.test/" + path
}

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type testRenderer struct{}

func (testRenderer) Render(string, cert.Data) ([]byte, error) {
	return []byte("%PDF"), nil
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := inmemdb.Open()
	require.NoError(t, err)

	mailSvc := emailsvc.NewConsoleServiceMock()
	store := testStore{}
	logger := testLogger{}

	accountSvc := account.NewService(inmemdb.NewAccountRepository(db), mailSvc)
	examSvc := exam.NewService(inmemdb.NewExamRepository(db), accountSvc, store)
	matchSetSvc := matchset.NewService(inmemdb.NewMatchSetRepository(db))
	taskSvc := task.NewService(inmemdb.NewTaskRepository(db), accountSvc)
	blogSvc := blog.NewService(inmemdb.NewBlogRepository(db), store)
	certSvc := cert.NewService(accountSvc, examSvc, testRenderer{}, store, logger)

	server := NewServer(&Options{
		Address:        ":0",
		DisableReqLogs: true,
		AccountSvc:     accountSvc,
		ExamSvc:        examSvc,
		MatchSetSvc:    matchSetSvc,
		TaskSvc:        taskSvc,
		BlogSvc:        blogSvc,
		CertSvc:        certSvc,
		MailSvc:        mailSvc,
		Store:          store,
		Logger:         logger,
	})
	return &testEnv{server: server, accountSvc: accountSvc, examSvc: examSvc}
}

func (env *testEnv) do(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if tt.body != nil {
		body.Write(tt.body)
	}
	req := httptest.NewRequest(tt.method, tt.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if tt.token != "" {
		req.Header.Set("Authorization", "Bearer "+tt.token)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	return rec
}

func (env *testEnv) adminToken(t *testing.T) string {
	_, err := env.accountSvc.RegisterAdmin(context.Background(), account.NewAdmin{
		Email:    "root@test.com",
		Password: "Secret123",
	})
	require.NoError(t, err)
	return env.loginToken(t, "root@test.com", "Secret123")
}

func (env *testEnv) loginToken(t *testing.T, email, pwd string) string {
	auth, err := env.accountSvc.Authenticate(context.Background(), email, pwd)
	require.NoError(t, err)
	token, err := GenerateToken(GetAuthClaims(auth, email))
	require.NoError(t, err)
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

var _ core.FileStore = testStore{}
