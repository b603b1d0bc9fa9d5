package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/blog"
	"github.com/enlightiq/enlightiq/core/cert"
	"github.com/enlightiq/enlightiq/core/exam"
	"github.com/enlightiq/enlightiq/core/matchset"
	"github.com/enlightiq/enlightiq/core/task"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		AccountSvc  *account.Service
		ExamSvc     *exam.Service
		MatchSetSvc *matchset.Service
		TaskSvc     *task.Service
		BlogSvc     *blog.Service
		CertSvc     *cert.Service
		MailSvc     core.EmailService
		Store       core.FileStore
		Logger      core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAccountAPI(api, jwt, s.opts.AccountSvc)
	registerExamAPI(api, jwt, s.opts.ExamSvc)
	registerMatchSetAPI(api, jwt, s.opts.MatchSetSvc)
	registerTaskAPI(api, jwt, s.opts.TaskSvc, s.opts.AccountSvc)
	registerBlogAPI(api, jwt, s.opts.BlogSvc)
	registerContactAPI(api, s.opts.MailSvc)
	registerCertAPI(api, jwt, s.opts.CertSvc)
	registerUploadAPI(api, jwt, s.opts.Store)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}
