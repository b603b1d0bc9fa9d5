package main

import (
	"log"
	"os"

	"github.com/enlightiq/enlightiq/apps/api/echo"
	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/core/blog"
	"github.com/enlightiq/enlightiq/core/cert"
	"github.com/enlightiq/enlightiq/core/exam"
	"github.com/enlightiq/enlightiq/core/matchset"
	"github.com/enlightiq/enlightiq/core/task"
	"github.com/enlightiq/enlightiq/services/email"
	"github.com/enlightiq/enlightiq/services/logger"
	"github.com/enlightiq/enlightiq/services/pdf"
	"github.com/enlightiq/enlightiq/services/storage"
	"github.com/enlightiq/enlightiq/storage/database"
	"github.com/enlightiq/enlightiq/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	store := storagesvc.NewSupabaseStore(core.Conf)

	accountSvc := account.NewService(sqlxrepos.NewAccountRepository(db), mailSvc)
	examSvc := exam.NewService(sqlxrepos.NewExamRepository(db), accountSvc, store)
	matchSetSvc := matchset.NewService(sqlxrepos.NewMatchSetRepository(db))
	taskSvc := task.NewService(sqlxrepos.NewTaskRepository(db), accountSvc)
	blogSvc := blog.NewService(sqlxrepos.NewBlogRepository(db), store)
	certSvc := cert.NewService(accountSvc, examSvc, pdfsvc.NewFpdfRenderer(core.Conf.AppName), store, logger)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:     ":8000",
			AccountSvc:  accountSvc,
			ExamSvc:     examSvc,
			MatchSetSvc: matchSetSvc,
			TaskSvc:     taskSvc,
			BlogSvc:     blogSvc,
			CertSvc:     certSvc,
			MailSvc:     mailSvc,
			Store:       store,
			Logger:      logger,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
