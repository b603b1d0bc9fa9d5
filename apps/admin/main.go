package main

import (
	"log"
	"os"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
	"github.com/enlightiq/enlightiq/services/email"
	"github.com/enlightiq/enlightiq/storage/database"
	"github.com/enlightiq/enlightiq/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()

	// start CLI
	cli := commandLine{
		db:         db,
		accountSvc: account.NewService(sqlxrepos.NewAccountRepository(db), emailsvc.NewConsoleService()),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
