package main

import (
	"github.com/enlightiq/enlightiq/storage/database"
)

var migrateFunc = database.Migrate // mockable

func (cli *commandLine) migrate(args []string) error {
	// only "up" is wired; goose tracks applied versions itself
	_ = args
	return migrateFunc(cli.db)
}
