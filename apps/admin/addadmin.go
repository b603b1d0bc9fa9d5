package main

import (
	"context"

	"github.com/enlightiq/enlightiq/core"
	"github.com/enlightiq/enlightiq/core/account"
)

func (cli *commandLine) addAdmin(email, pwd string) error {
	na := account.NewAdmin{
		Email:    core.CleanString(email, true /* lower */),
		Password: pwd,
	}
	if err := na.Validate(); err != nil {
		return err
	}
	adm, err := cli.accountSvc.RegisterAdmin(context.Background(), na)
	if err != nil {
		return err
	}
	logger.Printf("admin %d (%s) created", adm.ID, adm.Email)
	return nil
}
