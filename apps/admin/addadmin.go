package main

import (
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/admin"
)

// addAdmin creates a new admin account.
func (cli *commandLine) addAdmin(name, uname, email, pwd string) error {
	now := time.Now().UTC()
	adm := admin.Admin{
		Name:      core.CleanString(name),
		Username:  core.CleanString(uname, true /* lower */),
		Email:     core.CleanString(email, true /* lower */),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := cli.adminRepo.CheckUniqueness(adm.Username, adm.Email); err != nil {
		return err
	}
	if err := adm.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.adminRepo.CreateAdmin(adm)
	return err
}
