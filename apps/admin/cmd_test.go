package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"github.com/trezcool/darasa/core/admin"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
	"github.com/trezcool/darasa/storage/database/inmem"
)

var (
	admRepo admin.Repository
	stdRepo student.Repository
	tchRepo teacher.Repository
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	db := inmemdb.Open()
	admRepo = inmemdb.NewAdminRepository(db)
	stdRepo = inmemdb.NewStudentRepository(db)
	tchRepo = inmemdb.NewTeacherRepository(db)

	// start CLI
	return &commandLine{
		adminRepo:   admRepo,
		studentRepo: stdRepo,
		teacherRepo: tchRepo,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "missing email", args: []string{"addadmin", "-name", "Root", "-username", "rootoo"}, wantErr: errHelp},
		{name: "no password", args: []string{"addadmin", "-name", "Root", "-username", "rootoo", "-email", "root@darasa.cd"}, wantErr: errHelp},
		{name: "ok", args: []string{"addadmin", "-name", "Root", "-username", "rootoo", "-email", "root@darasa.cd"}, extra: extra{pwd: "mdr"}},
		{name: "duplicate username", args: []string{"addadmin", "-name", "Root", "-username", "rootoo", "-email", "other@darasa.cd"}, extra: extra{pwd: "mdr"}, wantErr: admin.ErrUsernameExists},
		{name: "duplicate email", args: []string{"addadmin", "-name", "Root", "-username", "rootwo", "-email", "root@darasa.cd"}, extra: extra{pwd: "mdr"}, wantErr: admin.ErrEmailExists},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				adm, err := admRepo.GetAdminByUsername("rootoo")
				if err != nil {
					t.Fatalf("GetAdminByUsername() failed, %v", err)
				}
				if err := adm.CheckPassword("mdr"); err != nil {
					t.Error("failed to set password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	std := student.Student{Name: "Student", Username: "awesome", Email: "awe@darasa.cd"}
	if err := std.SetPassword("mdr"); err != nil {
		t.Fatal(err)
	}
	std, err := stdRepo.CreateStudent(std)
	if err != nil {
		t.Fatal(err)
	}
	tch := teacher.Teacher{Name: "Teacher", Username: "mwalimu", Email: "mwl@darasa.cd"}
	if err := tch.SetPassword("mdr"); err != nil {
		t.Fatal(err)
	}
	tch, err = tchRepo.CreateTeacher(tch)
	if err != nil {
		t.Fatal(err)
	}
	adm := admin.Admin{Name: "Admin", Username: "msimamizi", Email: "adm@darasa.cd"}
	if err := adm.SetPassword("mdr"); err != nil {
		t.Fatal(err)
	}
	adm, err = admRepo.CreateAdmin(adm)
	if err != nil {
		t.Fatal(err)
	}

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "account not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: admin.ErrNotFound},
		{name: "reset student", args: []string{"resetpassword", "-username", std.Username}, extra: extra{pwd: "lol"}},
		{name: "reset teacher", args: []string{"resetpassword", "-username", tch.Username}, extra: extra{pwd: "lol"}},
		{name: "reset admin", args: []string{"resetpassword", "-username", adm.Username}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			switch tt.name {
			case "reset student":
				refreshed, err := stdRepo.GetStudentByID(std.ID)
				if err != nil {
					t.Fatalf("GetStudentByID() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, std.PasswordHash) {
					t.Error("failed to update new password")
				}
			case "reset teacher":
				refreshed, err := tchRepo.GetTeacherByID(tch.ID)
				if err != nil {
					t.Fatalf("GetTeacherByID() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, tch.PasswordHash) {
					t.Error("failed to update new password")
				}
			case "reset admin":
				refreshed, err := admRepo.GetAdminByID(adm.ID)
				if err != nil {
					t.Fatalf("GetAdminByID() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, adm.PasswordHash) {
					t.Error("failed to update new password")
				}
			}
		})
	}
}
