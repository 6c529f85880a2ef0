package main

import (
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
)

// resetPassword looks the username up in the student, teacher and admin
// accounts in that order, and resets the first match's password.
func (cli *commandLine) resetPassword(uname, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)
	now := time.Now().UTC()

	std, err := cli.studentRepo.GetStudentByUsername(uname)
	if err == nil {
		if err = std.SetPassword(pwd); err != nil {
			return err
		}
		std.UpdatedAt = now
		_, err = cli.studentRepo.UpdateStudent(std)
		return err
	}
	if err != student.ErrNotFound {
		return err
	}

	tch, err := cli.teacherRepo.GetTeacherByUsername(uname)
	if err == nil {
		if err = tch.SetPassword(pwd); err != nil {
			return err
		}
		tch.UpdatedAt = now
		_, err = cli.teacherRepo.UpdateTeacher(tch)
		return err
	}
	if err != teacher.ErrNotFound {
		return err
	}

	adm, err := cli.adminRepo.GetAdminByUsername(uname)
	if err != nil {
		return err
	}
	if err = adm.SetPassword(pwd); err != nil {
		return err
	}
	adm.UpdatedAt = now
	_, err = cli.adminRepo.UpdateAdmin(adm)
	return err
}
