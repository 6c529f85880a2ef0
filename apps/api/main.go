package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/admin"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/teacher"
	"github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	"github.com/trezcool/darasa/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.Conf

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Fatal("failed to close DB", err)
		}
	}()
	sdb := sqlx.NewDb(db, conf.Database.Engine)

	// set up mail
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	// set up repositories
	studentRepo := sqlxrepos.NewStudentRepository(sdb)
	teacherRepo := sqlxrepos.NewTeacherRepository(sdb)
	adminRepo := sqlxrepos.NewAdminRepository(sdb)
	courseRepo := sqlxrepos.NewCourseRepository(sdb)
	enrollmentRepo := sqlxrepos.NewEnrollmentRepository(sdb)
	assignmentRepo := sqlxrepos.NewAssignmentRepository(sdb)
	completionRepo := sqlxrepos.NewCompletionRepository(sdb)
	gradeRepo := sqlxrepos.NewGradeRepository(sdb)

	// set up services
	studentSvc := student.NewService(studentRepo)
	teacherSvc := teacher.NewService(teacherRepo)
	courseSvc := course.NewService(courseRepo, teacherRepo)
	enrollmentSvc := enrollment.NewService(enrollmentRepo, studentRepo, courseRepo, completionRepo, gradeRepo, logger)
	assignmentSvc := assignment.NewService(assignmentRepo, completionRepo, enrollmentRepo, courseRepo, logger)
	gradeSvc := grade.NewService(gradeRepo, studentRepo, mailSvc)
	adminSvc := admin.NewService(
		adminRepo, studentRepo, teacherRepo, courseRepo,
		assignmentRepo, completionRepo, enrollmentRepo, gradeRepo, logger,
	)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Addr:          conf.ServerAddress(),
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			StudentSvc:    studentSvc,
			TeacherSvc:    teacherSvc,
			AdminSvc:      adminSvc,
			CourseSvc:     courseSvc,
			EnrollmentSvc: enrollmentSvc,
			AssignmentSvc: assignmentSvc,
			GradeSvc:      gradeSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
