package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

type gradeApi struct {
	deps ServerDeps
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := gradeApi{deps: deps}

	gg := g.Group("/grades", jwt, staffMiddleware())
	gg.POST("", api.upsert)
	gg.GET("", api.query)
	gg.GET("/assignment", api.forAssignment)
}

// Handlers

// upsert records a grade, overwriting any previous grade held by the same
// student for the same assignment name in the same course.
func (api *gradeApi) upsert(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	var teacherID int
	if claims.IsTeacher {
		teacherID = claims.PrincipalID()
	}

	grd, err := api.deps.GradeSvc.Upsert(data, teacherID)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusOK, grd)
}

func (api *gradeApi) query(ctx echo.Context) error {
	studentID, err := intQueryParam(ctx, "student_id")
	if err != nil {
		return err
	}
	courseID, err := intQueryParam(ctx, "course_id")
	if err != nil {
		return err
	}

	grds, err := api.deps.GradeSvc.ForStudentCourse(studentID, courseID)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grds == nil {
		grds = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grds)
}

func (api *gradeApi) forAssignment(ctx echo.Context) error {
	studentID, err := intQueryParam(ctx, "student_id")
	if err != nil {
		return err
	}
	courseID, err := intQueryParam(ctx, "course_id")
	if err != nil {
		return err
	}

	grd, err := api.deps.GradeSvc.ForAssignment(studentID, courseID, ctx.QueryParam("assignment"))
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding grade by assignment")
	}
	return ctx.JSON(http.StatusOK, grd)
}
