package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

type studentApi struct {
	deps ServerDeps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{deps: deps}

	sg := g.Group("/students", jwt)
	sg.POST("", api.create, adminMiddleware())
	sg.GET("", api.query, staffMiddleware())

	dg := sg.Group("/:id", selfOrStaffMiddleware("id"))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.GET("/courses", api.courses)
	dg.GET("/assignments", api.assignments)
	dg.GET("/courses/:courseID/grades", api.grades)
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.deps.Validate, api.deps.StudentSvc); err != nil {
		return err
	}

	std, err := api.deps.StudentSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) query(ctx echo.Context) error {
	stds, err := api.deps.StudentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if stds == nil {
		stds = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, stds)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.deps.StudentSvc.GetByID(intParam(ctx, "id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	std, err := api.deps.StudentSvc.GetByID(intParam(ctx, "id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.deps.Validate, api.deps.StudentSvc, std); err != nil {
		return err
	}

	std, err = api.deps.StudentSvc.Update(std.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.deps.AdminSvc.DeleteStudent(intParam(ctx, "id")); err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) courses(ctx echo.Context) error {
	crss, err := api.deps.EnrollmentSvc.CoursesForStudent(intParam(ctx, "id"))
	if err != nil {
		return errors.Wrap(err, "listing student courses")
	}
	if crss == nil {
		crss = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, crss)
}

func (api *studentApi) assignments(ctx echo.Context) error {
	rows, err := api.deps.AssignmentSvc.ForStudent(intParam(ctx, "id"))
	if err != nil {
		return errors.Wrap(err, "building student assignment dashboard")
	}
	if rows == nil {
		rows = []assignment.StudentAssignment{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *studentApi) grades(ctx echo.Context) error {
	grds, err := api.deps.GradeSvc.ForStudentCourse(intParam(ctx, "id"), intParam(ctx, "courseID"))
	if err != nil {
		return errors.Wrap(err, "listing student grades")
	}
	if grds == nil {
		grds = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grds)
}
