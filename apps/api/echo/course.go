package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
	"github.com/trezcool/darasa/core/student"
)

type courseApi struct {
	deps ServerDeps
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{deps: deps}

	cg := g.Group("/courses", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, adminMiddleware())

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.GET("/students", api.students, staffMiddleware())
	dg.POST("/enrollments", api.enroll, staffMiddleware())
	dg.DELETE("/enrollments/:studentID", api.unenroll, staffMiddleware())
}

// Handlers

// query lists courses, optionally filtered by a search keyword and sorted by
// one of name, code, teacher or schedule.
func (api *courseApi) query(ctx echo.Context) error {
	views, err := api.deps.CourseSvc.Views()
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	views = course.Filter(views, ctx.QueryParam("search"))
	views = course.Sort(views, ctx.QueryParam("sort"))
	if views == nil {
		views = []course.View{}
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.deps.Validate, api.deps.CourseSvc); err != nil {
		return err
	}

	crs, err := api.deps.CourseSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.deps.CourseSvc.GetByID(intParam(ctx, "id"))
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, err := api.deps.CourseSvc.GetByID(intParam(ctx, "id"))
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.deps.Validate, api.deps.CourseSvc, crs); err != nil {
		return err
	}

	crs, err = api.deps.CourseSvc.Update(crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.deps.AdminSvc.DeleteCourse(intParam(ctx, "id")); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) students(ctx echo.Context) error {
	stds, err := api.deps.EnrollmentSvc.StudentsForCourse(intParam(ctx, "id"))
	if err != nil {
		return errors.Wrap(err, "listing course students")
	}
	if stds == nil {
		stds = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, stds)
}

func (api *courseApi) enroll(ctx echo.Context) error {
	var data EnrollRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EnrollRequest")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	enr, err := api.deps.EnrollmentSvc.Enroll(data.StudentID, intParam(ctx, "id"))
	if err != nil {
		switch errors.Cause(err) {
		case student.ErrNotFound, course.ErrNotFound:
			return errHttpNotFound
		case enrollment.ErrAlreadyEnrolled:
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *courseApi) unenroll(ctx echo.Context) error {
	if err := api.deps.EnrollmentSvc.Unenroll(intParam(ctx, "studentID"), intParam(ctx, "id")); err != nil {
		return errors.Wrap(err, "unenrolling student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type EnrollRequest struct {
	StudentID int `json:"student_id" validate:"required"`
}
