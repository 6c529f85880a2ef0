package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/enrollment"
)

type assignmentApi struct {
	deps ServerDeps
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := assignmentApi{deps: deps}

	ag := g.Group("/assignments", jwt)
	ag.POST("", api.create, staffMiddleware())
	ag.GET("", api.query, staffMiddleware())

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, staffMiddleware())
	dg.DELETE("", api.destroy, staffMiddleware())
	dg.POST("/complete", api.markDone)
	dg.GET("/status", api.status)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
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

	asg, err := api.deps.AssignmentSvc.Create(data, teacherID)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	var asgs []assignment.Assignment
	var err error
	if courseID, perr := intQueryParam(ctx, "course_id"); perr == nil && courseID > 0 {
		asgs, err = api.deps.AssignmentSvc.QueryByCourseID(courseID)
	} else {
		asgs, err = api.deps.AssignmentSvc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asg, err := api.deps.AssignmentSvc.GetByID(intParam(ctx, "id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding assignment by ID")
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	asg, err := api.deps.AssignmentSvc.GetByID(intParam(ctx, "id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding assignment by ID")
	}

	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(api.deps.Validate, asg); err != nil {
		return err
	}

	asg, err = api.deps.AssignmentSvc.Update(asg.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	if err := api.deps.AdminSvc.DeleteAssignment(intParam(ctx, "id")); err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// markDone flags the calling student's completion of the assignment. Staff
// may complete on a student's behalf via the student_id query param.
func (api *assignmentApi) markDone(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	studentID := claims.PrincipalID()
	if !claims.IsStudent {
		var data CompleteRequest
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to CompleteRequest")
		}
		if err := api.deps.Validate.Struct(&data); err != nil {
			return err
		}
		studentID = data.StudentID
	}

	cmp, err := api.deps.AssignmentSvc.MarkDone(intParam(ctx, "id"), studentID)
	if err != nil {
		switch errors.Cause(err) {
		case assignment.ErrNotFound, enrollment.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "marking assignment completion")
	}
	return ctx.JSON(http.StatusOK, cmp)
}

// status reports the calling student's standing on the assignment, or any
// student's when queried by staff.
func (api *assignmentApi) status(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	studentID := claims.PrincipalID()
	if !claims.IsStudent {
		if id, err := intQueryParam(ctx, "student_id"); err == nil {
			studentID = id
		} else {
			return err
		}
	}

	status, err := api.deps.AssignmentSvc.StatusFor(intParam(ctx, "id"), studentID)
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting assignment status")
	}
	return ctx.JSON(http.StatusOK, StatusResponse{Status: status})
}

type (
	CompleteRequest struct {
		StudentID int `json:"student_id" validate:"required"`
	}

	StatusResponse struct {
		Status string `json:"status"`
	}
)
