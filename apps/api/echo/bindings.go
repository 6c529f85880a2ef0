package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
)

// intParam parses a numeric path parameter; a garbled value reads as 0.
func intParam(ctx echo.Context, name string) int {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0
	}
	return id
}

// intQueryParam parses a numeric query parameter.
func intQueryParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: name, Error: "a valid number is required"})
	}
	return id, nil
}

type SuccessResponse struct {
	Success string `json:"success"`
}
