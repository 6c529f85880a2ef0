package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/admin"
)

type adminApi struct {
	deps ServerDeps
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := adminApi{deps: deps}

	ag := g.Group("/admins", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
}

// Handlers

func (api *adminApi) create(ctx echo.Context) error {
	var data admin.NewAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmin")
	}
	if err := data.Validate(api.deps.Validate, api.deps.AdminSvc); err != nil {
		return err
	}

	adm, err := api.deps.AdminSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating admin")
	}
	return ctx.JSON(http.StatusCreated, adm)
}

func (api *adminApi) query(ctx echo.Context) error {
	adms, err := api.deps.AdminSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying admins")
	}
	if adms == nil {
		adms = []admin.Admin{}
	}
	return ctx.JSON(http.StatusOK, adms)
}

func (api *adminApi) retrieve(ctx echo.Context) error {
	adm, err := api.deps.AdminSvc.GetByID(intParam(ctx, "id"))
	if err != nil {
		if errors.Cause(err) == admin.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding admin by ID")
	}
	return ctx.JSON(http.StatusOK, adm)
}
