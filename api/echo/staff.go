package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/starville/academy/core/staff"
)

type staffApi struct {
	svc *staff.Service
}

func registerStaffAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *staff.Service) {
	api := staffApi{svc: svc}

	sg := g.Group("/staff")

	// un-authed endpoints
	sg.GET("", api.queryActive)
	sg.GET("/key", api.queryKeyStaff)
	sg.GET("/proprietress", api.retrieveProprietress)

	// authed endpoints; jwt goes on each route since a same-prefix
	// subgroup would shadow the un-authed listings above
	sg.GET("/all", api.queryAll, jwt, backOfficeMiddleware())
	sg.POST("", api.create, jwt, adminMiddleware())
	sg.GET("/:id", api.retrieve, jwt, backOfficeMiddleware())
	sg.PUT("/:id", api.update, jwt, adminMiddleware())
	sg.POST("/:id/move", api.move, jwt, adminMiddleware())
	sg.DELETE("/:id", api.destroy, jwt, adminMiddleware())
}

// Handlers

func (api *staffApi) queryActive(ctx echo.Context) error {
	members, err := api.svc.QueryActive(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying active staff")
	}
	if members == nil {
		members = []staff.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *staffApi) queryKeyStaff(ctx echo.Context) error {
	members, err := api.svc.QueryKeyStaff(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying key staff")
	}
	if members == nil {
		members = []staff.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *staffApi) retrieveProprietress(ctx echo.Context) error {
	member, err := api.svc.GetProprietress(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "finding proprietress")
	}
	return ctx.JSON(http.StatusOK, member)
}

func (api *staffApi) queryAll(ctx echo.Context) error {
	members, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying staff")
	}
	if members == nil {
		members = []staff.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data staff.NewMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMember")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	photo, closer, err := formUpload(ctx, "photo")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	member, err := api.svc.Create(ctx.Request().Context(), data, photo)
	if err != nil {
		return errors.Wrap(err, "creating staff member")
	}
	return ctx.JSON(http.StatusCreated, member)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	member, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding staff member by ID")
	}
	return ctx.JSON(http.StatusOK, member)
}

func (api *staffApi) update(ctx echo.Context) error {
	var data staff.UpdateMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMember")
	}

	photo, closer, err := formUpload(ctx, "photo")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	member, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data, photo)
	if err != nil {
		return errors.Wrap(err, "updating staff member")
	}
	return ctx.JSON(http.StatusOK, member)
}

func (api *staffApi) move(ctx echo.Context) error {
	var data staff.MoveMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MoveMember")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.Move(ctx.Request().Context(), ctx.Param("id"), data); err != nil {
		return errors.Wrap(err, "moving staff member")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting staff member")
	}
	return ctx.NoContent(http.StatusNoContent)
}
