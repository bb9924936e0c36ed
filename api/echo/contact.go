package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/starville/academy/core/contact"
)

type contactApi struct {
	svc *contact.Service
}

func registerContactAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *contact.Service) {
	api := contactApi{svc: svc}

	cg := g.Group("/contact")

	// un-authed endpoints
	cg.POST("", api.submit)

	// authed endpoints; jwt goes on each route since a same-prefix
	// subgroup would shadow the un-authed submit above
	cg.GET("", api.query, jwt, backOfficeMiddleware())
	cg.DELETE("", api.destroyMultiple, jwt, adminMiddleware())
	cg.GET("/:id", api.retrieve, jwt, backOfficeMiddleware())
	cg.PUT("/:id/status", api.updateStatus, jwt, adminMiddleware())
	cg.DELETE("/:id", api.destroy, jwt, adminMiddleware())
}

// Handlers

func (api *contactApi) submit(ctx echo.Context) error {
	var data contact.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	msg, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting contact message")
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *contactApi) query(ctx echo.Context) error {
	var msgs []contact.Message
	var err error
	if status := ctx.QueryParam("status"); status != "" {
		msgs, err = api.svc.QueryByStatus(ctx.Request().Context(), status)
	} else {
		msgs, err = api.svc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying contact messages")
	}
	if msgs == nil {
		msgs = []contact.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *contactApi) retrieve(ctx echo.Context) error {
	msg, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding contact message by ID")
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *contactApi) updateStatus(ctx echo.Context) error {
	var data contact.UpdateStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStatus")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	msg, err := api.svc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating contact message status")
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *contactApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting contact message")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contactApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting contact messages")
	}
	return ctx.NoContent(http.StatusNoContent)
}
