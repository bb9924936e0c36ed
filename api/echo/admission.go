package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/starville/academy/core/admission"
)

type admissionApi struct {
	svc *admission.Service
}

func registerAdmissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *admission.Service) {
	api := admissionApi{svc: svc}

	ag := g.Group("/admissions")

	// un-authed endpoints
	ag.POST("", api.submit)

	// authed endpoints; jwt goes on each route since a same-prefix
	// subgroup would shadow the un-authed submit above
	ag.GET("", api.query, jwt, backOfficeMiddleware())
	ag.GET("/stats", api.stats, jwt, backOfficeMiddleware())
	ag.DELETE("", api.destroyMultiple, jwt, adminMiddleware())
	ag.GET("/:id", api.retrieve, jwt, backOfficeMiddleware())
	ag.PUT("/:id/status", api.updateStatus, jwt, adminMiddleware())
	ag.DELETE("/:id", api.destroy, jwt, adminMiddleware())
}

// Handlers

func (api *admissionApi) submit(ctx echo.Context) error {
	var data admission.NewAdmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmission")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	adm, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting admission application")
	}
	return ctx.JSON(http.StatusCreated, adm)
}

func (api *admissionApi) query(ctx echo.Context) error {
	filter := new(admission.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []admission.Admission{})
	}

	var adms []admission.Admission
	var err error
	if filter.IsEmpty() {
		adms, err = api.svc.QueryAll(ctx.Request().Context())
	} else {
		adms, err = api.svc.Filter(ctx.Request().Context(), *filter)
	}
	if err != nil {
		return errors.Wrap(err, "querying admission applications")
	}
	if adms == nil {
		adms = []admission.Admission{}
	}
	return ctx.JSON(http.StatusOK, adms)
}

func (api *admissionApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing admission stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *admissionApi) retrieve(ctx echo.Context) error {
	adm, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding admission application by ID")
	}
	return ctx.JSON(http.StatusOK, adm)
}

func (api *admissionApi) updateStatus(ctx echo.Context) error {
	var data admission.UpdateStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStatus")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	adm, err := api.svc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating admission status")
	}
	return ctx.JSON(http.StatusOK, adm)
}

func (api *admissionApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting admission application")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *admissionApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting admission applications")
	}
	return ctx.NoContent(http.StatusNoContent)
}
