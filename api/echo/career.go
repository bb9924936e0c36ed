package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/starville/academy/core/career"
)

type careerApi struct {
	svc *career.Service
}

func registerCareerAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *career.Service) {
	api := careerApi{svc: svc}

	cg := g.Group("/careers")

	// un-authed endpoints
	cg.GET("/openings", api.queryActiveOpenings)
	cg.POST("/applications", api.submitApplication)

	// authed endpoints; jwt goes on each route since a same-prefix
	// subgroup would shadow the un-authed routes above
	cg.GET("/openings/all", api.queryAllOpenings, jwt, backOfficeMiddleware())
	cg.POST("/openings", api.createOpening, jwt, adminMiddleware())
	cg.GET("/openings/:id", api.retrieveOpening, jwt, backOfficeMiddleware())
	cg.PUT("/openings/:id", api.updateOpening, jwt, adminMiddleware())
	cg.POST("/openings/:id/toggle", api.toggleOpening, jwt, adminMiddleware())
	cg.DELETE("/openings/:id", api.destroyOpening, jwt, adminMiddleware())

	cg.GET("/applications", api.queryApplications, jwt, backOfficeMiddleware())
	cg.GET("/applications/:id", api.retrieveApplication, jwt, backOfficeMiddleware())
	cg.PUT("/applications/:id/status", api.updateApplicationStatus, jwt, adminMiddleware())
	cg.DELETE("/applications/:id", api.destroyApplication, jwt, adminMiddleware())
}

// Opening handlers

func (api *careerApi) queryActiveOpenings(ctx echo.Context) error {
	ops, err := api.svc.QueryActiveOpenings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying active job openings")
	}
	if ops == nil {
		ops = []career.Opening{}
	}
	return ctx.JSON(http.StatusOK, ops)
}

func (api *careerApi) queryAllOpenings(ctx echo.Context) error {
	ops, err := api.svc.QueryAllOpenings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying job openings")
	}
	if ops == nil {
		ops = []career.Opening{}
	}
	return ctx.JSON(http.StatusOK, ops)
}

func (api *careerApi) createOpening(ctx echo.Context) error {
	var data career.NewOpening
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOpening")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	op, err := api.svc.CreateOpening(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating job opening")
	}
	return ctx.JSON(http.StatusCreated, op)
}

func (api *careerApi) retrieveOpening(ctx echo.Context) error {
	op, err := api.svc.GetOpeningByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding job opening by ID")
	}
	return ctx.JSON(http.StatusOK, op)
}

func (api *careerApi) updateOpening(ctx echo.Context) error {
	var data career.UpdateOpening
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateOpening")
	}

	op, err := api.svc.UpdateOpening(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating job opening")
	}
	return ctx.JSON(http.StatusOK, op)
}

func (api *careerApi) toggleOpening(ctx echo.Context) error {
	op, err := api.svc.ToggleOpeningActive(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "toggling job opening")
	}
	return ctx.JSON(http.StatusOK, op)
}

func (api *careerApi) destroyOpening(ctx echo.Context) error {
	if err := api.svc.DeleteOpenings(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting job opening")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Application handlers

func (api *careerApi) submitApplication(ctx echo.Context) error {
	var data career.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	resume, closer, err := formUpload(ctx, "resume")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	app, err := api.svc.SubmitApplication(ctx.Request().Context(), data, resume)
	if err != nil {
		return errors.Wrap(err, "submitting job application")
	}
	return ctx.JSON(http.StatusCreated, app)
}

func (api *careerApi) queryApplications(ctx echo.Context) error {
	var apps []career.Application
	var err error
	if openingID := ctx.QueryParam("opening_id"); openingID != "" {
		apps, err = api.svc.QueryApplicationsByOpening(ctx.Request().Context(), openingID)
	} else {
		apps, err = api.svc.QueryAllApplications(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying job applications")
	}
	if apps == nil {
		apps = []career.Application{}
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *careerApi) retrieveApplication(ctx echo.Context) error {
	app, err := api.svc.GetApplicationByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding job application by ID")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *careerApi) updateApplicationStatus(ctx echo.Context) error {
	var data career.UpdateApplicationStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateApplicationStatus")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	app, err := api.svc.UpdateApplicationStatus(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating job application status")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *careerApi) destroyApplication(ctx echo.Context) error {
	if err := api.svc.DeleteApplications(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting job application")
	}
	return ctx.NoContent(http.StatusNoContent)
}
