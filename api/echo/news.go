package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/starville/academy/core/news"
)

type newsApi struct {
	svc *news.Service
}

func registerNewsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *news.Service) {
	api := newsApi{svc: svc}

	ng := g.Group("/news")

	// un-authed endpoints
	ng.GET("", api.queryPublishedUpdates)
	ng.GET("/featured", api.queryFeaturedUpdates)

	// authed endpoints; jwt goes on each route since a same-prefix
	// subgroup would shadow the un-authed listings above
	ng.GET("/all", api.queryAllUpdates, jwt, backOfficeMiddleware())
	ng.POST("", api.createUpdate, jwt, adminMiddleware())
	ng.GET("/:id", api.retrieveUpdate, jwt, backOfficeMiddleware())
	ng.PUT("/:id", api.updateUpdate, jwt, adminMiddleware())
	ng.DELETE("/:id", api.destroyUpdate, jwt, adminMiddleware())

	ag := g.Group("/announcements")

	// un-authed endpoints
	ag.GET("", api.queryActiveAnnouncements)

	// authed endpoints
	ag.GET("/all", api.queryAllAnnouncements, jwt, backOfficeMiddleware())
	ag.POST("", api.createAnnouncement, jwt, adminMiddleware())
	ag.PUT("/:id", api.updateAnnouncement, jwt, adminMiddleware())
	ag.POST("/:id/toggle", api.toggleAnnouncement, jwt, adminMiddleware())
	ag.DELETE("/:id", api.destroyAnnouncement, jwt, adminMiddleware())
}

// Update handlers

func (api *newsApi) queryPublishedUpdates(ctx echo.Context) error {
	updates, err := api.svc.QueryPublishedUpdates(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying published news updates")
	}
	if updates == nil {
		updates = []news.Update{}
	}
	return ctx.JSON(http.StatusOK, updates)
}

func (api *newsApi) queryFeaturedUpdates(ctx echo.Context) error {
	updates, err := api.svc.QueryFeaturedUpdates(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying featured news updates")
	}
	if updates == nil {
		updates = []news.Update{}
	}
	return ctx.JSON(http.StatusOK, updates)
}

func (api *newsApi) queryAllUpdates(ctx echo.Context) error {
	updates, err := api.svc.QueryAllUpdates(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying news updates")
	}
	if updates == nil {
		updates = []news.Update{}
	}
	return ctx.JSON(http.StatusOK, updates)
}

func (api *newsApi) createUpdate(ctx echo.Context) error {
	var data news.NewUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUpdate")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	image, closer, err := formUpload(ctx, "image")
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	update, err := api.svc.CreateUpdate(ctx.Request().Context(), data, image)
	if err != nil {
		return errors.Wrap(err, "creating news update")
	}
	return ctx.JSON(http.StatusCreated, update)
}

func (api *newsApi) retrieveUpdate(ctx echo.Context) error {
	update, err := api.svc.GetUpdateByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding news update by ID")
	}
	return ctx.JSON(http.StatusOK, update)
}

func (api *newsApi) updateUpdate(ctx echo.Context) error {
	var data news.UpdateUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUpdate")
	}

	update, err := api.svc.UpdateUpdate(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating news update")
	}
	return ctx.JSON(http.StatusOK, update)
}

func (api *newsApi) destroyUpdate(ctx echo.Context) error {
	if err := api.svc.DeleteUpdates(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting news update")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Announcement handlers

func (api *newsApi) queryActiveAnnouncements(ctx echo.Context) error {
	anns, err := api.svc.QueryActiveAnnouncements(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying active announcements")
	}
	if anns == nil {
		anns = []news.Announcement{}
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *newsApi) queryAllAnnouncements(ctx echo.Context) error {
	anns, err := api.svc.QueryAllAnnouncements(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	if anns == nil {
		anns = []news.Announcement{}
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *newsApi) createAnnouncement(ctx echo.Context) error {
	var data news.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ann, err := api.svc.CreateAnnouncement(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	return ctx.JSON(http.StatusCreated, ann)
}

func (api *newsApi) updateAnnouncement(ctx echo.Context) error {
	var data news.UpdateAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAnnouncement")
	}

	ann, err := api.svc.UpdateAnnouncement(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating announcement")
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *newsApi) toggleAnnouncement(ctx echo.Context) error {
	ann, err := api.svc.ToggleAnnouncementActive(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "toggling announcement")
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *newsApi) destroyAnnouncement(ctx echo.Context) error {
	if err := api.svc.DeleteAnnouncements(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
