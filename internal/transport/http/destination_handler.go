package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
}

func RegisterDestinations(e *echo.Echo, auth *service.AuthService, destinations *service.DestinationService) {
	h := &DestinationHandler{destinations: destinations}

	g := e.Group("/api/destinations")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	admin := g.Group("", RequireAuth(auth), RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *DestinationHandler) list(c echo.Context) error {
	featured := c.QueryParam("featured") == "true"
	destinations, err := h.destinations.List(c.Request().Context(), featured)
	if err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKList(destinations, len(destinations)))
}

func (h *DestinationHandler) get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Destination not found"))
	}
	dest, err := h.destinations.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, service.ErrDestinationNotFound, "Destination not found")
	}
	return c.JSON(http.StatusOK, util.OK(dest))
}

func (h *DestinationHandler) create(c echo.Context) error {
	input, closer, err := destinationInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	dest, err := h.destinations.Create(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err, service.ErrDestinationNotFound, "Destination not found")
	}
	return c.JSON(http.StatusCreated, util.OKMessage("Destination created successfully", dest))
}

func (h *DestinationHandler) update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Destination not found"))
	}
	input, closer, err := destinationInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	dest, err := h.destinations.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err, service.ErrDestinationNotFound, "Destination not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Destination updated successfully", dest))
}

func (h *DestinationHandler) delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Destination not found"))
	}
	if err := h.destinations.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, service.ErrDestinationNotFound, "Destination not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Destination removed", util.Envelope{"id": id}))
}

func destinationInput(c echo.Context) (service.DestinationInput, io.Closer, error) {
	upload, closer, err := formUpload(c, "image")
	if err != nil {
		return service.DestinationInput{}, nil, err
	}
	return service.DestinationInput{
		Title:       formField(c, "title"),
		Description: formField(c, "description"),
		Price:       formField(c, "price"),
		Rating:      formField(c, "rating"),
		Color:       formField(c, "color"),
		Featured:    formField(c, "featured"),
		Tags:        formField(c, "tags"),
		Highlights:  formField(c, "highlights"),
		ImageURL:    formField(c, "image"),
		Image:       upload,
	}, closer, nil
}
