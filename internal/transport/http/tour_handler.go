package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

type TourHandler struct {
	tours *service.TourService
}

func RegisterTours(e *echo.Echo, auth *service.AuthService, tours *service.TourService) {
	h := &TourHandler{tours: tours}

	g := e.Group("/api/tours")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	admin := g.Group("", RequireAuth(auth), RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *TourHandler) list(c echo.Context) error {
	featured := c.QueryParam("featured") == "true"
	tours, err := h.tours.List(c.Request().Context(), featured)
	if err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKList(tours, len(tours)))
}

func (h *TourHandler) get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Tour not found"))
	}
	tour, err := h.tours.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, service.ErrTourNotFound, "Tour not found")
	}
	return c.JSON(http.StatusOK, util.OK(tour))
}

func (h *TourHandler) create(c echo.Context) error {
	input, closer, err := tourInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	tour, err := h.tours.Create(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err, service.ErrTourNotFound, "Tour not found")
	}
	return c.JSON(http.StatusCreated, util.OKMessage("Tour created successfully", tour))
}

func (h *TourHandler) update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Tour not found"))
	}
	input, closer, err := tourInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	tour, err := h.tours.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err, service.ErrTourNotFound, "Tour not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Tour updated successfully", tour))
}

func (h *TourHandler) delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Tour not found"))
	}
	if err := h.tours.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, service.ErrTourNotFound, "Tour not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Tour removed", util.Envelope{"id": id}))
}

func tourInput(c echo.Context) (service.TourInput, io.Closer, error) {
	upload, closer, err := formUpload(c, "image")
	if err != nil {
		return service.TourInput{}, nil, err
	}
	return service.TourInput{
		Title:       formField(c, "title"),
		Description: formField(c, "description"),
		Days:        formField(c, "days"),
		Price:       formField(c, "price"),
		Rating:      formField(c, "rating"),
		Color:       formField(c, "color"),
		Featured:    formField(c, "featured"),
		Features:    formField(c, "features"),
		Locations:   formField(c, "locations"),
		ImageURL:    formField(c, "image"),
		Image:       upload,
	}, closer, nil
}
