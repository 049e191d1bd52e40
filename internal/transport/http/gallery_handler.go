package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/domain"
	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

type GalleryHandler struct {
	gallery *service.GalleryService
}

func RegisterGallery(e *echo.Echo, auth *service.AuthService, gallery *service.GalleryService) {
	h := &GalleryHandler{gallery: gallery}

	g := e.Group("/api/gallery")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/:id", h.get)

	admin := g.Group("", RequireAuth(auth), RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/reorder", h.reorder)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *GalleryHandler) list(c echo.Context) error {
	category := c.QueryParam("category")
	featured := c.QueryParam("featured") == "true"
	items, err := h.gallery.List(c.Request().Context(), category, featured)
	if err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKList(items, len(items)))
}

func (h *GalleryHandler) categories(c echo.Context) error {
	categories, err := h.gallery.Categories(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKList(categories, len(categories)))
}

func (h *GalleryHandler) get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Gallery image not found"))
	}
	item, err := h.gallery.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, service.ErrGalleryItemNotFound, "Gallery image not found")
	}
	return c.JSON(http.StatusOK, util.OK(item))
}

func (h *GalleryHandler) create(c echo.Context) error {
	input, closer, err := galleryInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	item, err := h.gallery.Create(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err, service.ErrGalleryItemNotFound, "Gallery image not found")
	}
	return c.JSON(http.StatusCreated, util.OKMessage("Gallery image added successfully", item))
}

func (h *GalleryHandler) update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Gallery image not found"))
	}
	input, closer, err := galleryInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	item, err := h.gallery.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err, service.ErrGalleryItemNotFound, "Gallery image not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Gallery image updated successfully", item))
}

func (h *GalleryHandler) delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Gallery image not found"))
	}
	if err := h.gallery.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, service.ErrGalleryItemNotFound, "Gallery image not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Gallery image removed", util.Envelope{"id": id}))
}

func (h *GalleryHandler) reorder(c echo.Context) error {
	var req struct {
		Items []domain.GalleryOrderUpdate `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Items array is required"))
	}
	if err := h.gallery.Reorder(c.Request().Context(), req.Items); err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Gallery images reordered successfully", nil))
}

func galleryInput(c echo.Context) (service.GalleryInput, io.Closer, error) {
	upload, closer, err := formUpload(c, "image")
	if err != nil {
		return service.GalleryInput{}, nil, err
	}
	return service.GalleryInput{
		Alt:      formField(c, "alt"),
		Category: formField(c, "category"),
		Color:    formField(c, "color"),
		Featured: formField(c, "featured"),
		Order:    formField(c, "order"),
		SrcURL:   formField(c, "src"),
		Image:    upload,
	}, closer, nil
}
