package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

type TestimonialHandler struct {
	testimonials *service.TestimonialService
}

func RegisterTestimonials(e *echo.Echo, auth *service.AuthService, testimonials *service.TestimonialService) {
	h := &TestimonialHandler{testimonials: testimonials}

	g := e.Group("/api/testimonials")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	admin := g.Group("", RequireAuth(auth), RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *TestimonialHandler) list(c echo.Context) error {
	featured := c.QueryParam("featured") == "true"
	testimonials, err := h.testimonials.List(c.Request().Context(), featured)
	if err != nil {
		return writeServiceError(c, err, nil, "")
	}
	return c.JSON(http.StatusOK, util.OKList(testimonials, len(testimonials)))
}

func (h *TestimonialHandler) get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Testimonial not found"))
	}
	testimonial, err := h.testimonials.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err, service.ErrTestimonialNotFound, "Testimonial not found")
	}
	return c.JSON(http.StatusOK, util.OK(testimonial))
}

func (h *TestimonialHandler) create(c echo.Context) error {
	input, closer, err := testimonialInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	testimonial, err := h.testimonials.Create(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err, service.ErrTestimonialNotFound, "Testimonial not found")
	}
	return c.JSON(http.StatusCreated, util.OKMessage("Testimonial created successfully", testimonial))
}

func (h *TestimonialHandler) update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Testimonial not found"))
	}
	input, closer, err := testimonialInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	if closer != nil {
		defer closer.Close()
	}

	testimonial, err := h.testimonials.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err, service.ErrTestimonialNotFound, "Testimonial not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Testimonial updated successfully", testimonial))
}

func (h *TestimonialHandler) delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, util.Fail("Testimonial not found"))
	}
	if err := h.testimonials.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, service.ErrTestimonialNotFound, "Testimonial not found")
	}
	return c.JSON(http.StatusOK, util.OKMessage("Testimonial removed", util.Envelope{"id": id}))
}

func testimonialInput(c echo.Context) (service.TestimonialInput, io.Closer, error) {
	upload, closer, err := formUpload(c, "image")
	if err != nil {
		return service.TestimonialInput{}, nil, err
	}
	return service.TestimonialInput{
		Name:     formField(c, "name"),
		Role:     formField(c, "role"),
		Content:  formField(c, "content"),
		Location: formField(c, "location"),
		Rating:   formField(c, "rating"),
		Color:    formField(c, "color"),
		Featured: formField(c, "featured"),
		ImageURL: formField(c, "image"),
		Image:    upload,
	}, closer, nil
}
