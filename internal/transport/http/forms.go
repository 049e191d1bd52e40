package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odovalley/odo-valley-api/internal/service"
	"github.com/odovalley/odo-valley-api/internal/util"
)

// formField returns a pointer to the first value of a form field, or nil when
// the field was not submitted at all. The distinction drives the
// partial-overwrite update semantics.
func formField(c echo.Context, name string) *string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	if values, ok := params[name]; ok && len(values) > 0 {
		v := values[0]
		return &v
	}
	return nil
}

// formUpload opens the uploaded file under the given field, if any. The
// returned closer is non-nil exactly when an upload is present.
func formUpload(c echo.Context, field string) (*service.Upload, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, nil
	}
	src, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.Upload{
		Reader:      src,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, src, nil
}

// pathID parses the :id route parameter. Malformed ids are reported as
// not-found, never as a server error.
func pathID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

// writeServiceError translates service errors at the route boundary:
// validation to 400 with the per-field map, the resource's sentinel to 404,
// upload rejections to 400, anything else to a logged 500.
func writeServiceError(c echo.Context, err error, notFound error, notFoundMessage string) error {
	if ve, ok := service.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, util.FailFields("Validation failed", ve.Fields))
	}
	switch {
	case notFound != nil && errors.Is(err, notFound):
		return c.JSON(http.StatusNotFound, util.Fail(notFoundMessage))
	case errors.Is(err, service.ErrUploadTooLarge), errors.Is(err, service.ErrUploadUnsupported):
		return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, util.Fail("Server error"))
}
