package service

import (
	"database/sql"
	"errors"
	"sort"
	"strings"
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrTourNotFound        = errors.New("tour not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrGalleryItemNotFound = errors.New("gallery image not found")
	ErrHeroCardNotFound    = errors.New("hero card not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAdmin           = errors.New("admin privileges required")

	ErrUploadTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrUploadUnsupported = errors.New("uploaded file is not an image")
)

// ValidationError carries per-field messages for a rejected payload. It is
// returned before any file write or store access happens.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *ValidationError if there is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
