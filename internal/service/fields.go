package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// fieldErrors accumulates per-field validation messages. Each validator adds
// its message under the form field name; err() turns a non-empty map into a
// *ValidationError.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// textValue trims a raw form value. Absent fields and fields that are empty
// after trimming both report ok=false, so updates keep the stored value.
func textValue(raw *string) (string, bool) {
	if raw == nil {
		return "", false
	}
	v := strings.TrimSpace(*raw)
	return v, v != ""
}

func parseRating(raw string, min, max float64) (float64, bool) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || rating < min || rating > max {
		return 0, false
	}
	return rating, true
}

// parseStringList decodes a JSON-encoded string array as submitted by
// multipart forms. Anything that is not a JSON array of strings is rejected.
func parseStringList(raw string) ([]string, bool) {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, false
	}
	if list == nil {
		list = []string{}
	}
	return list, true
}

// parseBoolFlag mirrors the form convention where only the literal strings
// "true" and "false" change the flag; anything else keeps the stored value.
func parseBoolFlag(raw string) *bool {
	switch strings.TrimSpace(raw) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func parseIntField(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloatField(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
