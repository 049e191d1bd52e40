package http

import (
	"net/http"
	"net/url"
	"testing"
)

func validDestinationForm() url.Values {
	return url.Values{
		"title":       {"Misty Fjords"},
		"description": {"Kayak between granite walls"},
		"price":       {"$1,299"},
		"image":       {"https://cdn.example.com/fjord.jpg"},
	}
}

func TestDestinationRoutes_PublicListing(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm(t, "/api/destinations", ts.adminToken, validDestinationForm())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody(t, rec)
	if created["message"] != "Destination created successfully" {
		t.Fatalf("unexpected message: %v", created["message"])
	}

	rec = ts.request(t, http.MethodGet, "/api/destinations", "", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	if body["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", body["count"])
	}
}

func TestDestinationRoutes_WritesRequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	form := validDestinationForm()

	rec := ts.postForm(t, "/api/destinations", "", form)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "missing authorization header" {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	rec = ts.postForm(t, "/api/destinations", "garbage-token", form)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	rec = ts.postForm(t, "/api/destinations", ts.userToken, form)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["message"] != "admin privileges required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	if len(ts.destinations.items) != 0 {
		t.Fatalf("rejected requests must not persist anything")
	}
}

func TestDestinationRoutes_ValidationFailure(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm(t, "/api/destinations", ts.adminToken, url.Values{"title": {"Only a title"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "Validation failed" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors map, got %v", body["errors"])
	}
	if fields["description"] != "Description is required" {
		t.Fatalf("unexpected field errors: %v", fields)
	}
}

func TestDestinationRoutes_MalformedIDIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/destinations/not-a-uuid", "", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Destination not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestDestinationRoutes_DeleteTwice(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm(t, "/api/destinations", ts.adminToken, validDestinationForm())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	id := data["id"].(string)

	rec = ts.request(t, http.MethodDelete, "/api/destinations/"+id, ts.adminToken, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d: %s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["message"] != "Destination removed" {
		t.Fatalf("unexpected delete message")
	}

	rec = ts.request(t, http.MethodDelete, "/api/destinations/"+id, ts.adminToken, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestDestinationRoutes_UpdatePartial(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm(t, "/api/destinations", ts.adminToken, validDestinationForm())
	data := decodeBody(t, rec)["data"].(map[string]any)
	id := data["id"].(string)

	rec = ts.request(t, http.MethodPut, "/api/destinations/"+id, ts.adminToken,
		"application/x-www-form-urlencoded", url.Values{"price": {"$1,399"}}.Encode())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody(t, rec)["data"].(map[string]any)
	if updated["price"] != "$1,399" {
		t.Fatalf("expected updated price, got %v", updated["price"])
	}
	if updated["title"] != "Misty Fjords" {
		t.Fatalf("expected title retained, got %v", updated["title"])
	}
}
