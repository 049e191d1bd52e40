package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validTestimonialInput() TestimonialInput {
	return TestimonialInput{
		Name:     str("Mara Ellison"),
		Role:     str("Travel blogger"),
		Content:  str("The valley exceeded every expectation."),
		Location: str("Portland, OR"),
		Rating:   str("5"),
		ImageURL: str("https://cdn.example.com/mara.jpg"),
	}
}

func TestTestimonialService_Create_RatingIsRequired(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTestimonialRepo()
	svc := NewTestimonialService(repo, newTestUploader(&captureStorage{}))

	input := validTestimonialInput()
	input.Rating = nil
	_, err := svc.Create(ctx, input)
	ve, ok := AsValidation(err)
	if !ok || ve.Fields["rating"] != "Rating is required" {
		t.Fatalf("expected rating-required error, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestTestimonialService_Create_RatingBoundsOneToFive(t *testing.T) {
	ctx := context.Background()
	svc := NewTestimonialService(newMemoryTestimonialRepo(), newTestUploader(&captureStorage{}))

	for _, rating := range []string{"1", "5", "3.5"} {
		input := validTestimonialInput()
		input.Rating = str(rating)
		if _, err := svc.Create(ctx, input); err != nil {
			t.Fatalf("rating %q should be accepted, got %v", rating, err)
		}
	}
	// Zero is valid for destinations but not for testimonials.
	for _, rating := range []string{"0", "0.9", "5.1"} {
		input := validTestimonialInput()
		input.Rating = str(rating)
		_, err := svc.Create(ctx, input)
		ve, ok := AsValidation(err)
		if !ok || ve.Fields["rating"] != "Rating must be a number between 1 and 5" {
			t.Fatalf("rating %q should be rejected, got %v", rating, err)
		}
	}
}

func TestTestimonialService_Create_RequiresAuthorFields(t *testing.T) {
	ctx := context.Background()
	svc := NewTestimonialService(newMemoryTestimonialRepo(), newTestUploader(&captureStorage{}))

	_, err := svc.Create(ctx, TestimonialInput{Rating: str("4")})
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "role", "content", "location", "image"} {
		if _, present := ve.Fields[field]; !present {
			t.Fatalf("expected error for field %q, got %v", field, ve.Fields)
		}
	}
}

func TestTestimonialService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTestimonialRepo()
	svc := NewTestimonialService(repo, newTestUploader(&captureStorage{}))

	created, err := svc.Create(ctx, validTestimonialInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, TestimonialInput{Location: str("Seattle, WA")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Location != "Seattle, WA" {
		t.Fatalf("expected new location, got %q", updated.Location)
	}
	if updated.Name != "Mara Ellison" || updated.Rating != 5 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestTestimonialService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewTestimonialService(newMemoryTestimonialRepo(), newTestUploader(&captureStorage{}))

	if _, err := svc.Get(ctx, uuid.New()); !errors.Is(err, ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, uuid.New(), TestimonialInput{Name: str("x")}); !errors.Is(err, ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound on update, got %v", err)
	}
	if err := svc.Delete(ctx, uuid.New()); !errors.Is(err, ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound on delete, got %v", err)
	}
}
