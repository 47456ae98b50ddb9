package service

import (
	"context"
	"log/slog"
	"testing"

	"HiddenLight/internal/domain"
)

// The publish-then-rate flow across services sharing one store.
func TestPublishAndRateFlow(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	articles := NewArticles(store, nil, slog.Default())
	ratings := NewRatings(store, 0)
	ctx := context.Background()

	created, err := articles.Create(ctx, &domain.Article{
		Title: "T", Content: "C", Status: domain.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := articles.Publish(ctx, created.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, err := articles.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusPublished || got.PublishedAt == nil {
		t.Fatalf("expected published with timestamp, got %+v", got)
	}

	if _, err := ratings.Rate(ctx, created.ID, 5, "userA"); err != nil {
		t.Fatalf("rate: %v", err)
	}
	rating, err := ratings.UserRating(ctx, created.ID, "userA")
	if err != nil {
		t.Fatalf("user rating: %v", err)
	}
	if rating.Value != 5 {
		t.Fatalf("expected rating 5, got %d", rating.Value)
	}

	if _, err := ratings.Rate(ctx, created.ID, 3, "userA"); err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	summary, err := ratings.AverageRating(ctx, created.ID)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if summary.Count != 1 || summary.Average != 3 {
		t.Fatalf("re-rating must overwrite, not duplicate: %+v", summary)
	}
}
