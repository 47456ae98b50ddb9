package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"HiddenLight/internal/domain"
)

func TestFavoritesLifecycle(t *testing.T) {
	t.Parallel()
	svc := NewBookmarks(newTestStore(t), 0)
	ctx := context.Background()

	added, err := svc.AddFavorite(ctx, &domain.Bookmark{
		UserID: "u1", ItemID: "a1", Title: "The Hijrah", Category: "biography",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" || added.AddedAt.IsZero() {
		t.Fatalf("defaults not applied: %+v", added)
	}
	if added.Type != "article" {
		t.Fatalf("expected article type default, got %s", added.Type)
	}

	isFav, err := svc.IsFavorite(ctx, "u1", "a1")
	if err != nil {
		t.Fatalf("is favorite: %v", err)
	}
	if !isFav {
		t.Fatal("expected item to be favorited")
	}
	isFav, err = svc.IsFavorite(ctx, "u2", "a1")
	if err != nil {
		t.Fatalf("is favorite other user: %v", err)
	}
	if isFav {
		t.Fatal("favorites must be scoped per user")
	}

	if err := svc.RemoveFavorite(ctx, added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveFavorite(ctx, added.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}
}

func TestFavoriteValidation(t *testing.T) {
	t.Parallel()
	svc := NewBookmarks(newTestStore(t), 0)

	_, err := svc.AddFavorite(context.Background(), &domain.Bookmark{UserID: "u1"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFavoritesNewestFirstAndTyped(t *testing.T) {
	t.Parallel()
	svc := NewBookmarks(newTestStore(t), 0)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	items := []domain.Bookmark{
		{ID: "f1", UserID: "u1", ItemID: "a1", Type: "article", AddedAt: base},
		{ID: "f2", UserID: "u1", ItemID: "h1", Type: "hadith", AddedAt: base.Add(time.Minute)},
		{ID: "f3", UserID: "u1", ItemID: "a2", Type: "article", AddedAt: base.Add(2 * time.Minute)},
	}
	for i := range items {
		if _, err := svc.AddFavorite(ctx, &items[i]); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	page, err := svc.Favorites(ctx, "u1", BookmarkQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if page.Total != 3 || page.Items[0].ID != "f3" {
		t.Fatalf("expected newest first, got %+v", page.Items)
	}

	articlesOnly, err := svc.Favorites(ctx, "u1", BookmarkQuery{Type: "article", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("favorites typed: %v", err)
	}
	if articlesOnly.Total != 2 {
		t.Fatalf("expected 2 article favorites, got %d", articlesOnly.Total)
	}
}

func TestReadLaterLifecycle(t *testing.T) {
	t.Parallel()
	svc := NewBookmarks(newTestStore(t), 0)
	ctx := context.Background()

	added, err := svc.AddReadLater(ctx, &domain.ReadLaterItem{
		UserID: "u1", ItemID: "a1", Title: "The First Revelation",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Read || added.ReadAt != nil {
		t.Fatal("new items start unread")
	}

	marked, err := svc.MarkRead(ctx, added.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !marked.Read || marked.ReadAt == nil {
		t.Fatalf("mark read must stamp readAt: %+v", marked)
	}

	unread := false
	page, err := svc.ReadLaterList(ctx, "u1", BookmarkQuery{Read: &unread, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("expected no unread items, got %d", page.Total)
	}

	if _, err := svc.MarkRead(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearReadAndStats(t *testing.T) {
	t.Parallel()
	svc := NewBookmarks(newTestStore(t), 0)
	ctx := context.Background()

	if _, err := svc.AddFavorite(ctx, &domain.Bookmark{UserID: "u1", ItemID: "a1"}); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	first, err := svc.AddReadLater(ctx, &domain.ReadLaterItem{UserID: "u1", ItemID: "a1"})
	if err != nil {
		t.Fatalf("add read later: %v", err)
	}
	if _, err := svc.AddReadLater(ctx, &domain.ReadLaterItem{UserID: "u1", ItemID: "a2"}); err != nil {
		t.Fatalf("add read later: %v", err)
	}
	if _, err := svc.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	stats, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.FavoritesCount != 1 || stats.ReadLaterCount != 2 || stats.UnreadCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	cleared, err := svc.ClearRead(ctx, "u1")
	if err != nil {
		t.Fatalf("clear read: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared item, got %d", cleared)
	}

	stats, err = svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats after clear: %v", err)
	}
	if stats.ReadLaterCount != 1 || stats.UnreadCount != 1 {
		t.Fatalf("unexpected stats after clear: %+v", stats)
	}
}
