package service

import (
	"context"
	"errors"
	"testing"

	"HiddenLight/internal/domain"
)

func TestCommentAddAndList(t *testing.T) {
	t.Parallel()
	svc := NewComments(newTestStore(t), 0)
	ctx := context.Background()

	added, err := svc.Add(ctx, &domain.Comment{
		ArticleID: "a1", Author: "Ahmad", Content: "Excellent article",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" || added.CreatedAt.IsZero() {
		t.Fatalf("defaults not applied: %+v", added)
	}
	if !added.Approved {
		t.Fatal("new comments go live immediately")
	}
	if added.Replies == nil {
		t.Fatal("replies must be initialized")
	}

	if _, err := svc.Add(ctx, &domain.Comment{ArticleID: "a2", Content: "Other thread"}); err != nil {
		t.Fatalf("add other: %v", err)
	}

	page, err := svc.ForArticle(ctx, "a1", CommentQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != added.ID {
		t.Fatalf("expected only the article's comments, got %+v", page.Items)
	}
}

func TestCommentValidation(t *testing.T) {
	t.Parallel()
	svc := NewComments(newTestStore(t), 0)
	ctx := context.Background()

	var ve *domain.ValidationError
	if _, err := svc.Add(ctx, &domain.Comment{ArticleID: "a1"}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for empty content, got %v", err)
	}
	if _, err := svc.Add(ctx, &domain.Comment{Content: "orphan"}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for missing article, got %v", err)
	}
}

func TestCommentPopularitySort(t *testing.T) {
	t.Parallel()
	svc := NewComments(newTestStore(t), 0)
	ctx := context.Background()

	quiet, err := svc.Add(ctx, &domain.Comment{ArticleID: "a1", Content: "quiet"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	popular, err := svc.Add(ctx, &domain.Comment{ArticleID: "a1", Content: "popular"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.Like(ctx, popular.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	if _, err := svc.Dislike(ctx, quiet.ID); err != nil {
		t.Fatalf("dislike: %v", err)
	}

	page, err := svc.ForArticle(ctx, "a1", CommentQuery{SortBy: "popularity", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Items[0].ID != popular.ID {
		t.Fatalf("expected popular comment first, got %s", page.Items[0].ID)
	}
	if page.Items[0].Likes != 3 || page.Items[1].Dislikes != 1 {
		t.Fatalf("reaction counters lost: %+v", page.Items)
	}
}

func TestCommentReplies(t *testing.T) {
	t.Parallel()
	svc := NewComments(newTestStore(t), 0)
	ctx := context.Background()

	parent, err := svc.Add(ctx, &domain.Comment{ArticleID: "a1", Content: "parent"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	reply, err := svc.Reply(ctx, parent.ID, &domain.Comment{Author: "Sara", Content: "agreed"})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.ArticleID != "a1" {
		t.Fatalf("reply must inherit the article, got %q", reply.ArticleID)
	}

	stored, err := svc.GetByID(ctx, parent.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Replies) != 1 || stored.Replies[0].Content != "agreed" {
		t.Fatalf("reply not attached: %+v", stored.Replies)
	}

	if _, err := svc.Reply(ctx, "missing", &domain.Comment{Content: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCommentReportAndDelete(t *testing.T) {
	t.Parallel()
	svc := NewComments(newTestStore(t), 0)
	ctx := context.Background()

	comment, err := svc.Add(ctx, &domain.Comment{ArticleID: "a1", Content: "disputed"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Report(ctx, comment.ID, "u2", "spam"); err != nil {
		t.Fatalf("report: %v", err)
	}
	stored, err := svc.GetByID(ctx, comment.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Reports) != 1 || stored.Reports[0].Reason != "spam" {
		t.Fatalf("report not recorded: %+v", stored.Reports)
	}

	if err := svc.Delete(ctx, comment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, comment.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, comment.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
