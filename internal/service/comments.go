package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"HiddenLight/internal/cache"
	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
)

// CommentQuery selects and pages an article's comment thread. SortBy
// "popularity" orders by net likes, anything else newest first.
type CommentQuery struct {
	SortBy string
	Page   int
	Limit  int
}

// Comments manages the comment threads of articles. Per-article listings
// are cached for a short TTL and dropped on every write.
type Comments struct {
	records *Records[domain.Comment]
	cache   *cache.Cache[[]domain.Comment]
}

// NewComments builds the comment service.
func NewComments(store ports.RecordStore, listTTL time.Duration) *Comments {
	records := NewRecords[domain.Comment](store, "comment_")
	records.Defaults = func(c *domain.Comment) {
		now := time.Now().UTC()
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		if c.Replies == nil {
			c.Replies = []domain.Comment{}
		}
		// New comments go live immediately; moderation flips this later.
		c.Approved = true
	}
	records.Validate = func(c *domain.Comment) error {
		if strings.TrimSpace(c.Content) == "" {
			return &domain.ValidationError{Field: "content", Reason: "must not be empty"}
		}
		if strings.TrimSpace(c.ArticleID) == "" {
			return &domain.ValidationError{Field: "articleId", Reason: "must not be empty"}
		}
		return nil
	}
	return &Comments{
		records: records,
		cache:   cache.New[[]domain.Comment]("comments", listTTL),
	}
}

// Add stores a new top-level comment.
func (s *Comments) Add(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.Likes = 0
	comment.Dislikes = 0
	if err := s.records.Create(ctx, comment.ID, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	s.cache.Delete(comment.ArticleID)
	return comment, nil
}

// ForArticle lists an article's comment thread.
func (s *Comments) ForArticle(ctx context.Context, articleID string, q CommentQuery) (domain.Page[domain.Comment], error) {
	comments, ok := s.cache.Get(articleID)
	if !ok {
		all, err := s.records.List(ctx)
		if err != nil {
			return domain.Page[domain.Comment]{}, fmt.Errorf("list comments: %w", err)
		}
		comments = make([]domain.Comment, 0, len(all))
		for _, c := range all {
			if c.ArticleID == articleID {
				comments = append(comments, c)
			}
		}
		s.cache.Set(articleID, comments)
	}

	sorted := make([]domain.Comment, len(comments))
	copy(sorted, comments)
	if q.SortBy == "popularity" {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Likes-sorted[i].Dislikes > sorted[j].Likes-sorted[j].Dislikes
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return paginate(sorted, q.Page, q.Limit), nil
}

// GetByID returns one comment, domain.ErrNotFound when absent.
func (s *Comments) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	comment, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// Reply appends a reply to a parent comment and returns the reply.
func (s *Comments) Reply(ctx context.Context, parentID string, reply *domain.Comment) (*domain.Comment, error) {
	parent, err := s.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(reply.Content) == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	reply.ArticleID = parent.ArticleID
	reply.CreatedAt = time.Now().UTC()
	reply.Likes = 0
	reply.Dislikes = 0

	parent.Replies = append(parent.Replies, *reply)
	parent.UpdatedAt = time.Now().UTC()
	if err := s.records.Put(ctx, parentID, parent); err != nil {
		return nil, fmt.Errorf("add reply: %w", err)
	}
	s.cache.Delete(parent.ArticleID)
	return reply, nil
}

// Like bumps the like counter of a comment.
func (s *Comments) Like(ctx context.Context, id string) (*domain.Comment, error) {
	return s.react(ctx, id, func(c *domain.Comment) { c.Likes++ })
}

// Dislike bumps the dislike counter of a comment.
func (s *Comments) Dislike(ctx context.Context, id string) (*domain.Comment, error) {
	return s.react(ctx, id, func(c *domain.Comment) { c.Dislikes++ })
}

func (s *Comments) react(ctx context.Context, id string, apply func(*domain.Comment)) (*domain.Comment, error) {
	comment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(comment)
	comment.UpdatedAt = time.Now().UTC()
	if err := s.records.Put(ctx, id, comment); err != nil {
		return nil, fmt.Errorf("update reaction: %w", err)
	}
	s.cache.Delete(comment.ArticleID)
	return comment, nil
}

// Report files a complaint against a comment.
func (s *Comments) Report(ctx context.Context, id, reporterID, reason string) error {
	comment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	comment.Reports = append(comment.Reports, domain.CommentReport{
		Reason:     reason,
		ReporterID: reporterID,
		ReportedAt: time.Now().UTC(),
	})
	comment.UpdatedAt = time.Now().UTC()
	if err := s.records.Put(ctx, id, comment); err != nil {
		return fmt.Errorf("report comment: %w", err)
	}
	s.cache.Delete(comment.ArticleID)
	return nil
}

// Delete removes a comment and its replies, domain.ErrNotFound when absent.
func (s *Comments) Delete(ctx context.Context, id string) error {
	comment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	s.cache.Delete(comment.ArticleID)
	return nil
}
