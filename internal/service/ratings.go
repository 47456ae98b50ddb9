package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"HiddenLight/internal/cache"
	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
)

// Ratings manages per-user article ratings and lightweight interactions. A
// user holds at most one rating per article; rating again overwrites.
// Aggregates are cached for a medium TTL and invalidated on every new
// rating.
type Ratings struct {
	store        ports.RecordStore
	ratings      *Records[domain.Rating]
	stats        *Records[domain.InteractionStats]
	interactions *Records[domain.Interaction]
	avgCache     *cache.Cache[domain.RatingSummary]
}

// NewRatings builds the rating service. aggregateTTL bounds how stale a
// cached average may get.
func NewRatings(store ports.RecordStore, aggregateTTL time.Duration) *Ratings {
	ratings := NewRecords[domain.Rating](store, "rating_")
	ratings.Validate = func(r *domain.Rating) error {
		if r.Value < 1 || r.Value > 5 {
			return &domain.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
		}
		if strings.TrimSpace(r.UserID) == "" {
			return &domain.ValidationError{Field: "userId", Reason: "must not be empty"}
		}
		if strings.TrimSpace(r.ArticleID) == "" {
			return &domain.ValidationError{Field: "articleId", Reason: "must not be empty"}
		}
		return nil
	}

	return &Ratings{
		store:        store,
		ratings:      ratings,
		stats:        NewRecords[domain.InteractionStats](store, "article_stats_"),
		interactions: NewRecords[domain.Interaction](store, "interaction_"),
		avgCache:     cache.New[domain.RatingSummary]("ratings", aggregateTTL),
	}
}

func ratingID(userID, articleID string) string {
	return userID + "_" + articleID
}

// Rate stores the user's rating for an article, overwriting any earlier one.
func (s *Ratings) Rate(ctx context.Context, articleID string, value int, userID string) (*domain.Rating, error) {
	rating := &domain.Rating{
		ID:        ratingID(userID, articleID),
		UserID:    userID,
		ArticleID: articleID,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.ratings.Create(ctx, rating.ID, rating); err != nil {
		return nil, fmt.Errorf("rate article: %w", err)
	}
	s.avgCache.Delete(articleID)
	return rating, nil
}

// UserRating returns the user's rating for an article, domain.ErrNotFound
// when the user has not rated it.
func (s *Ratings) UserRating(ctx context.Context, articleID, userID string) (*domain.Rating, error) {
	rating, err := s.ratings.Get(ctx, ratingID(userID, articleID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return rating, nil
}

// UserRatings maps articleID to the user's rating value for the articles
// the user has rated.
func (s *Ratings) UserRatings(ctx context.Context, userID string, articleIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(articleIDs))
	for _, articleID := range articleIDs {
		rating, err := s.UserRating(ctx, articleID, userID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[articleID] = rating.Value
	}
	return out, nil
}

// AverageRating aggregates all ratings of one article, average rounded to
// one decimal. An unrated article yields the zero summary.
func (s *Ratings) AverageRating(ctx context.Context, articleID string) (domain.RatingSummary, error) {
	if cached, ok := s.avgCache.Get(articleID); ok {
		return cached, nil
	}

	all, err := s.ratings.List(ctx)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("average rating: %w", err)
	}

	total, count := 0, 0
	for _, r := range all {
		if r.ArticleID == articleID {
			total += r.Value
			count++
		}
	}
	summary := domain.RatingSummary{Count: count}
	if count > 0 {
		summary.Average = math.Round(float64(total)/float64(count)*10) / 10
	}
	s.avgCache.Set(articleID, summary)
	return summary, nil
}

func interactionID(userID, articleID string, kind domain.InteractionType) string {
	return userID + "_" + articleID + "_" + string(kind)
}

// Interact records a user reaction and folds it into the article's stats.
func (s *Ratings) Interact(ctx context.Context, articleID string, kind domain.InteractionType, userID string) (*domain.Interaction, error) {
	switch kind {
	case domain.InteractionLike, domain.InteractionDislike,
		domain.InteractionBookmark, domain.InteractionShare:
	default:
		return nil, &domain.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown interaction %q", kind)}
	}

	interaction := &domain.Interaction{
		ID:        interactionID(userID, articleID, kind),
		UserID:    userID,
		ArticleID: articleID,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.interactions.Put(ctx, interaction.ID, interaction); err != nil {
		return nil, fmt.Errorf("record interaction: %w", err)
	}

	stats, err := s.stats.Get(ctx, articleID)
	if errors.Is(err, domain.ErrNotFound) {
		stats = &domain.InteractionStats{}
	} else if err != nil {
		return nil, fmt.Errorf("load interaction stats: %w", err)
	}
	switch kind {
	case domain.InteractionLike:
		stats.Likes++
	case domain.InteractionDislike:
		stats.Dislikes++
	case domain.InteractionBookmark:
		stats.Bookmarks++
	case domain.InteractionShare:
		stats.Shares++
	}
	if err := s.stats.Put(ctx, articleID, stats); err != nil {
		return nil, fmt.Errorf("save interaction stats: %w", err)
	}
	return interaction, nil
}

// Interactions returns the article's reaction aggregate; zero stats for an
// article nobody has reacted to.
func (s *Ratings) Interactions(ctx context.Context, articleID string) (domain.InteractionStats, error) {
	stats, err := s.stats.Get(ctx, articleID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.InteractionStats{}, nil
	}
	if err != nil {
		return domain.InteractionStats{}, fmt.Errorf("get interaction stats: %w", err)
	}
	return *stats, nil
}

// HasInteracted reports whether the user already reacted this way to the
// article.
func (s *Ratings) HasInteracted(ctx context.Context, articleID string, kind domain.InteractionType, userID string) (bool, error) {
	_, err := s.interactions.Get(ctx, interactionID(userID, articleID, kind))
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check interaction: %w", err)
	}
	return true, nil
}
