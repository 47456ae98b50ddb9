package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"HiddenLight/internal/cache"
	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
	"HiddenLight/internal/richtext"
)

// ArticleQuery selects and pages the article listing.
type ArticleQuery struct {
	Category string
	Search   string
	Status   domain.ArticleStatus
	Tags     []string
	SortBy   string
	Page     int
	Limit    int
}

// Articles manages the article lifecycle on top of the record store. The
// indexer, when present, receives published articles best-effort.
type Articles struct {
	store   ports.RecordStore
	indexer ports.SearchIndexer
	cache   *cache.Cache[*domain.Article]
	log     *slog.Logger
}

// NewArticles builds the article service. indexer may be nil.
func NewArticles(store ports.RecordStore, indexer ports.SearchIndexer, log *slog.Logger) *Articles {
	return &Articles{
		store:   store,
		indexer: indexer,
		cache:   cache.New[*domain.Article]("articles", 0),
		log:     log,
	}
}

func validateArticle(a *domain.Article) error {
	if strings.TrimSpace(a.Title) == "" {
		return &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(a.Content) == "" {
		return &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	switch a.Status {
	case domain.StatusDraft, domain.StatusPublished:
	default:
		return &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", a.Status)}
	}
	return nil
}

// Create stores a new article. Missing ids are generated, missing status
// defaults to draft, and PublishedAt is forced consistent with the status.
func (s *Articles) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.Status == "" {
		article.Status = domain.StatusDraft
	}
	if err := validateArticle(article); err != nil {
		return nil, err
	}
	stampPublication(article)

	if _, err := s.store.SaveArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	s.cache.Set(article.ID, article)
	s.indexPublished(article)
	return article, nil
}

// stampPublication keeps PublishedAt non-nil exactly when the article is
// published.
func stampPublication(a *domain.Article) {
	switch a.Status {
	case domain.StatusPublished:
		if a.PublishedAt == nil {
			now := time.Now().UTC()
			a.PublishedAt = &now
		}
	default:
		a.PublishedAt = nil
	}
}

// GetByID returns the article or domain.ErrNotFound. Hits are served from
// the cache, which is invalidated on every write path.
func (s *Articles) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}
	article, err := s.store.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	s.cache.Set(id, article)
	return article, nil
}

// Update merges the given fields onto the stored article. Zero-value fields
// keep their stored values; the id never changes.
func (s *Articles) Update(ctx context.Context, id string, updates *domain.Article) (*domain.Article, error) {
	stored, err := s.store.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if stored == nil {
		return nil, domain.ErrNotFound
	}

	if updates.Title != "" {
		stored.Title = updates.Title
	}
	if updates.Content != "" {
		stored.Content = updates.Content
	}
	if updates.Summary != "" {
		stored.Summary = updates.Summary
	}
	if updates.Category != "" {
		stored.Category = updates.Category
	}
	if updates.Image != "" {
		stored.Image = updates.Image
	}
	if updates.Tags != nil {
		stored.Tags = updates.Tags
	}
	if updates.Author.ID != "" || updates.Author.Name != "" {
		stored.Author = updates.Author
	}
	if updates.Status != "" {
		stored.Status = updates.Status
	}

	if err := validateArticle(stored); err != nil {
		return nil, err
	}
	stampPublication(stored)

	if _, err := s.store.SaveArticle(ctx, stored); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	s.cache.Set(id, stored)
	s.indexPublished(stored)
	return stored, nil
}

// Publish transitions the article to published, stamping PublishedAt.
func (s *Articles) Publish(ctx context.Context, id string) (*domain.Article, error) {
	return s.Update(ctx, id, &domain.Article{Status: domain.StatusPublished})
}

// Unpublish returns the article to draft and clears PublishedAt.
func (s *Articles) Unpublish(ctx context.Context, id string) (*domain.Article, error) {
	return s.Update(ctx, id, &domain.Article{Status: domain.StatusDraft})
}

// Delete removes the article, domain.ErrNotFound when absent.
func (s *Articles) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteArticle(ctx, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	s.cache.Delete(id)
	return nil
}

// IncrementViews bumps the view counter best-effort. Failures are logged,
// never surfaced; a view count is not worth failing a page load.
func (s *Articles) IncrementViews(ctx context.Context, id string) {
	article, err := s.store.GetArticle(ctx, id)
	if err != nil || article == nil {
		if err != nil {
			s.log.Warn("increment views failed", "article", id, "error", err)
		}
		return
	}
	article.Views++
	if _, err := s.store.SaveArticle(ctx, article); err != nil {
		s.log.Warn("increment views failed", "article", id, "error", err)
		return
	}
	s.cache.Set(id, article)
}

// List filters, sorts and pages the articles. The default order is newest
// first; sortBy accepts "createdAt", "views" and "title".
func (s *Articles) List(ctx context.Context, q ArticleQuery) (domain.Page[domain.Article], error) {
	articles, err := s.store.GetAllArticles(ctx, ports.ArticleFilters{
		Category: q.Category,
		Search:   q.Search,
		Status:   q.Status,
		Tags:     q.Tags,
	})
	if err != nil {
		return domain.Page[domain.Article]{}, fmt.Errorf("list articles: %w", err)
	}

	switch q.SortBy {
	case "views":
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Views > articles[j].Views
		})
	case "title":
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Title < articles[j].Title
		})
	default:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		})
	}

	return paginate(articles, q.Page, q.Limit), nil
}

// Seed stores the given articles once. A non-empty store means a previous
// run already seeded, so the call is a no-op.
func (s *Articles) Seed(ctx context.Context, articles []domain.Article) error {
	existing, err := s.store.GetAllArticles(ctx, ports.ArticleFilters{})
	if err != nil {
		return fmt.Errorf("seed articles: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range articles {
		if _, err := s.Create(ctx, &articles[i]); err != nil {
			return fmt.Errorf("seed articles: %w", err)
		}
	}
	s.log.Info("seeded starter articles", "count", len(articles))
	return nil
}

func (s *Articles) indexPublished(a *domain.Article) {
	if s.indexer == nil || a.Status != domain.StatusPublished {
		return
	}
	s.indexer.Add(domain.Document{
		ID:      a.ID,
		Title:   a.Title,
		Content: richtext.Text(a.Content),
		Type:    "article",
		Tags:    a.Tags,
	})
}
