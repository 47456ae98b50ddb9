package ports

import (
	"context"
	"time"

	"HiddenLight/internal/domain"
)

// ArticleFilters compose conjunctively. Category, Status and Tags are exact
// matches (Tags matches articles carrying any of the given tags); Search is a
// case-insensitive substring match over title, content and summary.
type ArticleFilters struct {
	Category string
	Search   string
	Status   domain.ArticleStatus
	Tags     []string
}

// RecordStore is the durable local store behind all content services. In the
// capability-absent degraded mode writes no-op and reads report empty; only
// genuine backing-store failures surface, as *domain.StorageError.
type RecordStore interface {
	// SaveArticle upserts by id and restamps UpdatedAt. No validation here.
	SaveArticle(ctx context.Context, article *domain.Article) (string, error)
	// GetArticle returns (nil, nil) when the id is absent.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	// DeleteArticle reports whether a row was removed.
	DeleteArticle(ctx context.Context, id string) (bool, error)
	GetAllArticles(ctx context.Context, filters ArticleFilters) ([]domain.Article, error)

	// SaveUserData upserts a keyed blob; a nil value writes a tombstone,
	// which is this store's deletion convention for user records.
	SaveUserData(ctx context.Context, key string, value any) error
	// GetUserData unmarshals the stored value into dest and reports whether
	// a live (non-tombstoned) value exists.
	GetUserData(ctx context.Context, key string, dest any) (bool, error)
	// ListUserData returns live entries whose key starts with prefix,
	// ordered by key.
	ListUserData(ctx context.Context, prefix string) ([]domain.UserDataEntry, error)

	// ReplaceSearchIndex swaps the persisted inverted index wholesale. The
	// index is derived data, rebuildable from the corpus.
	ReplaceSearchIndex(ctx context.Context, entries []domain.TermPostings) error
	// GetSearchTerm returns the posting list persisted for one term.
	GetSearchTerm(ctx context.Context, term string) ([]domain.Posting, bool, error)

	Close() error
}

// SearchIndexer accepts documents into a live search index.
type SearchIndexer interface {
	Add(doc domain.Document)
}

// Assistant answers free-form prompts. Failures degrade to a user-facing
// fallback string, never an error.
type Assistant interface {
	GenerateResponse(ctx context.Context, prompt string) string
}

// NotificationChannel pushes a notification to an external surface.
// Delivery is best-effort; callers log and swallow failures.
type NotificationChannel interface {
	Push(ctx context.Context, title, message string) error
}

// DailyScheduler controls when the recurring daily job executes.
type DailyScheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
