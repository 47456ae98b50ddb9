package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
)

const schemaVersion = 1

// SQLiteStore persists the three record collections (articles, user data
// blobs and the denormalized search index) in an embedded database. A store
// opened without a path runs in the capability-absent mode: writes no-op,
// reads report empty, and no operation errors.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
	sb  sq.StatementBuilderType
}

var _ ports.RecordStore = (*SQLiteStore)(nil)

// Open creates or upgrades the database at path. An empty path yields the
// degraded no-persistence store; genuine open/migration failures are
// returned as *domain.StorageError.
func Open(path string, log *slog.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &SQLiteStore{
		log: log,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}

	if path == "" {
		log.Warn("persistent storage unavailable, records will not survive restart")
		return s, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.StorageError{Op: "open database", Err: err}
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, &domain.StorageError{Op: "init schema", Err: err}
	}

	s.db = db
	return s, nil
}

// Schema changes must stay additive (new tables/indexes only) so existing
// databases upgrade in place.
func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_info (
		version INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		author_id TEXT NOT NULL DEFAULT '',
		author_name TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		image TEXT NOT NULL DEFAULT '',
		views INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'draft',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		published_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at);
	CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status);

	CREATE TABLE IF NOT EXISTS search_index (
		term TEXT PRIMARY KEY,
		documents TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_data (
		key TEXT PRIMARY KEY,
		value TEXT,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	var version int
	err := db.QueryRow(`SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO schema_info (version) VALUES (?)`, schemaVersion)
		return err
	case err != nil:
		return err
	case version < schemaVersion:
		_, err = db.Exec(`UPDATE schema_info SET version = ?`, schemaVersion)
		return err
	}
	return nil
}

// Close releases the database handle; a no-op for the degraded store.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Available reports whether a backing database is open.
func (s *SQLiteStore) Available() bool { return s.db != nil }

// SaveArticle upserts by primary key and restamps UpdatedAt. Validation is
// the content services' job, not this layer's.
func (s *SQLiteStore) SaveArticle(ctx context.Context, article *domain.Article) (string, error) {
	if s.db == nil {
		return article.ID, nil
	}

	article.UpdatedAt = time.Now().UTC()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = article.UpdatedAt
	}

	tags, err := json.Marshal(article.Tags)
	if err != nil {
		return "", &domain.StorageError{Op: "marshal tags", Err: err}
	}

	query, args, err := s.sb.Insert("articles").
		Columns("id", "title", "content", "summary", "author_id", "author_name",
			"category", "tags", "image", "views", "status",
			"created_at", "updated_at", "published_at").
		Values(article.ID, article.Title, article.Content, article.Summary,
			article.Author.ID, article.Author.Name,
			article.Category, string(tags), article.Image, article.Views, string(article.Status),
			article.CreatedAt, article.UpdatedAt, article.PublishedAt).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			summary = excluded.summary,
			author_id = excluded.author_id,
			author_name = excluded.author_name,
			category = excluded.category,
			tags = excluded.tags,
			image = excluded.image,
			views = excluded.views,
			status = excluded.status,
			updated_at = excluded.updated_at,
			published_at = excluded.published_at`).
		ToSql()
	if err != nil {
		return "", &domain.StorageError{Op: "build upsert", Err: err}
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", &domain.StorageError{Op: "upsert article", Err: err}
	}
	return article.ID, nil
}

var articleColumns = []string{
	"id", "title", "content", "summary", "author_id", "author_name",
	"category", "tags", "image", "views", "status",
	"created_at", "updated_at", "published_at",
}

// GetArticle returns (nil, nil) when the id is absent.
func (s *SQLiteStore) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	if s.db == nil {
		return nil, nil
	}

	query, args, err := s.sb.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "build select", Err: err}
	}

	article, err := scanArticle(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get article", Err: err}
	}
	return article, nil
}

// DeleteArticle reports whether a row existed.
func (s *SQLiteStore) DeleteArticle(ctx context.Context, id string) (bool, error) {
	if s.db == nil {
		return false, nil
	}

	query, args, err := s.sb.Delete("articles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, &domain.StorageError{Op: "build delete", Err: err}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, &domain.StorageError{Op: "delete article", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &domain.StorageError{Op: "delete article", Err: err}
	}
	return n > 0, nil
}

// GetAllArticles fetches by category through the index when a category
// filter is present, full scan otherwise; the remaining filters are applied
// in memory and compose conjunctively.
func (s *SQLiteStore) GetAllArticles(ctx context.Context, filters ports.ArticleFilters) ([]domain.Article, error) {
	if s.db == nil {
		return []domain.Article{}, nil
	}

	builder := s.sb.Select(articleColumns...).From("articles")
	if filters.Category != "" {
		builder = builder.Where(sq.Eq{"category": filters.Category})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "build select", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "query articles", Err: err}
	}
	defer rows.Close()

	results := make([]domain.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "scan article", Err: err}
		}
		if matchesFilters(article, filters) {
			results = append(results, *article)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "iterate articles", Err: err}
	}
	return results, nil
}

func matchesFilters(a *domain.Article, f ports.ArticleFilters) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Content), needle) &&
			!strings.Contains(strings.ToLower(a.Summary), needle) {
			return false
		}
	}
	if len(f.Tags) > 0 {
		wanted := make(map[string]struct{}, len(f.Tags))
		for _, t := range f.Tags {
			wanted[t] = struct{}{}
		}
		found := false
		for _, t := range a.Tags {
			if _, ok := wanted[t]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var a domain.Article
	var tags string
	var status string
	var publishedAt sql.NullTime

	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Summary,
		&a.Author.ID, &a.Author.Name,
		&a.Category, &tags, &a.Image, &a.Views, &status,
		&a.CreatedAt, &a.UpdatedAt, &publishedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	a.Status = domain.ArticleStatus(status)
	if publishedAt.Valid {
		t := publishedAt.Time
		a.PublishedAt = &t
	}
	return &a, nil
}

// SaveUserData upserts a keyed blob, last write wins. A nil value writes the
// NULL tombstone that stands for deletion in this store; the key itself is
// never removed.
func (s *SQLiteStore) SaveUserData(ctx context.Context, key string, value any) error {
	if s.db == nil {
		return nil
	}

	var stored any
	if value != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			return &domain.StorageError{Op: "marshal user data", Err: err}
		}
		stored = string(raw)
	}

	query, args, err := s.sb.Insert("user_data").
		Columns("key", "value", "updated_at").
		Values(key, stored, time.Now().UTC()).
		Suffix(`ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return &domain.StorageError{Op: "build upsert", Err: err}
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &domain.StorageError{Op: "save user data", Err: err}
	}
	return nil
}

// GetUserData reports tombstoned and absent keys identically as not found.
func (s *SQLiteStore) GetUserData(ctx context.Context, key string, dest any) (bool, error) {
	if s.db == nil {
		return false, nil
	}

	query, args, err := s.sb.Select("value").
		From("user_data").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return false, &domain.StorageError{Op: "build select", Err: err}
	}

	var value sql.NullString
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &domain.StorageError{Op: "get user data", Err: err}
	}
	if !value.Valid {
		return false, nil
	}
	if dest != nil {
		if err := json.Unmarshal([]byte(value.String), dest); err != nil {
			return false, &domain.StorageError{Op: "unmarshal user data", Err: err}
		}
	}
	return true, nil
}

// ListUserData scans live entries under prefix, ordered by key. Prefix
// comparison uses substr rather than LIKE so underscores in key prefixes
// stay literal.
func (s *SQLiteStore) ListUserData(ctx context.Context, prefix string) ([]domain.UserDataEntry, error) {
	if s.db == nil {
		return []domain.UserDataEntry{}, nil
	}

	query, args, err := s.sb.Select("key", "value", "updated_at").
		From("user_data").
		Where(sq.Expr("substr(key, 1, ?) = ?", len(prefix), prefix)).
		Where("value IS NOT NULL").
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "build select", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "list user data", Err: err}
	}
	defer rows.Close()

	entries := make([]domain.UserDataEntry, 0)
	for rows.Next() {
		var e domain.UserDataEntry
		var value string
		if err := rows.Scan(&e.Key, &value, &e.UpdatedAt); err != nil {
			return nil, &domain.StorageError{Op: "scan user data", Err: err}
		}
		e.Value = []byte(value)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "iterate user data", Err: err}
	}
	return entries, nil
}

// ReplaceSearchIndex swaps the persisted inverted index in one transaction.
func (s *SQLiteStore) ReplaceSearchIndex(ctx context.Context, entries []domain.TermPostings) error {
	if s.db == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "begin index replace", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_index`); err != nil {
		return &domain.StorageError{Op: "clear search index", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO search_index (term, documents) VALUES (?, ?)`)
	if err != nil {
		return &domain.StorageError{Op: "prepare index insert", Err: err}
	}
	defer stmt.Close()

	for _, e := range entries {
		postings, err := json.Marshal(e.Postings)
		if err != nil {
			return &domain.StorageError{Op: "marshal postings", Err: err}
		}
		if _, err := stmt.ExecContext(ctx, e.Term, string(postings)); err != nil {
			return &domain.StorageError{Op: "insert search term", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "commit index replace", Err: err}
	}
	return nil
}

// GetSearchTerm loads the posting list persisted for one term.
func (s *SQLiteStore) GetSearchTerm(ctx context.Context, term string) ([]domain.Posting, bool, error) {
	if s.db == nil {
		return nil, false, nil
	}

	query, args, err := s.sb.Select("documents").
		From("search_index").
		Where(sq.Eq{"term": term}).
		ToSql()
	if err != nil {
		return nil, false, &domain.StorageError{Op: "build select", Err: err}
	}

	var raw string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &domain.StorageError{Op: "get search term", Err: err}
	}

	var postings []domain.Posting
	if err := json.Unmarshal([]byte(raw), &postings); err != nil {
		return nil, false, &domain.StorageError{Op: "unmarshal postings", Err: err}
	}
	return postings, true, nil
}
