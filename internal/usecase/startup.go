package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"HiddenLight/internal/content"
	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
	"HiddenLight/internal/richtext"
	"HiddenLight/internal/search"
	"HiddenLight/internal/service"
)

// StartupDeps wires the adapters into the startup workflow.
type StartupDeps struct {
	Store    ports.RecordStore
	Registry *content.Registry
	Articles *service.Articles
	Engine   *search.Engine
	Log      *slog.Logger
}

// Startup seeds the article store on first run and builds the search index
// from the full corpus: the built-in content sources plus every published
// article.
type Startup struct {
	store    ports.RecordStore
	registry *content.Registry
	articles *service.Articles
	engine   *search.Engine
	log      *slog.Logger
}

// NewStartup constructs the startup workflow.
func NewStartup(deps StartupDeps) *Startup {
	return &Startup{
		store:    deps.Store,
		registry: deps.Registry,
		articles: deps.Articles,
		engine:   deps.Engine,
		log:      deps.Log,
	}
}

// Run seeds and indexes. The persisted index copy is best-effort; the live
// engine is authoritative and a persistence failure only logs.
func (s *Startup) Run(ctx context.Context) error {
	if err := s.articles.Seed(ctx, content.SeedArticles()); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}

	corpus := s.registry.Documents()

	published, err := s.store.GetAllArticles(ctx, ports.ArticleFilters{Status: domain.StatusPublished})
	if err != nil {
		return fmt.Errorf("load published articles: %w", err)
	}
	for _, a := range published {
		corpus = append(corpus, domain.Document{
			ID:      a.ID,
			Title:   a.Title,
			Content: richtext.Text(a.Content),
			Type:    "article",
			Tags:    a.Tags,
		})
	}

	s.engine.Build(corpus)

	if err := s.store.ReplaceSearchIndex(ctx, s.engine.Snapshot()); err != nil {
		s.log.Warn("persisting search index failed", "error", err)
	}

	stats := s.engine.Stats()
	s.log.Info("search index built",
		"documents", stats.TotalDocuments,
		"terms", stats.TotalTerms,
		"types", stats.IndexedTypes,
	)
	return nil
}
