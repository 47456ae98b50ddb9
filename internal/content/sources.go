package content

import (
	"fmt"
	"strings"

	"HiddenLight/internal/domain"
)

// HadithFilter narrows the hadith collection. Category is an exact match;
// Search is a case-insensitive substring match over the English text and an
// exact substring match over the Arabic text.
type HadithFilter struct {
	Category string
	Search   string
}

// Source exposes one corpus section as indexable documents.
type Source interface {
	Name() string
	Documents() []domain.Document
}

// Registry keeps the registered content sources in registration order, so
// the assembled corpus and its search results stay deterministic.
type Registry struct {
	sources []Source
	index   map[string]int
}

// NewRegistry builds a registry preloaded with the built-in corpus sections.
func NewRegistry() *Registry {
	r := &Registry{index: map[string]int{}}
	r.Register(biographySource{})
	r.Register(hadithSource{})
	r.Register(companionSource{})
	r.Register(battleSource{})
	return r
}

// Register adds or replaces a source, keeping the original position on
// replacement.
func (r *Registry) Register(source Source) {
	if i, ok := r.index[source.Name()]; ok {
		r.sources[i] = source
		return
	}
	r.index[source.Name()] = len(r.sources)
	r.sources = append(r.sources, source)
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if i, ok := r.index[name]; ok {
		return r.sources[i], nil
	}
	return nil, fmt.Errorf("content source %s is not registered", name)
}

// Sources returns the registered sources in registration order.
func (r *Registry) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Documents flattens every source into one corpus slice, source by source.
func (r *Registry) Documents() []domain.Document {
	var docs []domain.Document
	for _, s := range r.sources {
		docs = append(docs, s.Documents()...)
	}
	return docs
}

// Biography returns the biography timeline in chronological order.
func Biography() []domain.BiographyEvent {
	out := make([]domain.BiographyEvent, len(biography))
	copy(out, biography)
	return out
}

// Hadiths returns the hadith collection narrowed by filter.
func Hadiths(filter HadithFilter) []domain.Hadith {
	out := make([]domain.Hadith, 0, len(hadiths))
	needle := strings.ToLower(filter.Search)
	for _, h := range hadiths {
		if filter.Category != "" && h.Category != filter.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(h.Text), needle) &&
			!strings.Contains(h.TextAr, filter.Search) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Wisdom serves the hadith collection as daily-wisdom entries.
func Wisdom() []domain.Hadith {
	return Hadiths(HadithFilter{})
}

// Companions returns the companion profiles.
func Companions() []domain.Companion {
	out := make([]domain.Companion, len(companions))
	copy(out, companions)
	return out
}

// Battles returns the battle records.
func Battles() []domain.Battle {
	out := make([]domain.Battle, len(battles))
	copy(out, battles)
	return out
}

type biographySource struct{}

func (biographySource) Name() string { return "biography" }

func (biographySource) Documents() []domain.Document {
	docs := make([]domain.Document, 0, len(biography))
	for _, e := range biography {
		docs = append(docs, domain.Document{
			ID:      e.ID,
			Title:   e.Title,
			Content: e.Description + " " + e.DescriptionAr,
			Type:    "biography",
			Tags:    []string{e.Category, e.Year},
		})
	}
	return docs
}

type hadithSource struct{}

func (hadithSource) Name() string { return "hadith" }

func (hadithSource) Documents() []domain.Document {
	docs := make([]domain.Document, 0, len(hadiths))
	for _, h := range hadiths {
		docs = append(docs, domain.Document{
			ID:      h.ID,
			Title:   h.Source,
			Content: h.Text + " " + h.TextAr,
			Type:    "hadith",
			Tags:    append([]string{h.Category}, h.Tags...),
		})
	}
	return docs
}

type companionSource struct{}

func (companionSource) Name() string { return "companions" }

func (companionSource) Documents() []domain.Document {
	docs := make([]domain.Document, 0, len(companions))
	for _, c := range companions {
		docs = append(docs, domain.Document{
			ID:      c.ID,
			Title:   c.Name,
			Content: c.Title + " " + c.Description + " " + c.DescriptionAr,
			Type:    "companion",
			Tags:    []string{c.Category},
		})
	}
	return docs
}

type battleSource struct{}

func (battleSource) Name() string { return "battles" }

func (battleSource) Documents() []domain.Document {
	docs := make([]domain.Document, 0, len(battles))
	for _, b := range battles {
		docs = append(docs, domain.Document{
			ID:      b.ID,
			Title:   b.Name,
			Content: b.Description + " " + b.DescriptionAr,
			Type:    "battle",
			Tags:    []string{b.Date, b.Result},
		})
	}
	return docs
}

// SeedArticles builds the published starter articles derived from the
// built-in corpus. IDs are deterministic so seeding stays idempotent.
func SeedArticles() []domain.Article {
	seed := make([]domain.Article, 0, len(biography)+len(battles))
	for _, e := range biography {
		seed = append(seed, domain.Article{
			ID:       "seed-" + e.ID,
			Title:    e.Title,
			Content:  e.Description,
			Summary:  e.Year + ": " + e.Title,
			Author:   domain.Author{ID: "system", Name: "Hidden Light"},
			Category: "biography",
			Tags:     []string{e.Category},
			Status:   domain.StatusPublished,
		})
	}
	for _, b := range battles {
		seed = append(seed, domain.Article{
			ID:       "seed-" + b.ID,
			Title:    b.Name,
			Content:  b.Description,
			Summary:  b.Date + ": " + b.Result,
			Author:   domain.Author{ID: "system", Name: "Hidden Light"},
			Category: "battles",
			Tags:     []string{b.Result},
			Status:   domain.StatusPublished,
		})
	}
	return seed
}
