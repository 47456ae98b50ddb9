package content

import (
	"testing"

	"HiddenLight/internal/domain"
)

func TestRegistryOrder(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	names := make([]string, 0, 4)
	for _, s := range r.Sources() {
		names = append(names, s.Name())
	}
	want := []string{"biography", "hadith", "companions", "battles"}
	if len(names) != len(want) {
		t.Fatalf("expected %d sources, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("source %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register(stubSource{name: "hadith"})

	sources := r.Sources()
	if sources[1].Name() != "hadith" {
		t.Fatalf("replacement moved, got %s at position 1", sources[1].Name())
	}
	if len(sources[1].Documents()) != 0 {
		t.Fatal("expected the stub to replace the builtin source")
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	if _, err := r.Resolve("quran"); err == nil {
		t.Fatal("expected error for unregistered source")
	}
}

func TestRegistryDocumentsFlattened(t *testing.T) {
	t.Parallel()
	docs := NewRegistry().Documents()

	wantLen := len(Biography()) + len(Wisdom()) + len(Companions()) + len(Battles())
	if len(docs) != wantLen {
		t.Fatalf("expected %d documents, got %d", wantLen, len(docs))
	}
	if docs[0].Type != "biography" {
		t.Fatalf("expected biography documents first, got %s", docs[0].Type)
	}
	for _, d := range docs {
		if d.ID == "" || d.Type == "" {
			t.Fatalf("document missing id or type: %+v", d)
		}
	}
}

func TestHadithsFilters(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		filter HadithFilter
		want   int
	}{
		{"all", HadithFilter{}, 3},
		{"category", HadithFilter{Category: "Intention"}, 1},
		{"search english", HadithFilter{Search: "ANGER"}, 1},
		{"search arabic", HadithFilter{Search: "النيات"}, 1},
		{"no match", HadithFilter{Search: "charity"}, 0},
		{"category and search", HadithFilter{Category: "Character", Search: "strong"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Hadiths(tc.filter)
			if len(got) != tc.want {
				t.Fatalf("expected %d hadiths, got %d", tc.want, len(got))
			}
		})
	}
}

func TestSeedArticlesDeterministic(t *testing.T) {
	t.Parallel()
	first := SeedArticles()
	second := SeedArticles()

	if len(first) == 0 {
		t.Fatal("expected seed articles")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("seed ids differ at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if first[i].Status != domain.StatusPublished {
			t.Fatalf("seed article %s not published", first[i].ID)
		}
		if first[i].Title == "" || first[i].Content == "" {
			t.Fatalf("seed article %s missing title or content", first[i].ID)
		}
	}
}

type stubSource struct{ name string }

func (s stubSource) Name() string                 { return s.name }
func (s stubSource) Documents() []domain.Document { return nil }
