package search

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"HiddenLight/internal/domain"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases and splits", "Mercy AND Compassion", []string{"mercy", "and", "compassion"}},
		{"drops short tokens", "he is at the well", []string{"the", "well"}},
		{"strips punctuation in place", "mercy, compassion!", []string{"mercy", "compassion"}},
		{"keeps arabic", "الرحمة والتقوى", []string{"الرحمة", "والتقوى"}},
		{"empty", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSearchRanksKeywordMatchFirst(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Build([]domain.Document{
		{ID: "1", Content: "mercy and compassion"},
		{ID: "2", Content: "battle and strategy"},
	})

	resp := e.Search("mercy", Options{})
	if len(resp.Results) == 0 {
		t.Fatal("expected at least one result")
	}
	if resp.Results[0].ID != "1" {
		t.Fatalf("expected document 1 first, got %s", resp.Results[0].ID)
	}
	for _, r := range resp.Results {
		if r.ID == "2" {
			t.Fatalf("document 2 shares no keyword and should be absent, scored %.2f", r.Score)
		}
	}
}

func TestSearchDeterminism(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Build([]domain.Document{
		{ID: "a", Title: "Patience", Content: "patience in hardship and patience in ease"},
		{ID: "b", Title: "Charity", Content: "charity purifies wealth, patience purifies the soul"},
		{ID: "c", Title: "Prayer", Content: "prayer at dawn, patience at dusk"},
	})

	first := e.Search("patience purifies", Options{})
	for i := 0; i < 5; i++ {
		again := e.Search("patience purifies", Options{})
		if len(again.Results) != len(first.Results) {
			t.Fatalf("result count changed between calls: %d vs %d", len(again.Results), len(first.Results))
		}
		for j := range again.Results {
			if again.Results[j].ID != first.Results[j].ID || again.Results[j].Score != first.Results[j].Score {
				t.Fatalf("call %d: position %d differs: %s/%.2f vs %s/%.2f",
					i, j, again.Results[j].ID, again.Results[j].Score, first.Results[j].ID, first.Results[j].Score)
			}
		}
	}
}

func TestTieBreakKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	// Identical content yields identical scores for both documents.
	e.Build([]domain.Document{
		{ID: "first", Content: "wisdom guidance"},
		{ID: "second", Content: "wisdom guidance"},
	})

	resp := e.Search("wisdom", Options{})
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].ID != "first" || resp.Results[1].ID != "second" {
		t.Fatalf("tie broke insertion order: %s, %s", resp.Results[0].ID, resp.Results[1].ID)
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	t.Parallel()

	vectors := []map[string]float64{
		{"mercy": 0.5, "compassion": 0.5},
		{"battle": 0.25, "strategy": 0.25, "mercy": 0.5},
		{"prayer": 1.0},
		{},
	}

	for i, a := range vectors {
		for j, b := range vectors {
			sim := cosineSimilarity(a, b)
			if sim < 0 || sim > 1+1e-9 {
				t.Fatalf("similarity(%d,%d) = %v out of [0,1]", i, j, sim)
			}
		}
	}

	self := cosineSimilarity(vectors[0], vectors[0])
	if math.Abs(self-1.0) > 1e-9 {
		t.Fatalf("self similarity = %v, want 1.0", self)
	}

	if got := cosineSimilarity(map[string]float64{}, vectors[0]); got != 0 {
		t.Fatalf("zero-vector similarity = %v, want 0", got)
	}
}

func TestSimilarityThresholdIsStrict(t *testing.T) {
	t.Parallel()

	if similarityQualifies(similarityThreshold) {
		t.Fatal("similarity exactly at the threshold must be excluded")
	}
	if !similarityQualifies(similarityThreshold + 1e-12) {
		t.Fatal("similarity just above the threshold must qualify")
	}
	if similarityQualifies(0) {
		t.Fatal("zero similarity must not qualify")
	}
}

func TestAddMatchesFullRebuild(t *testing.T) {
	t.Parallel()

	corpus := []domain.Document{
		{ID: "1", Title: "Mercy", Content: "mercy and compassion toward all creation"},
		{ID: "2", Title: "Badr", Content: "battle and strategy at the wells of badr"},
	}
	extra := domain.Document{ID: "3", Title: "Intentions", Content: "actions are judged by intentions"}

	incremental := NewEngine()
	incremental.Build(corpus)
	incremental.Add(extra)

	rebuilt := NewEngine()
	rebuilt.Build(append(append([]domain.Document{}, corpus...), extra))

	for _, query := range []string{"mercy", "battle strategy", "intentions", "creation badr"} {
		a := incremental.Search(query, Options{})
		b := rebuilt.Search(query, Options{})
		if len(a.Results) != len(b.Results) || a.Total != b.Total {
			t.Fatalf("query %q: incremental and rebuilt indexes disagree on counts", query)
		}
		for i := range a.Results {
			if a.Results[i].ID != b.Results[i].ID || a.Results[i].Score != b.Results[i].Score {
				t.Fatalf("query %q position %d: %s/%.2f vs %s/%.2f",
					query, i, a.Results[i].ID, a.Results[i].Score, b.Results[i].ID, b.Results[i].Score)
			}
		}
	}
}

func TestAddReplacesExistingDocument(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Build([]domain.Document{
		{ID: "1", Title: "Mercy", Content: "mercy and compassion toward all creation"},
		{ID: "2", Title: "Badr", Content: "battle and strategy at the wells of badr"},
	})

	// Re-adding id 1 must replace it, not index it a second time.
	e.Add(domain.Document{ID: "1", Title: "Mercy", Content: "mercy and compassion toward all creation"})

	resp := e.Search("mercy", Options{})
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected a single result for a re-added document, got total=%d results=%d", resp.Total, len(resp.Results))
	}

	fresh := NewEngine()
	fresh.Build([]domain.Document{
		{ID: "1", Title: "Mercy", Content: "mercy and compassion toward all creation"},
		{ID: "2", Title: "Badr", Content: "battle and strategy at the wells of badr"},
	})
	want := fresh.Search("mercy", Options{})
	if resp.Results[0].Score != want.Results[0].Score {
		t.Fatalf("score compounded on re-add: %.2f, want %.2f", resp.Results[0].Score, want.Results[0].Score)
	}

	// Replacing with new content drops the old postings entirely.
	e.Add(domain.Document{ID: "1", Title: "Patience", Content: "patience in hardship"})
	if got := e.Search("mercy", Options{}); got.Total != 0 {
		t.Fatalf("old postings survived replacement: total=%d", got.Total)
	}
	if got := e.Search("patience", Options{}); got.Total != 1 {
		t.Fatalf("replacement content not searchable: total=%d", got.Total)
	}
	if stats := e.Stats(); stats.TotalDocuments != 2 {
		t.Fatalf("TotalDocuments = %d, want 2", stats.TotalDocuments)
	}
}

func TestAddKeepsInsertionPositionOnReplace(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Build([]domain.Document{
		{ID: "first", Content: "wisdom guidance"},
		{ID: "second", Content: "wisdom guidance"},
	})
	e.Add(domain.Document{ID: "first", Content: "wisdom guidance"})

	resp := e.Search("wisdom", Options{})
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].ID != "first" || resp.Results[1].ID != "second" {
		t.Fatalf("replacement changed tie order: %s, %s", resp.Results[0].ID, resp.Results[1].ID)
	}
}

func TestSearchLimitAndTotal(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	var docs []domain.Document
	for _, id := range []string{"a", "b", "c", "d"} {
		docs = append(docs, domain.Document{ID: id, Content: "remembrance brings tranquility"})
	}
	e.Build(docs)

	resp := e.Search("remembrance", Options{Limit: 2})
	if len(resp.Results) != 2 {
		t.Fatalf("limit not applied: got %d results", len(resp.Results))
	}
	if resp.Total != 4 {
		t.Fatalf("total = %d, want 4", resp.Total)
	}
}

func TestExcerptCentersOnFirstMatch(t *testing.T) {
	t.Parallel()

	lead := strings.Repeat("x ", 60)
	content := lead + "mercy appears here among many other words that continue for quite a while afterwards " + strings.Repeat("y ", 60)

	e := NewEngine()
	e.Build([]domain.Document{{ID: "1", Content: content}})

	resp := e.Search("mercy", Options{IncludeExcerpts: true})
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	ex := resp.Results[0].Excerpt
	if !strings.Contains(ex, "mercy") {
		t.Fatalf("excerpt does not contain the match: %q", ex)
	}
	if !strings.HasPrefix(ex, "...") || !strings.HasSuffix(ex, "...") {
		t.Fatalf("expected ellipsis markers on both ends: %q", ex)
	}
}

func TestExcerptWithoutMatchStartsAtZero(t *testing.T) {
	t.Parallel()

	got := excerpt("short content with no query words", []string{"zzz"})
	if !strings.HasPrefix(got, "short content") {
		t.Fatalf("excerpt should start at offset 0: %q", got)
	}
	if strings.HasSuffix(got, "...") {
		t.Fatalf("short content should not be truncated: %q", got)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Build([]domain.Document{
		{ID: "1", Content: "mercy and compassion", Type: "hadith"},
		{ID: "2", Content: "battle and strategy", Type: "battle"},
		{ID: "3", Content: "patience and prayer"},
	})

	stats := e.Stats()
	if stats.TotalDocuments != 3 {
		t.Fatalf("TotalDocuments = %d, want 3", stats.TotalDocuments)
	}
	if stats.TotalTerms == 0 {
		t.Fatal("TotalTerms should be non-zero")
	}
	want := []string{"hadith", "battle", "general"}
	if !reflect.DeepEqual(stats.IndexedTypes, want) {
		t.Fatalf("IndexedTypes = %v, want %v", stats.IndexedTypes, want)
	}
}

func TestEmptyIndexSearch(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	resp := e.Search("anything", Options{})
	if len(resp.Results) != 0 || resp.Total != 0 {
		t.Fatalf("empty index should return no results, got %d/%d", len(resp.Results), resp.Total)
	}
}

func TestSnapshotSortedAndComplete(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Build([]domain.Document{
		{ID: "1", Content: "zebra apple mango"},
	})

	entries := e.Snapshot()
	if len(entries) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Term >= entries[i].Term {
			t.Fatalf("terms not sorted: %s before %s", entries[i-1].Term, entries[i].Term)
		}
	}
}
