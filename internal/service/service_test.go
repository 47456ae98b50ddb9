package service

import (
	"log/slog"
	"path/filepath"
	"testing"

	"HiddenLight/internal/infrastructure/storage"
	"HiddenLight/internal/ports"
)

func newTestStore(t *testing.T) ports.RecordStore {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"), slog.Default())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPaginate(t *testing.T) {
	t.Parallel()
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name       string
		page       int
		limit      int
		wantItems  []int
		wantPages  int
		wantOnPage int
	}{
		{"first page", 1, 2, []int{1, 2}, 3, 1},
		{"middle page", 2, 2, []int{3, 4}, 3, 2},
		{"last partial page", 3, 2, []int{5}, 3, 3},
		{"past the end", 9, 2, []int{}, 3, 9},
		{"defaults", 0, 0, []int{1, 2, 3, 4, 5}, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page := paginate(items, tc.page, tc.limit)
			if len(page.Items) != len(tc.wantItems) {
				t.Fatalf("expected %v, got %v", tc.wantItems, page.Items)
			}
			for i, v := range tc.wantItems {
				if page.Items[i] != v {
					t.Fatalf("expected %v, got %v", tc.wantItems, page.Items)
				}
			}
			if page.Total != len(items) {
				t.Fatalf("expected total %d, got %d", len(items), page.Total)
			}
			if page.TotalPages != tc.wantPages {
				t.Fatalf("expected %d pages, got %d", tc.wantPages, page.TotalPages)
			}
			if page.Page != tc.wantOnPage {
				t.Fatalf("expected page %d, got %d", tc.wantOnPage, page.Page)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	t.Parallel()
	page := paginate([]string{}, 1, 10)
	if len(page.Items) != 0 || page.Total != 0 {
		t.Fatalf("unexpected page for empty input: %+v", page)
	}
	if page.TotalPages != 0 {
		t.Fatalf("empty input must report zero pages, got %d", page.TotalPages)
	}
}

func TestPaginateConcatenationReproducesList(t *testing.T) {
	t.Parallel()
	items := make([]int, 17)
	for i := range items {
		items[i] = i
	}

	const limit = 4
	var gathered []int
	first := paginate(items, 1, limit)
	for p := 1; p <= first.TotalPages; p++ {
		gathered = append(gathered, paginate(items, p, limit).Items...)
	}

	if len(gathered) != len(items) {
		t.Fatalf("concatenated pages have %d items, want %d", len(gathered), len(items))
	}
	for i, v := range items {
		if gathered[i] != v {
			t.Fatalf("page concatenation reordered item %d: got %d", i, gathered[i])
		}
	}
}
