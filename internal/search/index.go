package search

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"HiddenLight/internal/domain"
)

const (
	// DefaultLimit caps result lists when the caller passes no limit.
	DefaultLimit = 10

	// similarityThreshold gates vector scoring: only documents strictly
	// above it receive a cosine contribution. Together with the weight it
	// determines ranking outcomes, so both are fixed.
	similarityThreshold = 0.05
	similarityWeight    = 10.0

	excerptLength  = 150
	excerptLeadIn  = 50
	minTokenLength = 2
)

// Tokens shorter than three runes are dropped; everything outside ASCII
// alphanumerics, underscore and the Arabic block is stripped before
// splitting on whitespace.
var stripPattern = regexp.MustCompile(`[^a-z0-9_\s\x{0600}-\x{06FF}]+`)

// IndexedDocument is the denormalized per-document index entry. Vector holds
// term weights normalized by total token count.
type IndexedDocument struct {
	ID            string
	Title         string
	Content       string
	Type          string
	Tags          []string
	WordFrequency map[string]int
	Vector        map[string]float64
}

// Result is one scored document, optionally with a query-centered excerpt.
type Result struct {
	IndexedDocument
	Score   float64
	Excerpt string
}

// Response carries the outcome of one search call.
type Response struct {
	Query   string
	Results []Result
	Total   int
}

// Options tune a single search call.
type Options struct {
	Limit           int
	IncludeExcerpts bool
}

// Stats summarizes the index for diagnostics.
type Stats struct {
	TotalDocuments int
	TotalTerms     int
	IndexedTypes   []string
}

// Engine maintains a term-frequency index over a document corpus and answers
// queries with a hybrid keyword/cosine score. Safe for concurrent readers.
type Engine struct {
	mu    sync.RWMutex
	docs  []IndexedDocument
	terms map[string][]domain.Posting
}

// NewEngine returns an empty engine; Build or Add populate it.
func NewEngine() *Engine {
	return &Engine{terms: make(map[string][]domain.Posting)}
}

// Build replaces the index wholesale with one computed from documents.
func (e *Engine) Build(documents []domain.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = nil
	e.terms = make(map[string][]domain.Posting)
	for _, d := range documents {
		e.add(d)
	}
}

// Add merges one document into the existing index. The result is equivalent
// to rebuilding from the old corpus plus doc; re-adding an already indexed
// id replaces its entry instead of duplicating it.
func (e *Engine) Add(doc domain.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.add(doc)
}

func (e *Engine) add(d domain.Document) {
	text := d.Title + " " + d.Content + " " + strings.Join(d.Tags, " ")
	freq := termFrequency(Tokenize(text))

	docType := d.Type
	if docType == "" {
		docType = "general"
	}

	doc := IndexedDocument{
		ID:            d.ID,
		Title:         d.Title,
		Content:       d.Content,
		Type:          docType,
		Tags:          d.Tags,
		WordFrequency: freq,
		Vector:        frequencyVector(freq),
	}

	// A replaced document keeps its insertion position so tie-breaking
	// stays stable across updates.
	replaced := false
	for i := range e.docs {
		if e.docs[i].ID == d.ID {
			e.removePostings(d.ID)
			e.docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		e.docs = append(e.docs, doc)
	}

	for term, count := range freq {
		e.terms[term] = append(e.terms[term], domain.Posting{DocID: d.ID, Frequency: count})
	}
}

// removePostings drops every posting of one document, deleting terms whose
// posting list becomes empty. Callers hold the write lock.
func (e *Engine) removePostings(id string) {
	for term, postings := range e.terms {
		kept := postings[:0]
		for _, p := range postings {
			if p.DocID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(e.terms, term)
		} else {
			e.terms[term] = kept
		}
	}
}

// Search scores the corpus against query. Keyword hits contribute their raw
// posting frequency; documents whose cosine similarity to the query vector
// qualifies contribute similarity times the fixed weight on top. Scores are
// rounded to two decimals and ties keep corpus insertion order.
func (e *Engine) Search(query string, opts Options) Response {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	words := Tokenize(query)
	queryVector := frequencyVector(termFrequency(words))

	scores := make(map[string]float64)
	for _, w := range words {
		for _, p := range e.terms[w] {
			scores[p.DocID] += float64(p.Frequency)
		}
	}
	for i := range e.docs {
		sim := cosineSimilarity(queryVector, e.docs[i].Vector)
		if similarityQualifies(sim) {
			scores[e.docs[i].ID] += sim * similarityWeight
		}
	}

	results := make([]Result, 0, len(scores))
	for i := range e.docs {
		score, hit := scores[e.docs[i].ID]
		if !hit {
			continue
		}
		r := Result{
			IndexedDocument: e.docs[i],
			Score:           math.Round(score*100) / 100,
		}
		if opts.IncludeExcerpts {
			r.Excerpt = excerpt(e.docs[i].Content, words)
		}
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return Response{Query: query, Results: results, Total: total}
}

// Stats reports corpus size and the set of indexed document types, in first
// appearance order.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[string]struct{})
	var types []string
	for i := range e.docs {
		if _, ok := seen[e.docs[i].Type]; ok {
			continue
		}
		seen[e.docs[i].Type] = struct{}{}
		types = append(types, e.docs[i].Type)
	}
	return Stats{
		TotalDocuments: len(e.docs),
		TotalTerms:     len(e.terms),
		IndexedTypes:   types,
	}
}

// Snapshot returns the inverted index in a persistable shape, terms sorted
// for deterministic output.
func (e *Engine) Snapshot() []domain.TermPostings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	terms := make([]string, 0, len(e.terms))
	for term := range e.terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	entries := make([]domain.TermPostings, 0, len(terms))
	for _, term := range terms {
		postings := make([]domain.Posting, len(e.terms[term]))
		copy(postings, e.terms[term])
		entries = append(entries, domain.TermPostings{Term: term, Postings: postings})
	}
	return entries
}

// Tokenize lower-cases text, strips everything outside the kept script
// ranges, splits on whitespace and drops short tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := stripPattern.ReplaceAllString(strings.ToLower(text), "")
	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, w := range fields {
		if utf8.RuneCountInString(w) > minTokenLength {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func termFrequency(words []string) map[string]int {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	return freq
}

// frequencyVector normalizes raw counts by the total token count.
func frequencyVector(freq map[string]int) map[string]float64 {
	total := 0
	for _, c := range freq {
		total += c
	}
	vector := make(map[string]float64, len(freq))
	if total == 0 {
		return vector
	}
	for term, c := range freq {
		vector[term] = float64(c) / float64(total)
	}
	return vector
}

// cosineSimilarity is the dot product over the term intersection divided by
// the product of Euclidean norms; zero when either vector is all-zero.
func cosineSimilarity(a, b map[string]float64) float64 {
	var dot float64
	for term, av := range a {
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	var normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// similarityQualifies applies the strict threshold: a similarity of exactly
// the threshold value is excluded.
func similarityQualifies(sim float64) bool {
	return sim > similarityThreshold
}

// excerpt cuts ~150 characters around the first occurrence of any keyword,
// with 50 characters of leading context and ellipsis markers at truncated
// ends. Without a match it starts at offset zero. Offsets count runes so
// Arabic text is cut on character boundaries.
func excerpt(content string, keywords []string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	lower := strings.ToLower(content)

	match := 0
	for _, kw := range keywords {
		if idx := strings.Index(lower, kw); idx >= 0 {
			match = utf8.RuneCountInString(lower[:idx])
			break
		}
	}

	start := match - excerptLeadIn
	if start < 0 {
		start = 0
	}
	end := match + excerptLength
	if end > len(runes) {
		end = len(runes)
	}

	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}
