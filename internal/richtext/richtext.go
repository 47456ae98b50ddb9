package richtext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text reduces a rich-text HTML fragment to plain text with collapsed
// whitespace, suitable for indexing and excerpting. Input that carries no
// markup passes through with whitespace collapsed; unparseable input is
// returned as-is.
func Text(html string) string {
	if html == "" {
		return ""
	}
	if !strings.ContainsRune(html, '<') {
		return collapse(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapse(html)
	}
	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
