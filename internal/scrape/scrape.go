// Package scrape holds the leaf helpers shared by every provider extractor:
// fallback-chain field lookup over parsed HTML, the two engagement count
// policies, and byte-size formatting.
package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Candidate is one entry of a fallback chain. An empty Attr reads the
// trimmed text of the matched elements instead of an attribute.
type Candidate struct {
	Selector string
	Attr     string
}

// FirstMatch evaluates candidates in order and returns the first non-empty
// value. A candidate counts only if its selector matches at least one
// element. Returns "" when no candidate resolves.
func FirstMatch(sel *goquery.Selection, candidates ...Candidate) string {
	if sel == nil {
		return ""
	}
	for _, c := range candidates {
		found := sel.Find(c.Selector)
		if found.Length() == 0 {
			continue
		}
		if v := resolve(found, c.Attr); v != "" {
			return v
		}
	}
	return ""
}

// Text returns the trimmed text of every element matching selector.
func Text(sel *goquery.Selection, selector string) string {
	return FirstMatch(sel, Candidate{Selector: selector})
}

// Attr returns the trimmed attribute of the first element matching selector.
func Attr(sel *goquery.Selection, selector, attr string) string {
	return FirstMatch(sel, Candidate{Selector: selector, Attr: attr})
}

// ChildText finds the first element matching anchor, climbs to its nearest
// ancestor matching container and returns the trimmed text of that
// container's n-th (zero based) child element. Outer wrappers that also
// match container are never used.
func ChildText(sel *goquery.Selection, anchor, container string, n int) string {
	if sel == nil {
		return ""
	}
	block := sel.Find(anchor).First().Closest(container)
	return strings.TrimSpace(block.Children().Eq(n).Text())
}

func resolve(found *goquery.Selection, attr string) string {
	if attr == "" {
		return strings.TrimSpace(found.Text())
	}
	return strings.TrimSpace(found.First().AttrOr(attr, ""))
}
