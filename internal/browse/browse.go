// Package browse holds the state behind the space catalogue: a name search
// over every space, one of six sort orders and fixed-size pages.
package browse

import (
	"cmp"
	"slices"
	"strings"

	"sharedesk/internal/models"
)

const DefaultPageSize = 6

type SortKey string

const (
	LowPrice      SortKey = "lowPrice"
	HighPrice     SortKey = "highPrice"
	StartAlphabet SortKey = "startAlphabet"
	EndAlphabet   SortKey = "endAlphabet"
	LowCapacity   SortKey = "lowCapacity"
	HighCapacity  SortKey = "highCapacity"
)

// SortKeys lists the supported orders, ascending before descending.
var SortKeys = []SortKey{LowPrice, HighPrice, StartAlphabet, EndAlphabet, LowCapacity, HighCapacity}

var comparators = map[SortKey]func(a, b models.Space) int{
	LowPrice:      func(a, b models.Space) int { return cmp.Compare(a.Price, b.Price) },
	HighPrice:     func(a, b models.Space) int { return cmp.Compare(b.Price, a.Price) },
	StartAlphabet: func(a, b models.Space) int { return compareNames(a.Name, b.Name) },
	EndAlphabet:   func(a, b models.Space) int { return compareNames(b.Name, a.Name) },
	LowCapacity:   func(a, b models.Space) int { return cmp.Compare(a.AvailableCapacity, b.AvailableCapacity) },
	HighCapacity:  func(a, b models.Space) int { return cmp.Compare(b.AvailableCapacity, a.AvailableCapacity) },
}

func (k SortKey) Valid() bool {
	_, ok := comparators[k]
	return ok
}

func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort returns a stably sorted copy of spaces. Unknown keys keep the input order.
func Sort(spaces []models.Space, key SortKey) []models.Space {
	out := slices.Clone(spaces)
	if fn, ok := comparators[key]; ok {
		slices.SortStableFunc(out, fn)
	}
	return out
}

// Filter keeps the spaces whose name contains term, ignoring case. An empty
// term keeps everything.
func Filter(spaces []models.Space, term string) []models.Space {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Space, 0, len(spaces))
	for _, s := range spaces {
		if term == "" || strings.Contains(strings.ToLower(s.Name), term) {
			out = append(out, s)
		}
	}
	return out
}

// Listing is the catalogue state of one viewer.
type Listing struct {
	all      []models.Space
	filtered []models.Space
	term     string
	sortKey  SortKey
	page     int
	pageSize int
}

func NewListing(pageSize int) *Listing {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Listing{page: 1, pageSize: pageSize}
}

// SetSpaces replaces the catalogue, keeping the current search and sort.
func (l *Listing) SetSpaces(spaces []models.Space) {
	l.all = slices.Clone(spaces)
	l.refresh()
}

// Search filters every space, not only the current view, and re-applies the
// active sort.
func (l *Listing) Search(term string) {
	l.term = term
	l.refresh()
}

func (l *Listing) SortBy(key SortKey) {
	l.sortKey = key
	l.filtered = Sort(l.filtered, key)
	l.page = 1
}

func (l *Listing) refresh() {
	l.filtered = Sort(Filter(l.all, l.term), l.sortKey)
	l.page = 1
}

// SetPage moves to page n, clamped to the available pages.
func (l *Listing) SetPage(n int) {
	if total := l.TotalPages(); n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	l.page = n
}

func (l *Listing) CurrentPage() int { return l.page }

func (l *Listing) SortKey() SortKey { return l.sortKey }

func (l *Listing) Term() string { return l.term }

func (l *Listing) Filtered() []models.Space { return slices.Clone(l.filtered) }

func (l *Listing) TotalPages() int {
	return (len(l.filtered) + l.pageSize - 1) / l.pageSize
}

// Page returns the spaces of the current page.
func (l *Listing) Page() []models.Space {
	start := (l.page - 1) * l.pageSize
	if start >= len(l.filtered) {
		return []models.Space{}
	}
	end := min(start+l.pageSize, len(l.filtered))
	return slices.Clone(l.filtered[start:end])
}

// Query is a one-shot browse request.
type Query struct {
	Search   string
	Sort     SortKey
	Page     int
	PageSize int
}

// Run applies q to spaces and returns the requested page.
func Run(spaces []models.Space, q Query) models.SpacePage {
	l := NewListing(q.PageSize)
	l.SetSpaces(spaces)
	l.Search(q.Search)
	if q.Sort != "" {
		l.SortBy(q.Sort)
	}
	l.SetPage(q.Page)
	return models.SpacePage{
		Spaces:     l.Page(),
		Page:       l.CurrentPage(),
		TotalPages: l.TotalPages(),
		Total:      len(l.filtered),
	}
}
