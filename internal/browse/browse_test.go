package browse

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sharedesk/internal/models"
)

func catalogue() []models.Space {
	return []models.Space{
		{ID: 1, Name: "beta Hub", Price: 200, AvailableCapacity: 3},
		{ID: 2, Name: "Alpha Loft", Price: 100, AvailableCapacity: 0},
		{ID: 3, Name: "Gamma Desk", Price: 200, AvailableCapacity: 8},
		{ID: 4, Name: "alpha annex", Price: 50, AvailableCapacity: 3},
	}
}

func ids(spaces []models.Space) []int {
	out := make([]int, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, s.ID)
	}
	return out
}

func TestSortKeys(t *testing.T) {
	cases := []struct {
		key  SortKey
		want []int
	}{
		{LowPrice, []int{4, 2, 1, 3}},
		{HighPrice, []int{1, 3, 2, 4}},
		{StartAlphabet, []int{4, 2, 1, 3}},
		{EndAlphabet, []int{3, 1, 2, 4}},
		{LowCapacity, []int{2, 1, 4, 3}},
		{HighCapacity, []int{3, 1, 4, 2}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			got := ids(Sort(catalogue(), tc.key))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	for _, key := range SortKeys {
		once := Sort(catalogue(), key)
		twice := Sort(once, key)
		if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
			t.Fatalf("%s: resorting changed order (-once +twice):\n%s", key, diff)
		}
	}
}

func TestSortUnknownKeyKeepsOrder(t *testing.T) {
	got := ids(Sort(catalogue(), "byMood"))
	if diff := cmp.Diff([]int{1, 2, 3, 4}, got); diff != "" {
		t.Fatalf("unexpected reorder (-want +got):\n%s", diff)
	}
	if SortKey("byMood").Valid() {
		t.Fatal("unknown key reported valid")
	}
}

func TestSortKeysComeInPairs(t *testing.T) {
	if len(SortKeys) != 6 {
		t.Fatalf("expected 6 sort keys, got %d", len(SortKeys))
	}
	for i := 0; i < len(SortKeys); i += 2 {
		asc := Sort(catalogue(), SortKeys[i])
		desc := Sort(catalogue(), SortKeys[i+1])
		fn := comparators[SortKeys[i]]
		for j := range asc {
			if fn(asc[j], desc[len(desc)-1-j]) != 0 {
				t.Fatalf("%s and %s are not mirror orders", SortKeys[i], SortKeys[i+1])
			}
		}
	}
}

func TestSearchIsCaseInsensitiveOverAllSpaces(t *testing.T) {
	l := NewListing(0)
	l.SetSpaces(catalogue())
	l.Search("gamma")
	l.Search("ALPHA")

	if diff := cmp.Diff([]int{2, 4}, ids(l.Filtered())); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchKeepsActiveSort(t *testing.T) {
	l := NewListing(0)
	l.SetSpaces(catalogue())
	l.SortBy(LowPrice)
	l.Search("alpha")

	if diff := cmp.Diff([]int{4, 2}, ids(l.Filtered())); diff != "" {
		t.Fatalf("search lost sort order (-want +got):\n%s", diff)
	}
}

func manySpaces(n int) []models.Space {
	out := make([]models.Space, n)
	for i := range out {
		out[i] = models.Space{ID: i + 1, Name: fmt.Sprintf("Space %02d", i+1), Price: float64(i)}
	}
	return out
}

func TestPagination(t *testing.T) {
	l := NewListing(DefaultPageSize)
	l.SetSpaces(manySpaces(14))

	if got := l.TotalPages(); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
	for page := 1; page <= 3; page++ {
		l.SetPage(page)
		if n := len(l.Page()); n > DefaultPageSize {
			t.Fatalf("page %d holds %d spaces", page, n)
		}
	}
	l.SetPage(3)
	if diff := cmp.Diff([]int{13, 14}, ids(l.Page())); diff != "" {
		t.Fatalf("last page mismatch (-want +got):\n%s", diff)
	}

	l.SetPage(99)
	if l.CurrentPage() != 3 {
		t.Fatalf("expected page clamped to 3, got %d", l.CurrentPage())
	}
	l.SetPage(-1)
	if l.CurrentPage() != 1 {
		t.Fatalf("expected page clamped to 1, got %d", l.CurrentPage())
	}
}

func TestSearchAndSortResetPage(t *testing.T) {
	l := NewListing(DefaultPageSize)
	l.SetSpaces(manySpaces(14))

	l.SetPage(3)
	l.SortBy(HighPrice)
	if l.CurrentPage() != 1 {
		t.Fatalf("sort left page at %d", l.CurrentPage())
	}

	l.SetPage(2)
	l.Search("space 1")
	if l.CurrentPage() != 1 {
		t.Fatalf("search left page at %d", l.CurrentPage())
	}
}

func TestEmptyListing(t *testing.T) {
	l := NewListing(DefaultPageSize)
	l.SetSpaces(nil)
	l.SetPage(4)

	if l.TotalPages() != 0 || l.CurrentPage() != 1 || len(l.Page()) != 0 {
		t.Fatalf("unexpected empty state: pages=%d page=%d len=%d", l.TotalPages(), l.CurrentPage(), len(l.Page()))
	}
}

func TestRun(t *testing.T) {
	page := Run(manySpaces(14), Query{Search: "space", Sort: HighPrice, Page: 2, PageSize: 5})

	want := models.SpacePage{Page: 2, TotalPages: 3, Total: 14}
	got := page
	got.Spaces = nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("page header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{9, 8, 7, 6, 5}, ids(page.Spaces)); diff != "" {
		t.Fatalf("page content mismatch (-want +got):\n%s", diff)
	}
}
