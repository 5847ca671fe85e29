package view

import (
	"strconv"
	"strings"
)

const (
	// PageRange is how many pages are shown around the current one.
	PageRange = 5
	// MarginPages is how many pages are always shown at each end.
	MarginPages = 1

	PrevLabel  = "←"
	NextLabel  = "→"
	BreakLabel = "..."
)

// PageItem is one control of the pagination bar.
type PageItem struct {
	Label    string
	Page     int // target page; 0 for a break
	Current  bool
	Disabled bool
}

// Paginate lays out the pagination bar for current of total pages: the
// previous arrow, a window of PageRange pages, MarginPages at both ends with
// a break in each gap, and the next arrow. It returns nil when total <= 1.
func Paginate(current, total int) []PageItem {
	if total <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	items := []PageItem{{Label: PrevLabel, Page: current - 1, Disabled: current == 1}}
	page := func(n int) PageItem {
		return PageItem{Label: strconv.Itoa(n), Page: n, Current: n == current}
	}

	if total <= PageRange {
		for n := 1; n <= total; n++ {
			items = append(items, page(n))
		}
		return append(items, PageItem{Label: NextLabel, Page: current + 1, Disabled: current == total})
	}

	// Window bounds around the zero based selected index. The half range is
	// fractional (2.5 for 5 pages), so left and right are kept doubled.
	selected := current - 1
	left2, right2 := PageRange, PageRange
	switch {
	case 2*selected > 2*total-PageRange:
		right2 = 2 * (total - selected)
		left2 = 2*PageRange - right2
	case 2*selected < PageRange:
		left2 = 2 * selected
		right2 = 2*PageRange - left2
	}
	if selected == 0 {
		right2 -= 2
	}

	for idx := 0; idx < total; idx++ {
		n := idx + 1
		switch {
		case n <= MarginPages, n > total-MarginPages:
			items = append(items, page(n))
		case 2*(idx-selected) >= -left2 && 2*(idx-selected) <= right2:
			items = append(items, page(n))
		case items[len(items)-1].Label != BreakLabel:
			items = append(items, PageItem{Label: BreakLabel})
		}
	}
	return append(items, PageItem{Label: NextLabel, Page: current + 1, Disabled: current == total})
}

// FormatPagination renders items on one line. The current page is bracketed.
func FormatPagination(items []PageItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.Current {
			parts = append(parts, "["+it.Label+"]")
			continue
		}
		parts = append(parts, it.Label)
	}
	return strings.Join(parts, " ")
}
