package finance

import "strconv"

// Ellipsis is the gap marker in a compacted page number sequence.
const Ellipsis = "..."

// Page returns the slice of items for a 1-based page of the given size.
// Out-of-range pages return an empty slice, never an error.
func Page[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// TotalPages returns the number of pages needed for count items at the
// given page size, at least 1.
func TotalPages(count, size int) int {
	if size < 1 {
		return 1
	}

	pages := (count + size - 1) / size
	if pages < 1 {
		pages = 1
	}

	return pages
}

// PageNumbers compacts a page range for display. Seven or fewer pages are
// listed in full; longer ranges keep the edges and the current page's
// neighborhood, with an ellipsis marker for each gap.
func PageNumbers(totalPages, current int) []string {
	if totalPages <= 7 {
		numbers := make([]string, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			numbers = append(numbers, strconv.Itoa(i))
		}

		return numbers
	}

	switch {
	case current <= 3:
		return []string{"1", "2", "3", Ellipsis, strconv.Itoa(totalPages - 1), strconv.Itoa(totalPages)}
	case current >= totalPages-2:
		return []string{"1", "2", Ellipsis, strconv.Itoa(totalPages - 2), strconv.Itoa(totalPages - 1), strconv.Itoa(totalPages)}
	default:
		return []string{"1", Ellipsis, strconv.Itoa(current - 1), strconv.Itoa(current), strconv.Itoa(current + 1), Ellipsis, strconv.Itoa(totalPages)}
	}
}
