package pagination

// SearchQuery carries the common listing parameters: offset pagination,
// free-text terms, and sorting.
type SearchQuery struct {
	Page      int
	PerPage   int
	Terms     string
	Sort      string
	Direction string
}

// NewSearchQuery builds a query with sane bounds applied.
func NewSearchQuery(page, perPage int, terms, sort, direction string) SearchQuery {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if direction != "desc" {
		direction = "asc"
	}
	return SearchQuery{
		Page:      page,
		PerPage:   perPage,
		Terms:     terms,
		Sort:      sort,
		Direction: direction,
	}
}

// Offset returns the row offset for the query.
func (q SearchQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// Page is one page of listed items plus the totals needed to paginate.
type Page[T any] struct {
	CurrentPage int
	PerPage     int
	Total       int64
	Items       []T
}

// Map converts a page of one item type into a page of another.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
		Items:       items,
	}
}
