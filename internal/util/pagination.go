package util

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// NormalizePage clamps page and perPage to sane bounds.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage
}

// Offset converts a normalized page/perPage pair into a query offset.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// Pages returns the total page count for a result set.
func Pages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
