package service

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage clamps pagination parameters: page is 1-based, limit is
// capped at maxPageLimit.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// totalPages computes the page count for a total row count.
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
