package persistence

import (
	"fmt"
	"strings"

	"github.com/commerce/backend/internal/domain/shared"
)

// applySort validates the requested sort column against a whitelist and
// appends the ORDER BY clause parts. Unknown columns fall back to
// created_at so user input never reaches raw SQL.
func applySort(filter shared.Filter, allowed map[string]bool) string {
	column := filter.OrderBy
	if column == "" || !allowed[column] {
		column = "created_at"
	}

	dir := strings.ToLower(filter.OrderDir)
	if dir != "asc" {
		dir = "desc"
	}

	return fmt.Sprintf("%s %s", column, dir)
}

// paging normalizes page and page size and returns offset and limit
func paging(filter shared.Filter) (offset, limit int) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return (page - 1) * size, size
}
