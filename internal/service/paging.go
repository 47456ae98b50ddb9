package service

import "HiddenLight/internal/domain"

// paginate slices items into the requested page. Page and limit below 1 are
// clamped to defaults; a page past the end yields an empty item list with
// the totals intact. TotalPages is ceil(total/limit), so an empty input
// reports zero pages.
func paginate[T any](items []T, page, limit int) domain.Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return domain.Page[T]{
		Items: items[start:end],
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
