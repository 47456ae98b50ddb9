package domain

// Pagination describes the position of one page within a filtered listing.
// Pages are 1-indexed; TotalPages is ceil(Total / Limit).
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one slice of a filtered, sorted listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Pagination `json:"pagination"`
}
