package service

import "github.com/ansamedicdent/catalog_api/internal/models"

// PageResult is one fixed-size slice of a filtered product sequence.
type PageResult struct {
	CurrentProducts []models.Product `json:"currentProducts"`
	TotalPages      int              `json:"totalPages"`
}

// Paginate slices products into 1-indexed pages of pageSize items.
// TotalPages is ceil(len/pageSize), 0 for an empty input. Pages outside
// [1, TotalPages] yield an empty slice rather than an error; clamping is the
// caller's concern.
func Paginate(products []models.Product, page, pageSize int) PageResult {
	if pageSize <= 0 {
		return PageResult{CurrentProducts: []models.Product{}}
	}
	totalPages := (len(products) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if page < 1 || start >= len(products) {
		return PageResult{CurrentProducts: []models.Product{}, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}

	out := make([]models.Product, end-start)
	copy(out, products[start:end])
	return PageResult{CurrentProducts: out, TotalPages: totalPages}
}
