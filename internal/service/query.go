package service

import (
	"regexp"
	"strings"

	"github.com/ansamedicdent/catalog_api/internal/models"
)

// CategoryAll is the sentinel category id selecting every product.
const CategoryAll = "all"

var whitespaceRE = regexp.MustCompile(`\s+`)

// Slugify lowercases a free-text label and replaces whitespace runs with
// hyphens, producing a stable category id for remote labels.
func Slugify(label string) string {
	return whitespaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
}

// FilterProducts narrows the aggregated product set by category selection
// and free-text search. categoryID "all" (or empty) selects every product;
// any other value selects exactly the matching category's list, or nothing.
// A non-empty trimmed searchTerm further restricts to products whose name or
// description contains the term as a case-insensitive substring. The inputs
// are never mutated and output order follows the selected source list.
func FilterProducts(all []models.Product, categories []models.Category, categoryID, searchTerm string) []models.Product {
	source := all
	if categoryID != "" && categoryID != CategoryAll {
		source = nil
		for _, c := range categories {
			if c.ID == categoryID {
				source = c.Products
				break
			}
		}
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]models.Product, 0, len(source))
	for _, p := range source {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}
