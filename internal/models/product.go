package models

// Source marks the provenance of a product record. It only selects the
// category-resolution strategy during aggregation and is never exposed to
// API consumers.
type Source string

const (
	// SourceJSON marks products bundled in the static catalog file.
	SourceJSON Source = "json"
	// SourceSupabase marks products loaded from the remote catalog store.
	SourceSupabase Source = "supabase"
)

// Specification is a single name/value row in a product detail block.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductDetail holds the expanded display data of a product. In practice a
// product carries zero or one of these.
type ProductDetail struct {
	Images         []string        `json:"images"`
	Features       []string        `json:"features"`
	Specifications []Specification `json:"specifications"`
}

// Product is the unified, post-normalization product shape served by the
// catalog regardless of which source a record came from.
type Product struct {
	ID          string          `json:"id"`
	ImageURL    string          `json:"imageUrl"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Featured    bool            `json:"featured,omitempty"`
	Details     []ProductDetail `json:"details,omitempty"`
	Source      Source          `json:"-"`
}

// Category groups products under a stable id and a display label.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}
