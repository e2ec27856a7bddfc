package models

// StaticCatalog mirrors the bundled products file:
// { "categories": [ { id, name, products } ] }.
// It is read once at startup and never mutated afterwards.
type StaticCatalog struct {
	Categories []StaticCategory `json:"categories"`
}

// StaticCategory is a category definition from the static catalog file.
// Product entries are author-assigned and already in the unified shape.
type StaticCategory struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}
