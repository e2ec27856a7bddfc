package static

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/ansamedicdent/catalog_api/internal/models"
)

//go:embed data/products_categories.json
var bundled []byte

// Catalog serves the build-time-bundled product data. The file is parsed
// once on first use and treated as a process-wide constant afterwards; reads
// never touch the network and never fail after a successful load.
type Catalog struct {
	once sync.Once
	path string
	data *models.StaticCatalog
	err  error
}

// NewCatalog creates a static catalog backed by the embedded bundle. When
// path is non-empty the file at that path replaces the embedded data, which
// lets deployments override the bundle without rebuilding.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

func (c *Catalog) load() {
	raw := bundled
	if c.path != "" {
		b, err := os.ReadFile(c.path)
		if err != nil {
			c.err = fmt.Errorf("read static catalog %s: %w", c.path, err)
			return
		}
		raw = b
	}
	var data models.StaticCatalog
	if err := json.Unmarshal(raw, &data); err != nil {
		c.err = fmt.Errorf("parse static catalog: %w", err)
		return
	}
	c.data = &data
}

// Categories returns the static category definitions in file order.
func (c *Catalog) Categories() ([]models.StaticCategory, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	return c.data.Categories, nil
}

// Products returns every bundled product flattened across categories, each
// tagged with source=json and its originating category id. A fresh slice is
// returned on every call so callers can never mutate the bundle.
func (c *Catalog) Products() ([]models.Product, error) {
	cats, err := c.Categories()
	if err != nil {
		return nil, err
	}
	var products []models.Product
	for _, cat := range cats {
		for _, p := range cat.Products {
			p.Category = cat.ID
			p.Source = models.SourceJSON
			products = append(products, p)
		}
	}
	return products, nil
}
