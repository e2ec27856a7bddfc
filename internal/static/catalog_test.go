package static

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansamedicdent/catalog_api/internal/models"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	c := NewCatalog("")

	cats, err := c.Categories()
	require.NoError(t, err)
	require.NotEmpty(t, cats)

	seen := make(map[string]bool)
	for _, cat := range cats {
		assert.NotEmpty(t, cat.ID)
		assert.NotEmpty(t, cat.Name)
		assert.False(t, seen[cat.ID], "duplicate category id %s", cat.ID)
		seen[cat.ID] = true
	}
}

func TestProductsAreTaggedWithSourceAndCategory(t *testing.T) {
	c := NewCatalog("")

	cats, err := c.Categories()
	require.NoError(t, err)
	products, err := c.Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	ids := make(map[string]bool)
	catIDs := make(map[string]bool)
	for _, cat := range cats {
		catIDs[cat.ID] = true
	}
	for _, p := range products {
		assert.Equal(t, models.SourceJSON, p.Source)
		assert.True(t, catIDs[p.Category], "product %s has unknown category %s", p.ID, p.Category)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.ImageURL)
		assert.False(t, ids[p.ID], "duplicate product id %s", p.ID)
		ids[p.ID] = true
	}
}

func TestBundleHasFeaturedProducts(t *testing.T) {
	c := NewCatalog("")

	products, err := c.Products()
	require.NoError(t, err)

	featured := 0
	for _, p := range products {
		if p.Featured {
			featured++
		}
	}
	assert.Greater(t, featured, 0)
}

func TestMissingOverrideFileFails(t *testing.T) {
	c := NewCatalog("/does/not/exist.json")
	_, err := c.Categories()
	assert.Error(t, err)
}

func TestProductsReturnsFreshSlice(t *testing.T) {
	c := NewCatalog("")

	first, err := c.Products()
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := c.Products()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name)
}
