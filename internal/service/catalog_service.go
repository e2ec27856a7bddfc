package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ansamedicdent/catalog_api/internal/models"
	"github.com/ansamedicdent/catalog_api/internal/utils"
)

// RemoteSource supplies raw rows from the remote catalog store. The SQL
// repository implements it directly; the redis decorator and test fakes
// stand in behind the same interface.
type RemoteSource interface {
	ListProducts(ctx context.Context) ([]models.RemoteProduct, error)
}

// StaticSource supplies the bundled catalog. Reads are in-memory and never
// block.
type StaticSource interface {
	Categories() ([]models.StaticCategory, error)
	Products() ([]models.Product, error)
}

// CatalogService aggregates the remote and static product sources into one
// unified catalog view. Every read builds fresh values; nothing is cached
// here (caching is an explicit opt-in decorator on the remote source).
type CatalogService struct {
	remote        RemoteSource
	static        StaticSource
	remoteTimeout time.Duration
}

// NewCatalogService constructs a CatalogService. remoteTimeout bounds the
// remote fetch so an unreachable store cannot delay the static fallback.
func NewCatalogService(remote RemoteSource, staticSrc StaticSource, remoteTimeout time.Duration) *CatalogService {
	return &CatalogService{remote: remote, static: staticSrc, remoteTimeout: remoteTimeout}
}

// GetAllProducts fetches both sources concurrently and returns the
// normalized remote products followed by the static products, each in their
// source order. A remote failure degrades to static-only results; no fault
// in either source escapes this call.
func (s *CatalogService) GetAllProducts(ctx context.Context) []models.Product {
	var remote, bundled []models.Product

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rctx, cancel := context.WithTimeout(gctx, s.remoteTimeout)
		defer cancel()
		rows, err := s.remote.ListProducts(rctx)
		if err != nil {
			log.Warn().Err(err).Msg("Remote catalog unavailable, serving static catalog only")
			return nil
		}
		remote = s.normalizeRows(rows)
		return nil
	})
	g.Go(func() error {
		p, err := s.static.Products()
		if err != nil {
			log.Error().Err(err).Msg("Static catalog read failed")
			return nil
		}
		bundled = p
		return nil
	})
	_ = g.Wait()

	all := make([]models.Product, 0, len(remote)+len(bundled))
	all = append(all, remote...)
	all = append(all, bundled...)
	return all
}

// GetAllCategories merges the static category definitions with any category
// labels seen only in remote data and assigns every product to its resolved
// category. Static categories come first in file order, then synthesized
// remote-only categories in first-seen order.
func (s *CatalogService) GetAllCategories(ctx context.Context) []models.Category {
	return s.categorize(s.GetAllProducts(ctx))
}

// QueryProducts runs the filter stage of the pipeline over a single
// aggregate snapshot, so one request never fetches the sources twice.
func (s *CatalogService) QueryProducts(ctx context.Context, categoryID, searchTerm string) []models.Product {
	products := s.GetAllProducts(ctx)
	var cats []models.Category
	if categoryID != "" && categoryID != CategoryAll {
		cats = s.categorize(products)
	}
	return FilterProducts(products, cats, categoryID, searchTerm)
}

func (s *CatalogService) categorize(products []models.Product) []models.Category {
	staticCats, err := s.static.Categories()
	if err != nil {
		log.Error().Err(err).Msg("Static catalog read failed")
	}

	// Slice plus index map keeps insertion order, which a bare map loses.
	index := make(map[string]int, len(staticCats))
	cats := make([]models.Category, 0, len(staticCats))
	for _, sc := range staticCats {
		index[sc.ID] = len(cats)
		cats = append(cats, models.Category{ID: sc.ID, Name: sc.Name, Products: []models.Product{}})
	}

	for _, p := range products {
		if p.Source != models.SourceSupabase || p.Category == "" {
			continue
		}
		id := Slugify(p.Category)
		if _, ok := index[id]; !ok {
			index[id] = len(cats)
			cats = append(cats, models.Category{ID: id, Name: p.Category, Products: []models.Product{}})
		}
	}

	for _, p := range products {
		id := resolveCategoryID(p)
		if id == "" {
			continue
		}
		i, ok := index[id]
		if !ok {
			// Data inconsistency between sources: the product stays in the
			// all-products list but joins no category.
			log.Warn().Str("product_id", p.ID).Str("category", id).
				Msg("Product category not found, omitted from category lists")
			continue
		}
		cats[i].Products = append(cats[i].Products, p)
	}
	return cats
}

// GetProductsByCategory returns the product list of the matching category,
// or an empty slice when no category matches.
func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID string) []models.Product {
	for _, c := range s.GetAllCategories(ctx) {
		if c.ID == categoryID {
			return c.Products
		}
	}
	return []models.Product{}
}

// GetProductByID returns the first product whose id matches, scanning the
// aggregated list in its remote-first order. Ids are not guaranteed unique
// across sources; on a collision the remote record wins.
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range s.GetAllProducts(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, utils.ErrProductNotFound
}

// GetFeaturedProducts returns products flagged for promotional placement in
// aggregate order. limit <= 0 means no limit.
func (s *CatalogService) GetFeaturedProducts(ctx context.Context, limit int) []models.Product {
	featured := make([]models.Product, 0)
	for _, p := range s.GetAllProducts(ctx) {
		if !p.Featured {
			continue
		}
		featured = append(featured, p)
		if limit > 0 && len(featured) == limit {
			break
		}
	}
	return featured
}

// normalizeRows converts remote rows to the unified shape, dropping
// malformed rows without failing the batch.
func (s *CatalogService) normalizeRows(rows []models.RemoteProduct) []models.Product {
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p, err := NormalizeRemoteProduct(row)
		if err != nil {
			log.Warn().Err(err).Str("product_id", row.ID).Msg("Dropping malformed remote product")
			continue
		}
		products = append(products, p)
	}
	return products
}

// NormalizeRemoteProduct maps one remote catalog row into the unified
// Product shape, flattening the loosely-typed key-value maps into display
// strings in document order.
func NormalizeRemoteProduct(row models.RemoteProduct) (models.Product, error) {
	if row.ID == "" || row.Categoria == "" || row.NombreProducto == "" || row.ImagenPrincipal == "" {
		return models.Product{}, fmt.Errorf("%w: missing required field", utils.ErrMalformedRecord)
	}

	features := make([]string, 0, len(row.Caracteristicas))
	for _, pair := range row.Caracteristicas {
		switch pair.Value.Kind {
		case models.FlexString:
			features = append(features, pair.Value.Str)
		case models.FlexList:
			features = append(features, pair.Value.List...)
		case models.FlexObject:
			features = append(features, pair.Key+": "+string(pair.Value.Raw))
		}
		// Bare scalars carry no display text of their own and are skipped.
	}

	specs := make([]models.Specification, 0, len(row.Especificaciones))
	for _, pair := range row.Especificaciones {
		specs = append(specs, models.Specification{Name: pair.Key, Value: pair.Value.Text()})
	}

	// Principal image always first; duplicates are left alone.
	images := make([]string, 0, 1+len(row.ImagenesAdicionales))
	images = append(images, row.ImagenPrincipal)
	images = append(images, row.ImagenesAdicionales...)

	return models.Product{
		ID:          row.ID,
		ImageURL:    row.ImagenPrincipal,
		Name:        row.NombreProducto,
		Description: row.Descripcion,
		Category:    row.Categoria,
		Featured:    row.Destacado,
		Details: []models.ProductDetail{{
			Images:         images,
			Features:       features,
			Specifications: specs,
		}},
		Source: models.SourceSupabase,
	}, nil
}

// resolveCategoryID is the only place aggregation branches on provenance:
// static products carry their category id verbatim, remote free-text labels
// are slugified.
func resolveCategoryID(p models.Product) string {
	if p.Category == "" {
		return ""
	}
	if p.Source == models.SourceSupabase {
		return Slugify(p.Category)
	}
	return p.Category
}
