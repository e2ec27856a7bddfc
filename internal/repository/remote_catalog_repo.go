package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ansamedicdent/catalog_api/internal/models"
)

// RemoteCatalogRepository reads the productos table of the remote catalog
// store. The catalog never writes to it; product import is external tooling.
type RemoteCatalogRepository struct {
	db *sqlx.DB
}

// NewRemoteCatalogRepository creates a new RemoteCatalogRepository.
func NewRemoteCatalogRepository(db *sqlx.DB) *RemoteCatalogRepository {
	return &RemoteCatalogRepository{db: db}
}

// ListProducts returns every remote product row, most recent first. This is
// the single query the aggregation pipeline issues.
func (r *RemoteCatalogRepository) ListProducts(ctx context.Context) ([]models.RemoteProduct, error) {
	const q = `
        SELECT id, categoria, nombre_producto, descripcion, imagen_principal,
               imagenes_adicionales, caracteristicas, especificaciones,
               destacado, created_at, updated_at
        FROM productos
        ORDER BY created_at DESC`

	var rows []models.RemoteProduct
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
