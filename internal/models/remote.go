package models

import (
	"time"

	"github.com/lib/pq"
)

// RemoteProduct is one row of the remote catalog's productos table. Column
// names follow the upstream (Spanish) schema; the normalization adapter in
// the service layer converts rows into the unified Product shape.
type RemoteProduct struct {
	ID                  string         `db:"id" json:"id"`
	Categoria           string         `db:"categoria" json:"categoria"`
	NombreProducto      string         `db:"nombre_producto" json:"nombre_producto"`
	Descripcion         string         `db:"descripcion" json:"descripcion"`
	ImagenPrincipal     string         `db:"imagen_principal" json:"imagen_principal"`
	ImagenesAdicionales pq.StringArray `db:"imagenes_adicionales" json:"imagenes_adicionales"`
	Caracteristicas     FlexMap        `db:"caracteristicas" json:"caracteristicas"`
	Especificaciones    FlexMap        `db:"especificaciones" json:"especificaciones"`
	Destacado           bool           `db:"destacado" json:"destacado"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}
