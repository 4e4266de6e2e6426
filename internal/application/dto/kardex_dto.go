package dto

import "time"

// KardexResponse movimiento del kardex.
type KardexResponse struct {
	ID            string    `json:"id"`
	LoteID        string    `json:"lote_id"`
	Producto      string    `json:"producto,omitempty"`
	UsuarioID     *string   `json:"usuario_id,omitempty"`
	Cantidad      int       `json:"cantidad"`
	Tipo          string    `json:"tipo"`
	Comentario    string    `json:"comentario,omitempty"`
	FechaRegistro time.Time `json:"fecha_registro"`
}

// ListarKardexRequest filtros de GET /api/kardex.
type ListarKardexRequest struct {
	PageRequest
	LoteID         string `query:"lote_id" validate:"omitempty,uuid4"`
	UsuarioID      string `query:"usuario_id" validate:"omitempty,uuid4"`
	NombreProducto string `query:"nombre_producto" validate:"omitempty,max=200"`
	Tipo           string `query:"tipo" validate:"omitempty,oneof=ENTRADA SALIDA VENTA DEVOLUCION"`
	Desde          string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta          string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
}
