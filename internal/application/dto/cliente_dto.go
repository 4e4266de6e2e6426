package dto

import "time"

// CrearClienteRequest body para POST /api/clientes.
type CrearClienteRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=2,max=150"`
	Telefono  string `json:"telefono,omitempty" validate:"omitempty,max=30"`
	Direccion string `json:"direccion,omitempty" validate:"omitempty,max=200"`
}

// ActualizarClienteRequest body para PUT /api/clientes/:id.
type ActualizarClienteRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=2,max=150"`
	Telefono  string `json:"telefono,omitempty" validate:"omitempty,max=30"`
	Direccion string `json:"direccion,omitempty" validate:"omitempty,max=200"`
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Telefono      string    `json:"telefono,omitempty"`
	Direccion     string    `json:"direccion,omitempty"`
	FechaRegistro time.Time `json:"fecha_registro"`
}
