package entity

import "time"

// Cliente representa un cliente del negocio.
type Cliente struct {
	ID            string
	Nombre        string
	Telefono      string
	Direccion     string
	FechaRegistro time.Time
}
