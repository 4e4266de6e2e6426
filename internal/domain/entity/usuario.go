package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// Usuario representa un usuario del sistema (actor de los movimientos).
type Usuario struct {
	ID            string
	Usuario       string // nombre de login, único
	Contrasena    string // hash bcrypt
	Rol           string
	FechaRegistro time.Time
}
