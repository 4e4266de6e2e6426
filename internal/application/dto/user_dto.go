package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Usuario    string `json:"usuario" validate:"required,min=3,max=50"`
	Contrasena string `json:"contrasena" validate:"required,min=6,max=72"`
}

// LoginResponse token emitido tras autenticación.
type LoginResponse struct {
	Token   string `json:"token"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
}

// RegistrarUsuarioRequest body para POST /api/auth/registro (solo admin).
type RegistrarUsuarioRequest struct {
	Usuario    string `json:"usuario" validate:"required,min=3,max=50"`
	Contrasena string `json:"contrasena" validate:"required,min=6,max=72"`
	Rol        string `json:"rol" validate:"required,oneof=admin vendedor"`
}

// UsuarioResponse usuario en respuestas (sin hash).
type UsuarioResponse struct {
	ID      string `json:"id"`
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
}
