package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cuando el mensaje necesita cifras (faltante de stock, exceso de abono) se
// envuelven con fmt.Errorf("%w: ..."); la capa HTTP resuelve con errors.Is.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrStockInsuficiente     = errors.New("stock insuficiente")
	ErrSinLoteParaVenta      = errors.New("no existe lote para el producto")
	ErrSinDeudasPendientes   = errors.New("el cliente no tiene deudas pendientes en cartera")
	ErrAbonoExcedeSaldo      = errors.New("el abono excede el saldo pendiente total del cliente")
	ErrVentaAnulada          = errors.New("la venta ya se encuentra anulada")
	ErrUsuarioRequerido      = errors.New("la operación requiere un usuario identificado")
	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	ErrUsuarioYaExiste       = errors.New("el nombre de usuario ya está registrado")
)
