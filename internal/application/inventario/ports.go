package inventario

import (
	"context"
	"time"

	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para los movimientos de stock y sus efectos en capital.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		kardexRepo repository.KardexRepository,
		capitalRepo repository.CapitalMovimientoRepository,
	) error) error
}

// CapitalLedger registra en el libro de capital la salida por un ingreso de
// mercancía, usando el repositorio del caller (misma transacción).
// Si retorna error el caller debe hacer rollback.
type CapitalLedger interface {
	RegistrarIngresoInventarioInTx(
		capitalRepo repository.CapitalMovimientoRepository,
		lote *entity.Lote,
		cantidad int,
		usuarioID *string,
		now time.Time,
	) error
}
