package capital

import (
	"context"

	"github.com/sicoil/backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de capital atado a esa tx.
type TxRunner interface {
	RunCapital(ctx context.Context, fn func(
		capitalRepo repository.CapitalMovimientoRepository,
	) error) error
}
