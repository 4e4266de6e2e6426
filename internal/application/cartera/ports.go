package cartera

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios de cartera y capital atados a esa tx.
type TxRunner interface {
	RunCartera(ctx context.Context, fn func(
		carteraRepo repository.CarteraRepository,
		carteraMovRepo repository.CarteraMovimientoRepository,
		capitalRepo repository.CapitalMovimientoRepository,
	) error) error
}

// CapitalLedger registra en el libro de capital el recaudo de un abono,
// usando el repositorio del caller (misma transacción).
type CapitalLedger interface {
	RegistrarAbonoCarteraInTx(
		capitalRepo repository.CapitalMovimientoRepository,
		referenciaID string,
		monto decimal.Decimal,
		usuarioID *string,
		now time.Time,
	) error
}
