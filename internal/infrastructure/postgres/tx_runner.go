package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sicoil/backoffice/internal/application/capital"
	"github.com/sicoil/backoffice/internal/application/cartera"
	"github.com/sicoil/backoffice/internal/application/inventario"
	"github.com/sicoil/backoffice/internal/application/venta"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

// TxRunner cubre los puertos transaccionales de todos los casos de uso.
var _ inventario.TxRunner = (*TxRunner)(nil)
var _ venta.TxRunner = (*TxRunner)(nil)
var _ cartera.TxRunner = (*TxRunner)(nil)
var _ capital.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de inventario y capital, ejecuta
// fn y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	kardexRepo repository.KardexRepository,
	capitalRepo repository.CapitalMovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLoteRepository(tx), NewKardexRepository(tx), NewCapitalMovimientoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVenta inicia una transacción con todos los repos que toca una venta
// (crear o anular).
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	loteRepo repository.LoteRepository,
	kardexRepo repository.KardexRepository,
	capitalRepo repository.CapitalMovimientoRepository,
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewVentaRepository(tx),
		NewLoteRepository(tx),
		NewKardexRepository(tx),
		NewCapitalMovimientoRepository(tx),
		NewCarteraRepository(tx),
		NewCarteraMovimientoRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCartera inicia una transacción con los repos de cartera y capital (abonos).
func (r *TxRunner) RunCartera(ctx context.Context, fn func(
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
	capitalRepo repository.CapitalMovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCarteraRepository(tx), NewCarteraMovimientoRepository(tx), NewCapitalMovimientoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCapital inicia una transacción con el repo de capital (inyecciones y
// retiros).
func (r *TxRunner) RunCapital(ctx context.Context, fn func(
	capitalRepo repository.CapitalMovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCapitalMovimientoRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
