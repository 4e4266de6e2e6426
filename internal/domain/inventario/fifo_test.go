package inventario_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/inventario"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func lote(id string, stock int, antiguedad time.Duration) *entity.Lote {
	return &entity.Lote{
		ID:            id,
		Nombre:        "Aceite",
		PrecioCompra:  decimal.NewFromInt(50),
		Stock:         stock,
		FechaRegistro: time.Now().Add(-antiguedad),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignarFIFO_CruzaLotes(t *testing.T) {
	// L1 (3 unidades, más antiguo) y L2 (5 unidades): pedir 6 debe producir
	// exactamente dos asignaciones, 3 de L1 y 3 de L2.
	lotes := []*entity.Lote{
		lote("L1", 3, 48*time.Hour),
		lote("L2", 5, 24*time.Hour),
	}

	asignaciones, err := inventario.AsignarFIFO(lotes, 6)
	require.NoError(t, err)
	require.Len(t, asignaciones, 2)

	assert.Equal(t, "L1", asignaciones[0].Lote.ID)
	assert.Equal(t, 3, asignaciones[0].Cantidad)
	assert.Equal(t, "L2", asignaciones[1].Lote.ID)
	assert.Equal(t, 3, asignaciones[1].Cantidad)
}

func TestAsignarFIFO_UnSoloLoteCubre(t *testing.T) {
	lotes := []*entity.Lote{
		lote("L1", 10, 48*time.Hour),
		lote("L2", 5, 24*time.Hour),
	}

	asignaciones, err := inventario.AsignarFIFO(lotes, 4)
	require.NoError(t, err)
	require.Len(t, asignaciones, 1)
	assert.Equal(t, "L1", asignaciones[0].Lote.ID)
	assert.Equal(t, 4, asignaciones[0].Cantidad)
}

func TestAsignarFIFO_SaltaLotesAgotados(t *testing.T) {
	lotes := []*entity.Lote{
		lote("L1", 0, 72*time.Hour),
		lote("L2", 2, 48*time.Hour),
		lote("L3", 4, 24*time.Hour),
	}

	asignaciones, err := inventario.AsignarFIFO(lotes, 3)
	require.NoError(t, err)
	require.Len(t, asignaciones, 2)
	assert.Equal(t, "L2", asignaciones[0].Lote.ID)
	assert.Equal(t, 2, asignaciones[0].Cantidad)
	assert.Equal(t, "L3", asignaciones[1].Lote.ID)
	assert.Equal(t, 1, asignaciones[1].Cantidad)
}

func TestAsignarFIFO_SinLotes(t *testing.T) {
	_, err := inventario.AsignarFIFO(nil, 1)
	assert.ErrorIs(t, err, domain.ErrSinLoteParaVenta)
}

func TestAsignarFIFO_StockInsuficiente(t *testing.T) {
	lotes := []*entity.Lote{lote("L1", 3, time.Hour)}

	_, err := inventario.AsignarFIFO(lotes, 5)
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	// El mensaje debe nombrar el faltante exacto: disponible y solicitado.
	assert.Contains(t, err.Error(), "(3)")
	assert.Contains(t, err.Error(), "(5)")
}

func TestAsignarFIFO_CantidadInvalida(t *testing.T) {
	lotes := []*entity.Lote{lote("L1", 3, time.Hour)}

	_, err := inventario.AsignarFIFO(lotes, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsignarFIFO_SumaExacta(t *testing.T) {
	lotes := []*entity.Lote{
		lote("L1", 1, 4*time.Hour),
		lote("L2", 1, 3*time.Hour),
		lote("L3", 1, 2*time.Hour),
		lote("L4", 10, time.Hour),
	}

	asignaciones, err := inventario.AsignarFIFO(lotes, 7)
	require.NoError(t, err)

	total := 0
	for _, a := range asignaciones {
		total += a.Cantidad
	}
	assert.Equal(t, 7, total, "las cantidades asignadas deben sumar lo solicitado")
}
