package kardex_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/application/kardex"
	"github.com/sicoil/backoffice/internal/apptest"
	"github.com/sicoil/backoffice/internal/domain/entity"
)

func sembrar(repos *apptest.Repos) {
	repos.Lotes.Items = append(repos.Lotes.Items,
		&entity.Lote{ID: "lote-1", Nombre: "Aceite 20W50"},
		&entity.Lote{ID: "lote-2", Nombre: "Filtro de aire"},
	)
	vendedor := "usuario-2"
	base := time.Now()
	repos.Kardex.Items = append(repos.Kardex.Items,
		&entity.Kardex{ID: "k1", LoteID: "lote-1", Cantidad: 10, Tipo: entity.MovimientoEntrada, FechaRegistro: base.Add(-2 * time.Hour)},
		&entity.Kardex{ID: "k2", LoteID: "lote-1", UsuarioID: &vendedor, Cantidad: 4, Tipo: entity.MovimientoVenta, FechaRegistro: base.Add(-1 * time.Hour)},
		&entity.Kardex{ID: "k3", LoteID: "lote-2", Cantidad: 2, Tipo: entity.MovimientoSalida, FechaRegistro: base},
	)
}

func TestObtenerMovimientos_FiltraPorTipoYResuelveProducto(t *testing.T) {
	repos := apptest.NewRepos()
	sembrar(repos)
	uc := kardex.NewUseCase(repos.Kardex, repos.Lotes)

	movs, total, err := uc.ObtenerMovimientos(context.Background(), dto.ListarKardexRequest{
		Tipo: entity.MovimientoVenta,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, movs, 1)
	assert.Equal(t, "k2", movs[0].ID)
	assert.Equal(t, "Aceite 20W50", movs[0].Producto)
}

func TestObtenerMovimientos_FiltraPorUsuario(t *testing.T) {
	repos := apptest.NewRepos()
	sembrar(repos)
	uc := kardex.NewUseCase(repos.Kardex, repos.Lotes)

	movs, total, err := uc.ObtenerMovimientos(context.Background(), dto.ListarKardexRequest{
		UsuarioID: "usuario-2",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, movs, 1)
	assert.Equal(t, "k2", movs[0].ID)
}

func TestObtenerMovimientos_FiltraPorNombreProducto(t *testing.T) {
	repos := apptest.NewRepos()
	sembrar(repos)
	uc := kardex.NewUseCase(repos.Kardex, repos.Lotes)

	movs, total, err := uc.ObtenerMovimientos(context.Background(), dto.ListarKardexRequest{
		NombreProducto: "aceite",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, movs, 2)
	assert.Equal(t, "k2", movs[0].ID, "solo los movimientos del producto, más reciente primero")
	assert.Equal(t, "k1", movs[1].ID)
}

func TestObtenerMovimientos_OrdenaDescendente(t *testing.T) {
	repos := apptest.NewRepos()
	sembrar(repos)
	uc := kardex.NewUseCase(repos.Kardex, repos.Lotes)

	movs, total, err := uc.ObtenerMovimientos(context.Background(), dto.ListarKardexRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, movs, 3)
	assert.Equal(t, "k3", movs[0].ID, "el movimiento más reciente primero")
}

func TestObtenerPorLote(t *testing.T) {
	repos := apptest.NewRepos()
	sembrar(repos)
	uc := kardex.NewUseCase(repos.Kardex, repos.Lotes)

	movs, err := uc.ObtenerPorLote(context.Background(), "lote-1")
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}
