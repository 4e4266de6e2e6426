// Package apptest contiene dobles en memoria de los repositorios para las
// pruebas unitarias de los casos de uso. No simulan rollback: cada prueba
// verifica el error devuelto, no el estado tras un fallo parcial.
package apptest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

// Repos agrupa todos los dobles sobre el mismo estado.
type Repos struct {
	Lotes       *LoteRepo
	Kardex      *KardexRepo
	Capital     *CapitalRepo
	Carteras    *CarteraRepo
	CarteraMovs *CarteraMovRepo
	Ventas      *VentaRepo
	Clientes    *ClienteRepo
	Usuarios    *UsuarioRepo
}

// NewRepos crea un juego de repositorios vacío.
func NewRepos() *Repos {
	lotes := &LoteRepo{}
	return &Repos{
		Lotes:       lotes,
		Kardex:      &KardexRepo{Lotes: lotes},
		Capital:     &CapitalRepo{},
		Carteras:    &CarteraRepo{},
		CarteraMovs: &CarteraMovRepo{},
		Ventas:      &VentaRepo{},
		Clientes:    &ClienteRepo{},
		Usuarios:    &UsuarioRepo{},
	}
}

func inRange(t time.Time, desde, hasta *time.Time) bool {
	if desde != nil && t.Before(*desde) {
		return false
	}
	if hasta != nil && t.After(*hasta) {
		return false
	}
	return true
}

// ── Lotes ────────────────────────────────────────────────────────────────────

type LoteRepo struct {
	Items     []*entity.Lote
	ForcedErr error
}

var _ repository.LoteRepository = (*LoteRepo)(nil)

func (r *LoteRepo) Create(lote *entity.Lote) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *lote
	r.Items = append(r.Items, &c)
	return nil
}

func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, l := range r.Items {
		if l.ID == id {
			c := *l
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *LoteRepo) GetForUpdate(id string) (*entity.Lote, error) {
	return r.GetByID(id)
}

func (r *LoteRepo) FindByNombreYPrecio(nombre string, precioCompra decimal.Decimal) (*entity.Lote, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, l := range r.Items {
		if l.Nombre == nombre && l.PrecioCompra.Equal(precioCompra) {
			c := *l
			return &c, nil
		}
	}
	return nil, nil
}

func (r *LoteRepo) ListByNombreForUpdate(nombre string) ([]*entity.Lote, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	var out []*entity.Lote
	for _, l := range r.Items {
		if l.Nombre == nombre {
			c := *l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaRegistro.Before(out[j].FechaRegistro) })
	return out, nil
}

func (r *LoteRepo) ExistsByNombre(nombre string) (bool, error) {
	if r.ForcedErr != nil {
		return false, r.ForcedErr
	}
	for _, l := range r.Items {
		if l.Nombre == nombre {
			return true, nil
		}
	}
	return false, nil
}

func (r *LoteRepo) UpdateStock(id string, stock int) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	for _, l := range r.Items {
		if l.ID == id {
			l.Stock = stock
			l.ActualizadoEn = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *LoteRepo) List(nombreFiltro string) ([]*entity.Lote, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	var out []*entity.Lote
	for _, l := range r.Items {
		if nombreFiltro != "" && !strings.Contains(strings.ToLower(l.Nombre), strings.ToLower(nombreFiltro)) {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

// StockDe devuelve el stock actual de un lote (helper de aserciones).
func (r *LoteRepo) StockDe(id string) int {
	for _, l := range r.Items {
		if l.ID == id {
			return l.Stock
		}
	}
	return -1
}

// ── Kardex ───────────────────────────────────────────────────────────────────

type KardexRepo struct {
	Items     []*entity.Kardex
	Lotes     *LoteRepo // para resolver nombre de producto en filtros
	ForcedErr error
}

var _ repository.KardexRepository = (*KardexRepo)(nil)

func (r *KardexRepo) Create(mov *entity.Kardex) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *mov
	r.Items = append(r.Items, &c)
	return nil
}

func (r *KardexRepo) ListByLote(loteID string) ([]*entity.Kardex, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	var out []*entity.Kardex
	for _, m := range r.Items {
		if m.LoteID == loteID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *KardexRepo) List(filtro repository.KardexFiltro, limit, offset int) ([]*entity.Kardex, int, error) {
	if r.ForcedErr != nil {
		return nil, 0, r.ForcedErr
	}
	var all []*entity.Kardex
	for _, m := range r.Items {
		if filtro.LoteID != "" && m.LoteID != filtro.LoteID {
			continue
		}
		if filtro.UsuarioID != "" && (m.UsuarioID == nil || *m.UsuarioID != filtro.UsuarioID) {
			continue
		}
		if filtro.NombreProducto != "" && !r.loteCoincide(m.LoteID, filtro.NombreProducto) {
			continue
		}
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		if !inRange(m.FechaRegistro, filtro.Desde, filtro.Hasta) {
			continue
		}
		c := *m
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FechaRegistro.After(all[j].FechaRegistro) })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *KardexRepo) loteCoincide(loteID, nombre string) bool {
	if r.Lotes == nil {
		return false
	}
	for _, l := range r.Lotes.Items {
		if l.ID == loteID {
			return strings.Contains(strings.ToLower(l.Nombre), strings.ToLower(nombre))
		}
	}
	return false
}

// PorTipo devuelve los movimientos de un tipo (helper de aserciones).
func (r *KardexRepo) PorTipo(tipo string) []*entity.Kardex {
	var out []*entity.Kardex
	for _, m := range r.Items {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ── Capital ──────────────────────────────────────────────────────────────────

type CapitalRepo struct {
	Items     []*entity.CapitalMovimiento
	ForcedErr error
}

var _ repository.CapitalMovimientoRepository = (*CapitalRepo)(nil)

func (r *CapitalRepo) Create(mov *entity.CapitalMovimiento) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *mov
	r.Items = append(r.Items, &c)
	return nil
}

func (r *CapitalRepo) List(filtro repository.CapitalFiltro, limit, offset int) ([]*entity.CapitalMovimiento, int, error) {
	if r.ForcedErr != nil {
		return nil, 0, r.ForcedErr
	}
	var all []*entity.CapitalMovimiento
	for _, m := range r.Items {
		if filtro.Origen != "" && m.Origen != filtro.Origen {
			continue
		}
		if filtro.EsCredito != nil && m.EsCredito != *filtro.EsCredito {
			continue
		}
		if filtro.ReferenciaID != "" && (m.ReferenciaID == nil || *m.ReferenciaID != filtro.ReferenciaID) {
			continue
		}
		if !inRange(m.CreadoEn, filtro.Desde, filtro.Hasta) {
			continue
		}
		c := *m
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreadoEn.After(all[j].CreadoEn) })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *CapitalRepo) ListByReferencia(referenciaID string) ([]*entity.CapitalMovimiento, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	var out []*entity.CapitalMovimiento
	for _, m := range r.Items {
		if m.ReferenciaID != nil && *m.ReferenciaID == referenciaID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *CapitalRepo) SumSaldoReal(desde, hasta *time.Time) (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	sum := decimal.Zero
	for _, m := range r.Items {
		if !m.EsCredito && inRange(m.CreadoEn, desde, hasta) {
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

func (r *CapitalRepo) SumEntradas(desde, hasta *time.Time) (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	sum := decimal.Zero
	for _, m := range r.Items {
		if !m.EsCredito && m.Monto.GreaterThan(decimal.Zero) && inRange(m.CreadoEn, desde, hasta) {
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

func (r *CapitalRepo) SumCompras(desde, hasta *time.Time) (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	sum := decimal.Zero
	for _, m := range r.Items {
		if m.Origen == entity.CapitalOrigenCompra && inRange(m.CreadoEn, desde, hasta) {
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

func (r *CapitalRepo) SumCreditoPendiente(desde, hasta *time.Time) (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	sum := decimal.Zero
	for _, m := range r.Items {
		if m.EsCredito && inRange(m.CreadoEn, desde, hasta) {
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

// PorOrigen devuelve los movimientos de un origen (helper de aserciones).
func (r *CapitalRepo) PorOrigen(origen string) []*entity.CapitalMovimiento {
	var out []*entity.CapitalMovimiento
	for _, m := range r.Items {
		if m.Origen == origen {
			out = append(out, m)
		}
	}
	return out
}

// ── Cartera ──────────────────────────────────────────────────────────────────

type CarteraRepo struct {
	Items     []*entity.Cartera
	ForcedErr error
}

var _ repository.CarteraRepository = (*CarteraRepo)(nil)

func (r *CarteraRepo) Create(cartera *entity.Cartera) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *cartera
	r.Items = append(r.Items, &c)
	return nil
}

func (r *CarteraRepo) GetByID(id string) (*entity.Cartera, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, c := range r.Items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CarteraRepo) GetByVentaID(ventaID string) (*entity.Cartera, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, c := range r.Items {
		if c.VentaID == ventaID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CarteraRepo) ExistsByVentaID(ventaID string) (bool, error) {
	if r.ForcedErr != nil {
		return false, r.ForcedErr
	}
	for _, c := range r.Items {
		if c.VentaID == ventaID {
			return true, nil
		}
	}
	return false, nil
}

func (r *CarteraRepo) ListPendientesByClienteForUpdate(clienteID string) ([]*entity.Cartera, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	var out []*entity.Cartera
	for _, c := range r.Items {
		if c.ClienteID == clienteID && c.Saldo.GreaterThan(decimal.Zero) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UltimaActualizacion.Before(out[j].UltimaActualizacion)
	})
	return out, nil
}

func (r *CarteraRepo) ListPendientes(nombreCliente string) ([]*entity.Cartera, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	// El doble no conoce nombres de cliente; el filtro por nombre se prueba en
	// la capa de persistencia real.
	var out []*entity.Cartera
	for _, c := range r.Items {
		if c.Saldo.GreaterThan(decimal.Zero) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *CarteraRepo) UpdateSaldo(id string, saldo decimal.Decimal) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	for _, c := range r.Items {
		if c.ID == id {
			c.Saldo = saldo
			c.UltimaActualizacion = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CarteraRepo) SumSaldosPendientes() (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	sum := decimal.Zero
	for _, c := range r.Items {
		if c.Saldo.GreaterThan(decimal.Zero) {
			sum = sum.Add(c.Saldo)
		}
	}
	return sum, nil
}

// SaldoDe devuelve el saldo actual de una cartera (helper de aserciones).
func (r *CarteraRepo) SaldoDe(id string) decimal.Decimal {
	for _, c := range r.Items {
		if c.ID == id {
			return c.Saldo
		}
	}
	return decimal.NewFromInt(-1)
}

// ── Movimientos de cartera ───────────────────────────────────────────────────

type CarteraMovRepo struct {
	Items     []*entity.CarteraMovimiento
	ForcedErr error
}

var _ repository.CarteraMovimientoRepository = (*CarteraMovRepo)(nil)

func (r *CarteraMovRepo) Create(mov *entity.CarteraMovimiento) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *mov
	r.Items = append(r.Items, &c)
	return nil
}

func (r *CarteraMovRepo) List(filtro repository.CarteraMovimientoFiltro) ([]*entity.CarteraMovimiento, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	var out []*entity.CarteraMovimiento
	for _, m := range r.Items {
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		if !inRange(m.Fecha, filtro.Desde, filtro.Hasta) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r *CarteraMovRepo) ListByCarteraIDs(carteraIDs []string, desde, hasta *time.Time) ([]*entity.CarteraMovimiento, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	ids := make(map[string]bool, len(carteraIDs))
	for _, id := range carteraIDs {
		ids[id] = true
	}
	var out []*entity.CarteraMovimiento
	for _, m := range r.Items {
		if ids[m.CarteraID] && inRange(m.Fecha, desde, hasta) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r *CarteraMovRepo) SumByTipo(tipo string, desde, hasta *time.Time) (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	sum := decimal.Zero
	for _, m := range r.Items {
		if m.Tipo == tipo && inRange(m.Fecha, desde, hasta) {
			sum = sum.Add(m.Monto)
		}
	}
	return sum, nil
}

// PorTipo devuelve los movimientos de un tipo (helper de aserciones).
func (r *CarteraMovRepo) PorTipo(tipo string) []*entity.CarteraMovimiento {
	var out []*entity.CarteraMovimiento
	for _, m := range r.Items {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type VentaRepo struct {
	Items     []*entity.Venta
	Detalles  []*entity.DetalleVenta
	ForcedErr error
}

var _ repository.VentaRepository = (*VentaRepo)(nil)

func (r *VentaRepo) Create(venta *entity.Venta) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *venta
	r.Items = append(r.Items, &c)
	return nil
}

func (r *VentaRepo) CreateDetalle(detalle *entity.DetalleVenta) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *detalle
	r.Detalles = append(r.Detalles, &c)
	return nil
}

func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, v := range r.Items {
		if v.ID == id {
			c := *v
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *VentaRepo) GetDetallesByVentaID(ventaID string) ([]*entity.DetalleVenta, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	var out []*entity.DetalleVenta
	for _, d := range r.Detalles {
		if d.VentaID == ventaID {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *VentaRepo) Anular(id string, motivo string) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	for _, v := range r.Items {
		if v.ID == id {
			v.Activa = false
			m := motivo
			v.MotivoAnulacion = &m
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *VentaRepo) List(filtro repository.VentaFiltro, limit, offset int) ([]*entity.Venta, int, error) {
	if r.ForcedErr != nil {
		return nil, 0, r.ForcedErr
	}
	var all []*entity.Venta
	for _, v := range r.Items {
		if filtro.Activa != nil && v.Activa != *filtro.Activa {
			continue
		}
		if filtro.ClienteID != "" && v.ClienteID != filtro.ClienteID {
			continue
		}
		if filtro.TipoVenta != "" && v.TipoVenta != filtro.TipoVenta {
			continue
		}
		if !inRange(v.FechaRegistro, filtro.Desde, filtro.Hasta) {
			continue
		}
		c := *v
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FechaRegistro.After(all[j].FechaRegistro) })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type ClienteRepo struct {
	Items     []*entity.Cliente
	ForcedErr error
}

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *cliente
	r.Items = append(r.Items, &c)
	return nil
}

func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	for i, c := range r.Items {
		if c.ID == cliente.ID {
			cp := *cliente
			r.Items[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, c := range r.Items {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ClienteRepo) List(nombreFiltro string, limit, offset int) ([]*entity.Cliente, int, error) {
	if r.ForcedErr != nil {
		return nil, 0, r.ForcedErr
	}
	var all []*entity.Cliente
	for _, c := range r.Items {
		if nombreFiltro != "" && !strings.Contains(strings.ToLower(c.Nombre), strings.ToLower(nombreFiltro)) {
			continue
		}
		cp := *c
		all = append(all, &cp)
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type UsuarioRepo struct {
	Items     []*entity.Usuario
	ForcedErr error
}

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	if r.ForcedErr != nil {
		return r.ForcedErr
	}
	c := *usuario
	r.Items = append(r.Items, &c)
	return nil
}

func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, u := range r.Items {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UsuarioRepo) FindByUsuario(nombre string) (*entity.Usuario, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	for _, u := range r.Items {
		if u.Usuario == nombre {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ── Reportes ─────────────────────────────────────────────────────────────────

// ReporteRepo devuelve resultados enlatados para el resumen.
type ReporteRepo struct {
	TopProductosR   []repository.TopProductoResult
	TopClientesR    []repository.TopClienteResult
	Unidades        int64
	TotalVentas     decimal.Decimal
	ValorInventario decimal.Decimal
	Mensuales       []repository.VentaMensualResult
	ForcedErr       error
}

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

func (r *ReporteRepo) TopProductos(_ context.Context, _, _ *time.Time, limit int) ([]repository.TopProductoResult, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	if limit < len(r.TopProductosR) {
		return r.TopProductosR[:limit], nil
	}
	return r.TopProductosR, nil
}

func (r *ReporteRepo) TopClientes(_ context.Context, _, _ *time.Time, limit int) ([]repository.TopClienteResult, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	if limit < len(r.TopClientesR) {
		return r.TopClientesR[:limit], nil
	}
	return r.TopClientesR, nil
}

func (r *ReporteRepo) SumUnidadesVendidas(_ context.Context, _, _ *time.Time) (int64, error) {
	if r.ForcedErr != nil {
		return 0, r.ForcedErr
	}
	return r.Unidades, nil
}

func (r *ReporteRepo) SumTotalVentas(_ context.Context, _, _ *time.Time) (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	return r.TotalVentas, nil
}

func (r *ReporteRepo) SumValorInventario(_ context.Context) (decimal.Decimal, error) {
	if r.ForcedErr != nil {
		return decimal.Zero, r.ForcedErr
	}
	return r.ValorInventario, nil
}

func (r *ReporteRepo) VentasMensuales(_ context.Context, _ time.Time) ([]repository.VentaMensualResult, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	return r.Mensuales, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// TxRunner implementa los TxRunner de los casos de uso sobre los dobles.
// FailWith hace fallar la "transacción" antes de ejecutar fn.
type TxRunner struct {
	R        *Repos
	FailWith error
}

func (t *TxRunner) Run(_ context.Context, fn func(
	loteRepo repository.LoteRepository,
	kardexRepo repository.KardexRepository,
	capitalRepo repository.CapitalMovimientoRepository,
) error) error {
	if t.FailWith != nil {
		return t.FailWith
	}
	return fn(t.R.Lotes, t.R.Kardex, t.R.Capital)
}

func (t *TxRunner) RunVenta(_ context.Context, fn func(
	ventaRepo repository.VentaRepository,
	loteRepo repository.LoteRepository,
	kardexRepo repository.KardexRepository,
	capitalRepo repository.CapitalMovimientoRepository,
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
) error) error {
	if t.FailWith != nil {
		return t.FailWith
	}
	return fn(t.R.Ventas, t.R.Lotes, t.R.Kardex, t.R.Capital, t.R.Carteras, t.R.CarteraMovs)
}

func (t *TxRunner) RunCartera(_ context.Context, fn func(
	carteraRepo repository.CarteraRepository,
	carteraMovRepo repository.CarteraMovimientoRepository,
	capitalRepo repository.CapitalMovimientoRepository,
) error) error {
	if t.FailWith != nil {
		return t.FailWith
	}
	return fn(t.R.Carteras, t.R.CarteraMovs, t.R.Capital)
}

func (t *TxRunner) RunCapital(_ context.Context, fn func(
	capitalRepo repository.CapitalMovimientoRepository,
) error) error {
	if t.FailWith != nil {
		return t.FailWith
	}
	return fn(t.R.Capital)
}
