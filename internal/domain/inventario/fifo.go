// Package inventario contiene la lógica de dominio pura del inventario por
// lotes: asignación FIFO de cantidades solicitadas contra los lotes vigentes.
package inventario

import (
	"fmt"

	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
)

// Asignacion es el consumo resuelto contra un lote concreto.
type Asignacion struct {
	Lote     *entity.Lote
	Cantidad int
}

// AsignarFIFO reparte la cantidad solicitada entre los lotes recibidos,
// consumiendo primero el más antiguo. Los lotes deben venir ordenados por
// fecha de registro ascendente (así los entrega LoteRepository); los lotes sin
// stock se saltan. No tiene efectos: el caller aplica los descuentos.
//
// Errores: sin lotes para el nombre → ErrSinLoteParaVenta; stock total menor
// que lo solicitado → ErrStockInsuficiente con disponible y solicitado en el
// mensaje. Ambos abortan la venta completa.
func AsignarFIFO(lotes []*entity.Lote, cantidad int) ([]Asignacion, error) {
	if cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if len(lotes) == 0 {
		return nil, domain.ErrSinLoteParaVenta
	}

	disponible := 0
	for _, l := range lotes {
		disponible += l.Stock
	}
	if disponible < cantidad {
		return nil, fmt.Errorf(
			"%w: el stock disponible (%d) es insuficiente para descontar la cantidad solicitada (%d)",
			domain.ErrStockInsuficiente, disponible, cantidad,
		)
	}

	var asignaciones []Asignacion
	restante := cantidad
	for _, lote := range lotes {
		if restante == 0 {
			break
		}
		if lote.Stock <= 0 {
			continue
		}
		tomado := lote.Stock
		if restante < tomado {
			tomado = restante
		}
		asignaciones = append(asignaciones, Asignacion{Lote: lote, Cantidad: tomado})
		restante -= tomado
	}
	return asignaciones, nil
}
