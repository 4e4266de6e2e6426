package cliente

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
)

// UseCase CRUD básico de clientes.
type UseCase struct {
	clienteRepo repository.ClienteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(clienteRepo repository.ClienteRepository) *UseCase {
	return &UseCase{clienteRepo: clienteRepo}
}

// Crear registra un cliente nuevo.
func (uc *UseCase) Crear(_ context.Context, in dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	cliente := &entity.Cliente{
		ID:            uuid.New().String(),
		Nombre:        in.Nombre,
		Telefono:      in.Telefono,
		Direccion:     in.Direccion,
		FechaRegistro: time.Now(),
	}
	if err := uc.clienteRepo.Create(cliente); err != nil {
		return nil, err
	}
	return toResponse(cliente), nil
}

// Actualizar reemplaza los datos de contacto de un cliente.
func (uc *UseCase) Actualizar(_ context.Context, id string, in dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	if id == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	cliente.Nombre = in.Nombre
	cliente.Telefono = in.Telefono
	cliente.Direccion = in.Direccion
	if err := uc.clienteRepo.Update(cliente); err != nil {
		return nil, err
	}
	return toResponse(cliente), nil
}

// Obtener devuelve un cliente por ID.
func (uc *UseCase) Obtener(_ context.Context, id string) (*dto.ClienteResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(cliente), nil
}

// Listar devuelve clientes con filtro por nombre y paginación.
func (uc *UseCase) Listar(_ context.Context, nombreFiltro string, page dto.PageRequest) ([]dto.ClienteResponse, int, error) {
	page.DefaultPage()
	clientes, total, err := uc.clienteRepo.List(nombreFiltro, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, *toResponse(c))
	}
	return out, total, nil
}

func toResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Telefono:      c.Telefono,
		Direccion:     c.Direccion,
		FechaRegistro: c.FechaRegistro,
	}
}
