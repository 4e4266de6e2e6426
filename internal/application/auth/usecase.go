package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sicoil/backoffice/internal/application/dto"
	"github.com/sicoil/backoffice/internal/domain"
	"github.com/sicoil/backoffice/internal/domain/entity"
	"github.com/sicoil/backoffice/internal/domain/repository"
	"github.com/sicoil/backoffice/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Registrar crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrUsuarioYaExiste si el nombre de login ya está tomado.
func (uc *UseCase) Registrar(_ context.Context, in dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if in.Usuario == "" || in.Contrasena == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Rol != entity.RolAdmin && in.Rol != entity.RolVendedor {
		return nil, domain.ErrInvalidInput
	}

	existente, err := uc.usuarioRepo.FindByUsuario(in.Usuario)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrUsuarioYaExiste
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usuario := &entity.Usuario{
		ID:            uuid.New().String(),
		Usuario:       in.Usuario,
		Contrasena:    string(hash),
		Rol:           in.Rol,
		FechaRegistro: time.Now(),
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return &dto.UsuarioResponse{ID: usuario.ID, Usuario: usuario.Usuario, Rol: usuario.Rol}, nil
}

// Login verifica usuario/contraseña y genera el JWT. Las credenciales malas
// devuelven siempre el mismo error, exista o no el usuario.
func (uc *UseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.FindByUsuario(in.Usuario)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCredencialesInvalidas
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(in.Contrasena)); err != nil {
		return nil, domain.ErrCredencialesInvalidas
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Usuario: usuario.Usuario, Rol: usuario.Rol}, nil
}
