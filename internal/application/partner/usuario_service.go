package partner

import (
	"context"

	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/domain/partner"
	"github.com/lupon/admin-client/internal/domain/shared"
)

const usuariosPath = "usuarios"

// UsuarioService handles application users
type UsuarioService struct {
	api resource.API
}

// NewUsuarioService creates a new UsuarioService
func NewUsuarioService(api resource.API) *UsuarioService {
	return &UsuarioService{api: api}
}

// List returns all users
func (s *UsuarioService) List(ctx context.Context) ([]partner.Usuario, error) {
	var out []partner.Usuario
	if err := s.api.Get(ctx, resource.Path(usuariosPath), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a user by ID
func (s *UsuarioService) Get(ctx context.Context, id int) (*partner.Usuario, error) {
	var out partner.Usuario
	if err := s.api.Get(ctx, resource.Path(usuariosPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a user
func (s *UsuarioService) Create(ctx context.Context, in partner.UsuarioInput) (*partner.Usuario, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}
	var out partner.Usuario
	if err := s.api.Post(ctx, resource.Path(usuariosPath), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a user
func (s *UsuarioService) Update(ctx context.Context, id int, patch partner.UsuarioPatch) (*partner.Usuario, error) {
	if err := shared.Validate(patch); err != nil {
		return nil, err
	}
	var out partner.Usuario
	if err := s.api.Patch(ctx, resource.Path(usuariosPath, id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes a user
func (s *UsuarioService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, resource.Path(usuariosPath, id), nil)
}

// CambiarEstado enables or disables a user
func (s *UsuarioService) CambiarEstado(ctx context.Context, id int, activo bool) (*resource.Status, error) {
	return s.action(ctx, id, "cambiar_estado", partner.CambiarEstadoUsuarioInput{Activo: activo})
}

// CambiarPassword changes a user's password given the current one
func (s *UsuarioService) CambiarPassword(ctx context.Context, id int, in partner.CambiarPasswordInput) (*resource.Status, error) {
	return s.action(ctx, id, "cambiar_password", in)
}

// ResetearPassword sets a new password; the backend allows it to administrators only
func (s *UsuarioService) ResetearPassword(ctx context.Context, id int, in partner.ResetearPasswordInput) (*resource.Status, error) {
	return s.action(ctx, id, "resetear_password", in)
}

// CambiarEmail replaces a user's email
func (s *UsuarioService) CambiarEmail(ctx context.Context, id int, in partner.CambiarEmailInput) (*resource.Status, error) {
	return s.action(ctx, id, "cambiar_email", in)
}

func (s *UsuarioService) action(ctx context.Context, id int, name string, body any) (*resource.Status, error) {
	if err := shared.Validate(body); err != nil {
		return nil, err
	}
	var out resource.Status
	if err := s.api.Post(ctx, resource.Path(usuariosPath, id, name), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
