package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lupon/admin-client/internal/application/resource"
	"github.com/lupon/admin-client/internal/application/resource/resourcetest"
	"github.com/lupon/admin-client/internal/domain/partner"
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsuarioService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("posts a valid user", func(t *testing.T) {
		api := new(resourcetest.MockAPI)
		svc := NewUsuarioService(api)

		in := partner.UsuarioInput{
			Username:       gofakeit.Username(),
			Password:       gofakeit.Password(true, true, true, false, false, 12),
			Email:          gofakeit.Email(),
			NombreCompleto: gofakeit.Name(),
		}
		api.On("Post", ctx, "/usuarios/", in).Return(`{"id": 7, "username": "`+in.Username+`"}`, nil)

		out, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 7, out.ID)
		assert.Equal(t, in.Username, out.Username)
		api.AssertExpectations(t)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		api := new(resourcetest.MockAPI)
		svc := NewUsuarioService(api)

		_, err := svc.Create(ctx, partner.UsuarioInput{Username: "ana", Password: "123", NombreCompleto: "Ana"})
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.NotEmpty(t, verr.Field("password"))
		api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUsuarioService_Actions(t *testing.T) {
	ctx := context.Background()
	ok := `{"status": "ok"}`

	tests := []struct {
		name string
		path string
		call func(*UsuarioService) (*resource.Status, error)
	}{
		{
			name: "cambiar estado",
			path: "/usuarios/3/cambiar_estado/",
			call: func(s *UsuarioService) (*resource.Status, error) {
				return s.CambiarEstado(ctx, 3, false)
			},
		},
		{
			name: "cambiar password",
			path: "/usuarios/3/cambiar_password/",
			call: func(s *UsuarioService) (*resource.Status, error) {
				return s.CambiarPassword(ctx, 3, partner.CambiarPasswordInput{
					PasswordActual:       "vieja-clave",
					PasswordNueva:        "nueva-clave",
					PasswordConfirmacion: "nueva-clave",
				})
			},
		},
		{
			name: "resetear password",
			path: "/usuarios/3/resetear_password/",
			call: func(s *UsuarioService) (*resource.Status, error) {
				return s.ResetearPassword(ctx, 3, partner.ResetearPasswordInput{NuevaContrasena: "temporal-123"})
			},
		},
		{
			name: "cambiar email",
			path: "/usuarios/3/cambiar_email/",
			call: func(s *UsuarioService) (*resource.Status, error) {
				return s.CambiarEmail(ctx, 3, partner.CambiarEmailInput{NuevoEmail: "nuevo@lupon.com"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(resourcetest.MockAPI)
			api.On("Post", ctx, tt.path, mock.Anything).Return(ok, nil)

			status, err := tt.call(NewUsuarioService(api))
			require.NoError(t, err)
			require.NotNil(t, status)
			assert.Equal(t, "ok", status.Status)
			api.AssertExpectations(t)
		})
	}
}

func TestUsuarioService_CambiarPasswordMismatch(t *testing.T) {
	api := new(resourcetest.MockAPI)
	svc := NewUsuarioService(api)

	_, err := svc.CambiarPassword(context.Background(), 1, partner.CambiarPasswordInput{
		PasswordActual:       "vieja-clave",
		PasswordNueva:        "nueva-clave",
		PasswordConfirmacion: "otra-clave",
	})
	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Field("password_confirmacion"))
	api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsuarioService_Delete(t *testing.T) {
	ctx := context.Background()
	api := new(resourcetest.MockAPI)
	api.On("Delete", ctx, "/usuarios/9/").Return("", nil)

	require.NoError(t, NewUsuarioService(api).Delete(ctx, 9))
	api.AssertExpectations(t)
}
