package partner

// Usuario is an application user
type Usuario struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	NombreCompleto string `json:"nombre_completo"`
	Telefono       string `json:"telefono"`
	EsAdmin        bool   `json:"es_admin"`
	Activo         bool   `json:"activo"`
}

// UsuarioInput creates a user
type UsuarioInput struct {
	Username       string `json:"username" validate:"required,max=150"`
	Password       string `json:"password" validate:"required,min=8"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	NombreCompleto string `json:"nombre_completo" validate:"required,max=100"`
	Telefono       string `json:"telefono,omitempty" validate:"max=10"`
	EsAdmin        bool   `json:"es_admin"`
}

// UsuarioPatch updates a user. nombre_completo is read-only after creation.
type UsuarioPatch struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono *string `json:"telefono,omitempty" validate:"omitempty,max=10"`
	EsAdmin  *bool   `json:"es_admin,omitempty"`
}

// CambiarPasswordInput changes the caller's own password
type CambiarPasswordInput struct {
	PasswordActual       string `json:"password_actual" validate:"required"`
	PasswordNueva        string `json:"password_nueva" validate:"required,min=8"`
	PasswordConfirmacion string `json:"password_confirmacion" validate:"required,eqfield=PasswordNueva"`
}

// ResetearPasswordInput sets a new password as administrator
type ResetearPasswordInput struct {
	NuevaContrasena string `json:"nueva_contrasena" validate:"required,min=8"`
}

// CambiarEmailInput replaces a user's email
type CambiarEmailInput struct {
	NuevoEmail string `json:"nuevo_email" validate:"required,email"`
}

// CambiarEstadoUsuarioInput enables or disables a user
type CambiarEstadoUsuarioInput struct {
	Activo bool `json:"activo"`
}
