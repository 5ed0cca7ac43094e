package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token de sesión emitido más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

// CreateUserRequest datos para crear un usuario (solo superadmin).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse representación de un usuario; nunca incluye el password.
type UserResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	IsSuperadmin bool   `json:"es_superusuario"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ResetPasswordRequest reseteo de contraseña por un superadmin.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}
