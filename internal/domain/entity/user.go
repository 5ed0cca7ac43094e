package entity

// User representa un usuario del sistema. Token es la credencial de sesión
// vigente (nil = sesión cerrada); el password nunca se expone en respuestas.
type User struct {
	ID           int64
	Username     string // único
	PasswordHash string
	Token        *string
	IsSuperadmin bool
}
