package repository

import "github.com/jcastano/control-inventario/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)

	// GetByToken resuelve la credencial de sesión a su usuario (nil si no hay
	// sesión con ese token). Es el resolvedor de identidad del sistema.
	GetByToken(token string) (*entity.User, error)

	List() ([]*entity.User, error)

	// UpdateToken fija la credencial de sesión; nil cierra la sesión.
	UpdateToken(id int64, token *string) error
	UpdatePassword(id int64, passwordHash string) error
	Delete(id int64) error
}
