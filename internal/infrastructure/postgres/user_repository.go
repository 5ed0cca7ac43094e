package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Username repetido: domain.ErrDuplicate.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO usuario (username, password, token, es_superusuario)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		user.Username, user.PasswordHash, user.Token, user.IsSuperadmin,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID (nil si no existe).
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	query := `SELECT id, username, password, token, es_superusuario FROM usuario WHERE id = $1`
	return r.getOne(query, id)
}

// GetByUsername obtiene un usuario por username (nil si no existe).
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	query := `SELECT id, username, password, token, es_superusuario FROM usuario WHERE username = $1`
	return r.getOne(query, username)
}

// GetByToken resuelve la credencial de sesión a su usuario (nil si no hay
// sesión vigente con ese token).
func (r *UserRepo) GetByToken(token string) (*entity.User, error) {
	query := `SELECT id, username, password, token, es_superusuario FROM usuario WHERE token = $1`
	return r.getOne(query, token)
}

// List lista todos los usuarios.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := `SELECT id, username, password, token, es_superusuario FROM usuario ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Token, &u.IsSuperadmin); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// UpdateToken fija la credencial de sesión; nil cierra la sesión.
func (r *UserRepo) UpdateToken(id int64, token *string) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE usuario SET token = $2 WHERE id = $1`, id, token)
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword fija el hash de contraseña de un usuario.
func (r *UserRepo) UpdatePassword(id int64, passwordHash string) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE usuario SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario por ID; cascadea a sus permisos.
func (r *UserRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM usuario WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Token, &u.IsSuperadmin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
