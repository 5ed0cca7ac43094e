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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda. Nombre repetido: domain.ErrDuplicate.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `INSERT INTO tienda (nombre) VALUES ($1) RETURNING id`
	err := r.q.QueryRow(context.Background(), query, store.Name).Scan(&store.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tienda: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID (nil si no existe).
func (r *StoreRepo) GetByID(id int64) (*entity.Store, error) {
	query := `SELECT id, nombre FROM tienda WHERE id = $1`
	var s entity.Store
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tienda: %w", err)
	}
	return &s, nil
}

// GetByName obtiene una tienda por nombre (nil si no existe).
func (r *StoreRepo) GetByName(name string) (*entity.Store, error) {
	query := `SELECT id, nombre FROM tienda WHERE nombre = $1`
	var s entity.Store
	err := r.q.QueryRow(context.Background(), query, name).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tienda por nombre: %w", err)
	}
	return &s, nil
}

// List lista todas las tiendas.
func (r *StoreRepo) List() ([]*entity.Store, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, nombre FROM tienda ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tiendas: %w", err)
	}
	defer rows.Close()
	return scanStores(rows)
}

// ListByIDs lista las tiendas cuyo ID esté en ids (slice vacío: lista vacía).
func (r *StoreRepo) ListByIDs(ids []int64) ([]*entity.Store, error) {
	if len(ids) == 0 {
		return []*entity.Store{}, nil
	}
	query := `SELECT id, nombre FROM tienda WHERE id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list tiendas por ids: %w", err)
	}
	defer rows.Close()
	return scanStores(rows)
}

// Update actualiza el nombre de una tienda. Nombre repetido: domain.ErrDuplicate.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `UPDATE tienda SET nombre = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, store.ID, store.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tienda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tienda por ID; la FK cascadea a proveedores, productos,
// compras, detalles y permisos.
func (r *StoreRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM tienda WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tienda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStores(rows pgx.Rows) ([]*entity.Store, error) {
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan tienda: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
