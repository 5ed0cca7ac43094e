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

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo implementación del puerto ProviderRepository sobre PostgreSQL.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador de persistencia para proveedores.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

// Create persiste un nuevo proveedor. Nombre repetido en la tienda: domain.ErrDuplicate.
func (r *ProviderRepo) Create(provider *entity.Provider) error {
	query := `INSERT INTO proveedor (tienda_id, nombre) VALUES ($1, $2) RETURNING id`
	err := r.q.QueryRow(context.Background(), query, provider.StoreID, provider.Name).Scan(&provider.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID (nil si no existe).
func (r *ProviderRepo) GetByID(id int64) (*entity.Provider, error) {
	query := `SELECT id, tienda_id, nombre FROM proveedor WHERE id = $1`
	var p entity.Provider
	err := r.q.QueryRow(context.Background(), query, id).Scan(&p.ID, &p.StoreID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// GetByStoreAndName obtiene un proveedor por (tienda, nombre) (nil si no existe).
func (r *ProviderRepo) GetByStoreAndName(storeID int64, name string) (*entity.Provider, error) {
	query := `SELECT id, tienda_id, nombre FROM proveedor WHERE tienda_id = $1 AND nombre = $2`
	var p entity.Provider
	err := r.q.QueryRow(context.Background(), query, storeID, name).Scan(&p.ID, &p.StoreID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor por nombre: %w", err)
	}
	return &p, nil
}

// ListByStore lista los proveedores de una tienda.
func (r *ProviderRepo) ListByStore(storeID int64) ([]*entity.Provider, error) {
	query := `SELECT id, tienda_id, nombre FROM proveedor WHERE tienda_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza el nombre de un proveedor. Nombre repetido: domain.ErrDuplicate.
func (r *ProviderRepo) Update(provider *entity.Provider) error {
	query := `UPDATE proveedor SET nombre = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, provider.ID, provider.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor por ID; cascadea a productos, compras y detalles.
func (r *ProviderRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM proveedor WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
