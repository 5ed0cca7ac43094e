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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Nombre repetido en el proveedor: domain.ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `INSERT INTO producto (proveedor_id, nombre, orden) VALUES ($1, $2, $3) RETURNING id`
	err := r.q.QueryRow(context.Background(), query, product.ProviderID, product.Name, product.Rank).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT id, proveedor_id, nombre, orden FROM producto WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(&p.ID, &p.ProviderID, &p.Name, &p.Rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// GetByProviderAndName obtiene un producto por (proveedor, nombre) (nil si no existe).
func (r *ProductRepo) GetByProviderAndName(providerID int64, name string) (*entity.Product, error) {
	query := `SELECT id, proveedor_id, nombre, orden FROM producto WHERE proveedor_id = $1 AND nombre = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, providerID, name).Scan(&p.ID, &p.ProviderID, &p.Name, &p.Rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto por nombre: %w", err)
	}
	return &p, nil
}

// ListByProvider lista los productos de un proveedor en el orden canónico
// (orden ASC NULLS LAST, id ASC).
func (r *ProductRepo) ListByProvider(providerID int64) ([]*entity.Product, error) {
	query := `
		SELECT id, proveedor_id, nombre, orden
		FROM producto WHERE proveedor_id = $1
		ORDER BY orden ASC NULLS LAST, id ASC`
	rows, err := r.q.Query(context.Background(), query, providerID)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByProviderForUpdate lista los productos del proveedor bloqueando sus
// filas (SELECT ... FOR UPDATE). Serializa los movimientos concurrentes sobre
// el mismo proveedor; solo tiene sentido dentro de una transacción.
func (r *ProductRepo) ListByProviderForUpdate(providerID int64) ([]*entity.Product, error) {
	query := `
		SELECT id, proveedor_id, nombre, orden
		FROM producto WHERE proveedor_id = $1
		ORDER BY orden ASC NULLS LAST, id ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, providerID)
	if err != nil {
		return nil, fmt.Errorf("list productos for update: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// MaxRank devuelve el mayor orden asignado del proveedor (0 si no hay ninguno).
func (r *ProductRepo) MaxRank(providerID int64) (int32, error) {
	query := `SELECT COALESCE(MAX(orden), 0) FROM producto WHERE proveedor_id = $1`
	var max int32
	if err := r.q.QueryRow(context.Background(), query, providerID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max orden: %w", err)
	}
	return max, nil
}

// UpdateRank fija el orden de un producto.
func (r *ProductRepo) UpdateRank(id int64, rank int32) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE producto SET orden = $2 WHERE id = $1`, id, rank)
	if err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza el nombre de un producto. Nombre repetido: domain.ErrDuplicate.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `UPDATE producto SET nombre = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, product.ID, product.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID; cascadea a sus detalles de compra.
func (r *ProductRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM producto WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.ProviderID, &p.Name, &p.Rank); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
