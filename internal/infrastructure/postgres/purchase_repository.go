package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL
// (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una nueva compra. Ya existe para (proveedor, fecha): domain.ErrDuplicate.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `INSERT INTO compra (proveedor_id, fecha_compra) VALUES ($1, $2) RETURNING id`
	err := r.q.QueryRow(context.Background(), query, purchase.ProviderID, purchase.Date).Scan(&purchase.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert compra: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID (nil si no existe).
func (r *PurchaseRepo) GetByID(id int64) (*entity.Purchase, error) {
	query := `SELECT id, proveedor_id, fecha_compra FROM compra WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(&p.ID, &p.ProviderID, &p.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	return &p, nil
}

// ListByProvider lista las compras de un proveedor, las más recientes primero.
func (r *PurchaseRepo) ListByProvider(providerID int64) ([]*entity.Purchase, error) {
	query := `
		SELECT id, proveedor_id, fecha_compra
		FROM compra WHERE proveedor_id = $1
		ORDER BY fecha_compra DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, providerID)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()
	return scanPurchases(rows)
}

// ListRange devuelve hasta limit compras, las más recientes primero, con filtro
// opcional de fechas. storeIDs nil = sin filtro de tienda; vacío = nada visible.
func (r *PurchaseRepo) ListRange(start, end *time.Time, limit int, storeIDs []int64) ([]*entity.Purchase, error) {
	if storeIDs != nil && len(storeIDs) == 0 {
		return []*entity.Purchase{}, nil
	}
	query := `
		SELECT c.id, c.proveedor_id, c.fecha_compra
		FROM compra c
		JOIN proveedor p ON p.id = c.proveedor_id
		WHERE ($1::date IS NULL OR c.fecha_compra >= $1)
		  AND ($2::date IS NULL OR c.fecha_compra <= $2)
		  AND ($3::bigint[] IS NULL OR p.tienda_id = ANY($3))
		ORDER BY c.fecha_compra DESC, c.id DESC
		LIMIT $4`
	rows, err := r.q.Query(context.Background(), query, start, end, storeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("list compras por rango: %w", err)
	}
	defer rows.Close()
	return scanPurchases(rows)
}

// Update actualiza la fecha de una compra. Fecha ya ocupada en el proveedor:
// domain.ErrDuplicate.
func (r *PurchaseRepo) Update(purchase *entity.Purchase) error {
	query := `UPDATE compra SET fecha_compra = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, purchase.ID, purchase.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update compra: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una compra por ID; cascadea a sus detalles.
func (r *PurchaseRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM compra WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compra: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPurchases(rows pgx.Rows) ([]*entity.Purchase, error) {
	list := []*entity.Purchase{}
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.ProviderID, &p.Date); err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
