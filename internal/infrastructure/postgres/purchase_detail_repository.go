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

var _ repository.PurchaseDetailRepository = (*PurchaseDetailRepo)(nil)

// PurchaseDetailRepo implementación del puerto PurchaseDetailRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseDetailRepo struct {
	q Querier
}

// NewPurchaseDetailRepository construye el adaptador de detalles. Pasar pool o tx (Querier).
func NewPurchaseDetailRepository(q Querier) *PurchaseDetailRepo {
	return &PurchaseDetailRepo{q: q}
}

// Create persiste un detalle. Ya existe para (compra, producto): domain.ErrDuplicate.
func (r *PurchaseDetailRepo) Create(detail *entity.PurchaseDetail) error {
	query := `
		INSERT INTO detalle_compra (compra_id, producto_id, cantidad, inventario_anterior)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		detail.PurchaseID, detail.ProductID, detail.Quantity, detail.PriorInventory,
	).Scan(&detail.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert detalle: %w", err)
	}
	return nil
}

// CreateMissing inserta los detalles cuyo par (compra, producto) aún no exista;
// los ya presentes se ignoran en silencio (ON CONFLICT DO NOTHING). Es el
// relleno idempotente al crear compras o productos.
func (r *PurchaseDetailRepo) CreateMissing(details []*entity.PurchaseDetail) error {
	query := `
		INSERT INTO detalle_compra (compra_id, producto_id, cantidad, inventario_anterior)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (compra_id, producto_id) DO NOTHING`
	for _, d := range details {
		if _, err := r.q.Exec(context.Background(), query,
			d.PurchaseID, d.ProductID, d.Quantity, d.PriorInventory,
		); err != nil {
			return fmt.Errorf("insert detalle faltante: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un detalle por ID (nil si no existe).
func (r *PurchaseDetailRepo) GetByID(id int64) (*entity.PurchaseDetail, error) {
	query := `
		SELECT d.id, d.compra_id, d.producto_id, d.cantidad, d.inventario_anterior, p.nombre, p.orden
		FROM detalle_compra d
		JOIN producto p ON p.id = d.producto_id
		WHERE d.id = $1`
	var d entity.PurchaseDetail
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.PurchaseID, &d.ProductID, &d.Quantity, &d.PriorInventory,
		&d.ProductName, &d.ProductRank,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get detalle: %w", err)
	}
	return &d, nil
}

// ListByPurchase lista los detalles de una compra con nombre y orden del
// producto, en el orden canónico de despliegue (orden ASC NULLS LAST, id ASC).
func (r *PurchaseDetailRepo) ListByPurchase(purchaseID int64) ([]*entity.PurchaseDetail, error) {
	query := `
		SELECT d.id, d.compra_id, d.producto_id, d.cantidad, d.inventario_anterior, p.nombre, p.orden
		FROM detalle_compra d
		JOIN producto p ON p.id = d.producto_id
		WHERE d.compra_id = $1
		ORDER BY p.orden ASC NULLS LAST, p.id ASC`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list detalles: %w", err)
	}
	defer rows.Close()
	list := []*entity.PurchaseDetail{}
	for rows.Next() {
		var d entity.PurchaseDetail
		if err := rows.Scan(
			&d.ID, &d.PurchaseID, &d.ProductID, &d.Quantity, &d.PriorInventory,
			&d.ProductName, &d.ProductRank,
		); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza cantidad e inventario anterior de un detalle.
func (r *PurchaseDetailRepo) Update(detail *entity.PurchaseDetail) error {
	query := `UPDATE detalle_compra SET cantidad = $2, inventario_anterior = $3 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, detail.ID, detail.Quantity, detail.PriorInventory)
	if err != nil {
		return fmt.Errorf("update detalle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un detalle por ID.
func (r *PurchaseDetailRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM detalle_compra WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete detalle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
