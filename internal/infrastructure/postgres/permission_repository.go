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

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo implementación del puerto PermissionRepository sobre PostgreSQL.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador de persistencia para permisos.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

const permColumns = `id, usuario_id, tienda_id,
	puede_gestionar_proveedores, puede_gestionar_productos, puede_gestionar_compras,
	puede_editar_compras, puede_ver_inventario_compras`

// Create persiste un grant. Ya existe para (usuario, tienda): domain.ErrDuplicate.
func (r *PermissionRepo) Create(perm *entity.StorePermission) error {
	query := `
		INSERT INTO permisos_usuario_tienda (usuario_id, tienda_id,
			puede_gestionar_proveedores, puede_gestionar_productos, puede_gestionar_compras,
			puede_editar_compras, puede_ver_inventario_compras)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		perm.UserID, perm.StoreID,
		perm.ManageProviders, perm.ManageProducts, perm.ManagePurchases,
		perm.EditPurchases, perm.ViewPurchaseInventory,
	).Scan(&perm.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert permiso: %w", err)
	}
	return nil
}

// GetByID obtiene un grant por ID (nil si no existe).
func (r *PermissionRepo) GetByID(id int64) (*entity.StorePermission, error) {
	query := `SELECT ` + permColumns + ` FROM permisos_usuario_tienda WHERE id = $1`
	return r.getOne(query, id)
}

// GetByUserAndStore obtiene el grant de un usuario sobre una tienda (nil si no hay).
func (r *PermissionRepo) GetByUserAndStore(userID, storeID int64) (*entity.StorePermission, error) {
	query := `SELECT ` + permColumns + ` FROM permisos_usuario_tienda WHERE usuario_id = $1 AND tienda_id = $2`
	return r.getOne(query, userID, storeID)
}

// ListByUser lista los grants de un usuario.
func (r *PermissionRepo) ListByUser(userID int64) ([]*entity.StorePermission, error) {
	query := `SELECT ` + permColumns + ` FROM permisos_usuario_tienda WHERE usuario_id = $1 ORDER BY tienda_id`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list permisos: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorePermission
	for rows.Next() {
		var p entity.StorePermission
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.StoreID,
			&p.ManageProviders, &p.ManageProducts, &p.ManagePurchases,
			&p.EditPurchases, &p.ViewPurchaseInventory,
		); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListStoreIDs devuelve las tiendas con algún grant para el usuario.
func (r *PermissionRepo) ListStoreIDs(userID int64) ([]int64, error) {
	query := `SELECT tienda_id FROM permisos_usuario_tienda WHERE usuario_id = $1 ORDER BY tienda_id`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tiendas con permiso: %w", err)
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tienda_id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update reemplaza los cinco flags de un grant.
func (r *PermissionRepo) Update(perm *entity.StorePermission) error {
	query := `
		UPDATE permisos_usuario_tienda SET
			puede_gestionar_proveedores = $2, puede_gestionar_productos = $3,
			puede_gestionar_compras = $4, puede_editar_compras = $5,
			puede_ver_inventario_compras = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		perm.ID,
		perm.ManageProviders, perm.ManageProducts, perm.ManagePurchases,
		perm.EditPurchases, perm.ViewPurchaseInventory,
	)
	if err != nil {
		return fmt.Errorf("update permiso: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un grant por ID.
func (r *PermissionRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM permisos_usuario_tienda WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete permiso: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PermissionRepo) getOne(query string, args ...any) (*entity.StorePermission, error) {
	var p entity.StorePermission
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.UserID, &p.StoreID,
		&p.ManageProviders, &p.ManageProducts, &p.ManagePurchases,
		&p.EditPurchases, &p.ViewPurchaseInventory,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permiso: %w", err)
	}
	return &p, nil
}
