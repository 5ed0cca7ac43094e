package ordering

import (
	"context"
	"fmt"
	"sort"

	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
	"github.com/jcastano/control-inventario/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción con el repo de productos atado
// a la tx. Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// Direction dirección de un movimiento de producto.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection valida el parámetro de dirección de la API.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp, DirectionDown:
		return Direction(s), nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// RankChange orden antes/después de una fila afectada por Move.
type RankChange struct {
	ProductID  int64
	RankBefore int32
	RankAfter  int32
}

// MoveResult las dos filas cuyo orden intercambió Move.
type MoveResult struct {
	Product  RankChange
	Neighbor RankChange
}

// UseCase mantiene el orden denso 1..N de los productos de cada proveedor:
// asignación al crear, normalización autocurativa y el intercambio adyacente
// de Move bajo bloqueo por proveedor.
type UseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, products repository.ProductRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, products: products, log: log}
}

// NextRank calcula el orden para un producto nuevo: 1 + max(orden) del
// proveedor (0 si no tiene productos). No renumera hermanos.
func NextRank(products repository.ProductRepository, providerID int64) (int32, error) {
	maxRank, err := products.MaxRank(providerID)
	if err != nil {
		return 0, fmt.Errorf("max orden proveedor %d: %w", providerID, err)
	}
	return maxRank + 1, nil
}

// Normalize reasigna en memoria los ranks de siblings a la secuencia densa
// 1..N, ordenando por (orden ASC con nil al final, id ASC), y devuelve solo las
// filas cuyo orden cambió. Repara huecos y duplicados dejados por borrados o
// filas heredadas sin orden. Es pura: el llamador persiste los cambios.
func Normalize(siblings []*entity.Product) []*entity.Product {
	sorted := make([]*entity.Product, len(siblings))
	copy(sorted, siblings)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.Rank == nil && b.Rank == nil:
			return a.ID < b.ID
		case a.Rank == nil:
			return false
		case b.Rank == nil:
			return true
		case *a.Rank != *b.Rank:
			return *a.Rank < *b.Rank
		default:
			return a.ID < b.ID
		}
	})

	var changed []*entity.Product
	for i, p := range sorted {
		want := int32(i + 1)
		if p.Rank == nil || *p.Rank != want {
			rank := want
			p.Rank = &rank
			changed = append(changed, p)
		}
	}
	return changed
}

// Move intercambia el orden del producto con su vecino adyacente en la
// dirección pedida, en una transacción todo-o-nada que bloquea cada fila del
// proveedor (FOR UPDATE): dos Move concurrentes sobre el mismo proveedor se
// linealizan; proveedores distintos no se afectan.
//
// Dentro de la tx primero se normaliza el conjunto completo, de modo que el
// intercambio siempre opere sobre una secuencia densa aunque el estado previo
// estuviera corrupto. Sin vecino en esa dirección: domain.ErrMoveBoundary.
func (uc *UseCase) Move(ctx context.Context, productID int64, dir Direction) (*MoveResult, error) {
	target, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}

	var result *MoveResult
	err = uc.txRunner.Run(ctx, func(products repository.ProductRepository) error {
		// Bloquea todos los hermanos y relee el estado ya dentro de la tx.
		siblings, err := products.ListByProviderForUpdate(target.ProviderID)
		if err != nil {
			return err
		}

		for _, p := range Normalize(siblings) {
			if err := products.UpdateRank(p.ID, *p.Rank); err != nil {
				return err
			}
		}

		var current *entity.Product
		for _, p := range siblings {
			if p.ID == productID {
				current = p
				break
			}
		}
		if current == nil {
			// Borrado entre la lectura inicial y el bloqueo.
			return domain.ErrNotFound
		}

		neighborRank := *current.Rank - 1
		if dir == DirectionDown {
			neighborRank = *current.Rank + 1
		}
		var neighbor *entity.Product
		for _, p := range siblings {
			if p.ID != current.ID && p.Rank != nil && *p.Rank == neighborRank {
				neighbor = p
				break
			}
		}
		if neighbor == nil {
			return domain.ErrMoveBoundary
		}

		result = &MoveResult{
			Product:  RankChange{ProductID: current.ID, RankBefore: *current.Rank, RankAfter: *neighbor.Rank},
			Neighbor: RankChange{ProductID: neighbor.ID, RankBefore: *neighbor.Rank, RankAfter: *current.Rank},
		}
		if err := products.UpdateRank(current.ID, result.Product.RankAfter); err != nil {
			return err
		}
		return products.UpdateRank(neighbor.ID, result.Neighbor.RankAfter)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Int64("producto_id", result.Product.ProductID).
		Str("direccion", string(dir)).
		Int32("orden_anterior", result.Product.RankBefore).
		Int32("orden_nuevo", result.Product.RankAfter).
		Msg("producto movido")
	return result, nil
}
