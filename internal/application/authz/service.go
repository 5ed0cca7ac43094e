package authz

import (
	"errors"
	"fmt"

	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/entity"
	"github.com/jcastano/control-inventario/internal/domain/repository"
)

// TokenVerifier valida la integridad de la credencial (firma y expiración del
// JWT) antes de consultarla en la base. nil omite la pre-verificación.
type TokenVerifier func(token string) error

// Service compone resolución de identidad, resolución de tienda y consulta de
// permisos en una única comprobación de admisión. Es una función de decisión
// pura: no muta estado.
type Service struct {
	users     repository.UserRepository
	perms     repository.PermissionRepository
	stores    repository.StoreRepository
	providers repository.ProviderRepository
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	details   repository.PurchaseDetailRepository
	verify    TokenVerifier
}

// NewService construye el servicio de autorización.
func NewService(
	users repository.UserRepository,
	perms repository.PermissionRepository,
	stores repository.StoreRepository,
	providers repository.ProviderRepository,
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	details repository.PurchaseDetailRepository,
	verify TokenVerifier,
) *Service {
	return &Service{
		users:     users,
		perms:     perms,
		stores:    stores,
		providers: providers,
		products:  products,
		purchases: purchases,
		details:   details,
		verify:    verify,
	}
}

// ResolveUser resuelve la credencial de sesión a su usuario. Token vacío,
// expirado, con firma rota o sin sesión asociada devuelve (nil, nil): la
// decisión de rechazar es del guard. La pre-verificación hace que una sesión
// caduque por tiempo aunque la fila conserve el token.
func (s *Service) ResolveUser(token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	if s.verify != nil {
		if err := s.verify(token); err != nil {
			return nil, nil
		}
	}
	user, err := s.users.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("resolver credencial: %w", err)
	}
	return user, nil
}

// Authorize es la comprobación de admisión para operaciones de escritura:
// (1) resuelve el principal, (2) resuelve la tienda que gobierna la operación,
// (3) superadmin pasa siempre, (4) si no, exige el permiso cap en el grant
// (usuario, tienda). El error devuelto es solo de infraestructura.
func (s *Service) Authorize(token string, hints ScopeHints, cap entity.Capability) (Decision, error) {
	user, err := s.ResolveUser(token)
	if err != nil {
		return Decision{}, err
	}
	if user == nil {
		return deny(DecisionUnauthenticated, "token inválido o no proporcionado"), nil
	}

	storeID, err := s.ResolveStore(hints)
	if err != nil {
		if errors.Is(err, domain.ErrScopeMissing) {
			return deny(DecisionBadRequest, "falta referencia a la tienda (ruta, query o body)"), nil
		}
		return Decision{}, err
	}

	if user.IsSuperadmin {
		return allow(user), nil
	}

	grant, err := s.perms.GetByUserAndStore(user.ID, storeID)
	if err != nil {
		return Decision{}, fmt.Errorf("consultar grant (usuario=%d tienda=%d): %w", user.ID, storeID, err)
	}
	if !grant.Has(cap) {
		return deny(DecisionForbidden, "no autorizado para esta operación"), nil
	}
	return allow(user), nil
}

// RequireSuperadmin es el guard reducido de operaciones administrativas: no
// resuelve tienda, solo exige el flag de superadmin.
func (s *Service) RequireSuperadmin(token string) (Decision, error) {
	user, err := s.ResolveUser(token)
	if err != nil {
		return Decision{}, err
	}
	if user == nil {
		return deny(DecisionUnauthenticated, "token inválido o no proporcionado"), nil
	}
	if !user.IsSuperadmin {
		return deny(DecisionForbidden, "se requiere superadmin"), nil
	}
	return allow(user), nil
}

// AllowedStores devuelve las tiendas que el usuario puede ver: all=true para un
// superadmin (sin filtro), la lista exacta de tiendas con grant para un usuario
// normal, o la lista vacía para un llamador sin sesión. Tener un grant con cero
// permisos sigue otorgando visibilidad de lectura; solo la escritura exige un
// permiso concreto.
func (s *Service) AllowedStores(user *entity.User) (all bool, storeIDs []int64, err error) {
	if user == nil {
		return false, nil, nil
	}
	if user.IsSuperadmin {
		return true, nil, nil
	}
	ids, err := s.perms.ListStoreIDs(user.ID)
	if err != nil {
		return false, nil, fmt.Errorf("listar tiendas visibles (usuario=%d): %w", user.ID, err)
	}
	return false, ids, nil
}

// CanSeeStore reporta si la tienda está dentro del conjunto visible del usuario.
func (s *Service) CanSeeStore(user *entity.User, storeID int64) (bool, error) {
	all, ids, err := s.AllowedStores(user)
	if err != nil {
		return false, err
	}
	if all {
		return true, nil
	}
	for _, id := range ids {
		if id == storeID {
			return true, nil
		}
	}
	return false, nil
}
