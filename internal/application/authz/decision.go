package authz

import "github.com/jcastano/control-inventario/internal/domain/entity"

// DecisionKind resultado posible de una comprobación de admisión.
type DecisionKind int

const (
	// DecisionAllow la operación procede; Decision.User es el principal.
	DecisionAllow DecisionKind = iota
	// DecisionUnauthenticated no hay credencial válida (HTTP 401).
	DecisionUnauthenticated
	// DecisionBadRequest no se pudo determinar la tienda de la operación (HTTP 400).
	DecisionBadRequest
	// DecisionForbidden credencial válida y tienda conocida, pero sin el permiso (HTTP 403).
	DecisionForbidden
)

// Decision es el veredicto del guard: puro, sin efectos secundarios.
type Decision struct {
	Kind   DecisionKind
	User   *entity.User
	Reason string
}

// Allowed reporta si la operación fue admitida.
func (d Decision) Allowed() bool { return d.Kind == DecisionAllow }

func allow(u *entity.User) Decision {
	return Decision{Kind: DecisionAllow, User: u}
}

func deny(kind DecisionKind, reason string) Decision {
	return Decision{Kind: kind, Reason: reason}
}
