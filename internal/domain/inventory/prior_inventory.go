package inventory

// RedactedMarker es el marcador que reemplaza al inventario anterior cuando el
// solicitante no tiene puede_ver_inventario_compras en la tienda. Es un literal
// distinguible: no es null ni cero, para que el cliente diferencie "oculto" de
// "legítimamente cero".
const RedactedMarker = "oculto"

// PriorInventory es el inventario anterior de una línea de detalle como variante
// Visible(valor) | Oculto. La lógica interna trabaja con el tipo; solo el borde
// de serialización lo aplana al marcador.
type PriorInventory struct {
	hidden bool
	value  int64
}

// VisiblePriorInventory construye la variante visible con el valor real.
func VisiblePriorInventory(v int64) PriorInventory {
	return PriorInventory{value: v}
}

// HiddenPriorInventory construye la variante oculta.
func HiddenPriorInventory() PriorInventory {
	return PriorInventory{hidden: true}
}

// Value devuelve el valor y ok=false si la variante está oculta.
func (p PriorInventory) Value() (int64, bool) {
	if p.hidden {
		return 0, false
	}
	return p.value, true
}

// Hidden reporta si la variante está oculta.
func (p PriorInventory) Hidden() bool { return p.hidden }
