package inventory

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcastano/control-inventario/internal/domain"
)

// MaxQuantity es el techo de sanidad para cantidades e inventarios; valores por
// encima se recortan en lugar de rechazar la petición.
const MaxQuantity int64 = 1_000_000_000

// CoerceQuantity convierte de forma tolerante un valor JSON crudo (número,
// float o string numérico) al entero no negativo que almacenan cantidad e
// inventario_anterior. Los floats se truncan, los negativos se recortan a 0 y
// los valores sobre MaxQuantity se recortan al techo.
//
// Devuelve clamped=true cuando hubo recorte, para que el llamador registre la
// corrección silenciosa en el log en lugar de enterrarla. Entradas no numéricas
// (o ausentes) devuelven domain.ErrInvalidInput.
func CoerceQuantity(raw []byte) (value int64, clamped bool, err error) {
	s := string(bytes.TrimSpace(raw))
	if s == "" || s == "null" {
		return 0, false, domain.ErrInvalidInput
	}
	// Acepta también el valor entre comillas ("12", "12.5")
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return 0, false, domain.ErrInvalidInput
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false, domain.ErrInvalidInput
	}

	truncated := d.IntPart()
	if !d.Equal(decimal.NewFromInt(truncated)) {
		clamped = true // tenía parte decimal
	}
	if truncated < 0 {
		return 0, true, nil
	}
	if truncated > MaxQuantity {
		return MaxQuantity, true, nil
	}
	return truncated, clamped, nil
}
