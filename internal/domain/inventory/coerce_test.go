package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/control-inventario/internal/domain"
	"github.com/jcastano/control-inventario/internal/domain/inventory"
)

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    int64
		clamped bool
		wantErr bool
	}{
		{name: "entero", raw: `42`, want: 42},
		{name: "cero", raw: `0`, want: 0},
		{name: "float se trunca", raw: `12.9`, want: 12, clamped: true},
		{name: "string numérico", raw: `"15"`, want: 15},
		{name: "string float", raw: `"3.7"`, want: 3, clamped: true},
		{name: "negativo se recorta a cero", raw: `-5`, want: 0, clamped: true},
		{name: "negativo en string", raw: `"-12"`, want: 0, clamped: true},
		{name: "sobre el techo se recorta", raw: `99999999999`, want: inventory.MaxQuantity, clamped: true},
		{name: "exactamente el techo", raw: `1000000000`, want: inventory.MaxQuantity},
		{name: "no numérico", raw: `"abc"`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "vacío", raw: ``, wantErr: true},
		{name: "string vacío", raw: `""`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, clamped, err := inventory.CoerceQuantity([]byte(tc.raw))
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.clamped, clamped, "el flag de recorte debe reflejar la corrección")
		})
	}
}

func TestPriorInventory_Variantes(t *testing.T) {
	visible := inventory.VisiblePriorInventory(7)
	v, ok := visible.Value()
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)
	assert.False(t, visible.Hidden())

	hidden := inventory.HiddenPriorInventory()
	_, ok = hidden.Value()
	assert.False(t, ok, "la variante oculta no expone el valor")
	assert.True(t, hidden.Hidden())
}
