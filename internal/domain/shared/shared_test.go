package shared

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	t.Run("round trips YYYY-MM-DD", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-09"`), &d))
		assert.Equal(t, NewDate(2024, time.March, 9), d)

		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"2024-03-09"`, string(out))
	})

	t.Run("null and empty are unset", func(t *testing.T) {
		for _, in := range []string{`null`, `""`} {
			d := NewDate(2020, time.January, 1)
			require.NoError(t, json.Unmarshal([]byte(in), &d))
			assert.True(t, d.IsNull(), in)
		}

		out, err := json.Marshal(struct {
			Fecha Date `json:"fecha"`
		}{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"fecha": null}`, string(out))
	})

	t.Run("accepts timestamps", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-09T15:04:05-03:00"`), &d))
		assert.Equal(t, "2024-03-09", d.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`20240309`), &d))
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", d.String())

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsNull())

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)

	assert.False(t, Today().IsNull())
}

type detalleInput struct {
	Producto       int             `json:"producto" validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"gte=0"`
}

type pedidoInput struct {
	Cliente  int            `json:"cliente" validate:"required"`
	Email    string         `json:"email,omitempty" validate:"omitempty,email"`
	Tipo     string         `json:"tipo" validate:"oneof=cliente proveedor"`
	Detalles []detalleInput `json:"detalles" validate:"min=1,dive"`
}

func TestValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		err := Validate(pedidoInput{
			Cliente: 1,
			Tipo:    "cliente",
			Detalles: []detalleInput{
				{Producto: 2, Cantidad: decimal.NewFromInt(3), PrecioUnitario: decimal.Zero},
			},
		})
		assert.NoError(t, err)
	})

	t.Run("reports json field paths", func(t *testing.T) {
		err := Validate(pedidoInput{
			Email: "not-an-email",
			Tipo:  "otro",
			Detalles: []detalleInput{
				{Producto: 2, Cantidad: decimal.Zero, PrecioUnitario: decimal.NewFromInt(-1)},
			},
		})
		require.Error(t, err)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "This field is required", vErr.Field("cliente"))
		assert.Equal(t, "Invalid email format", vErr.Field("email"))
		assert.Equal(t, "Must be one of: cliente proveedor", vErr.Field("tipo"))
		assert.Equal(t, "Must be greater than 0", vErr.Field("detalles[0].cantidad"))
		assert.Equal(t, "Must be greater than or equal to 0", vErr.Field("detalles[0].precio_unitario"))
		assert.Contains(t, vErr.Error(), "validation failed")
	})

	t.Run("empty detail list", func(t *testing.T) {
		err := Validate(pedidoInput{Cliente: 1, Tipo: "cliente"})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "Must contain at least 1 items", vErr.Field("detalles"))
	})
}

func TestFoldAndMatches(t *testing.T) {
	assert.Equal(t, "panales gomez", Fold("  Pañales GÓMEZ "))
	assert.True(t, Matches("gomez", "Distribuidora Gómez"))
	assert.True(t, Matches("ÁVILA", "avila hnos"))
	assert.True(t, Matches("", "anything"))
	assert.False(t, Matches("pollo", "Huevos", "Cerdo"))
	assert.True(t, Matches("pollo", "Huevos", "Pollo entero"))
}

func TestSearch(t *testing.T) {
	type contacto struct{ Nombre, Fantasia string }
	items := []contacto{
		{"Martín Pérez", "Granja Sur"},
		{"Lucía Gómez", ""},
		{"Carlos Ruiz", "Pollería Ruiz"},
	}
	text := func(c contacto) []string { return []string{c.Nombre, c.Fantasia} }

	assert.Len(t, Search(items, "", text), 3)
	assert.Equal(t, []contacto{items[0]}, Search(items, "perez", text))
	assert.Equal(t, []contacto{items[2]}, Search(items, "polleria", text))
	assert.Empty(t, Search(items, "zzz", text))
}
