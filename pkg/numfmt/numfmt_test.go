package numfmt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-snapshot/pkg/numfmt"
)

func TestQuantity_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "12.345", numfmt.Quantity(numfmt.NewPrinter("es"), decimal.NewFromInt(12345)))
	assert.Equal(t, "1,234", numfmt.Quantity(numfmt.NewPrinter("en"), decimal.NewFromInt(1234)))
	assert.Equal(t, "12", numfmt.Quantity(numfmt.NewPrinter("es"), decimal.NewFromInt(12)))
}

func TestQuantity_FraccionNoSeRedondeaACero(t *testing.T) {
	got := numfmt.Quantity(numfmt.NewPrinter("en"), decimal.RequireFromString("0.4"))
	assert.NotEqual(t, "0", got)
	assert.Contains(t, got, "4")

	got = numfmt.Quantity(numfmt.NewPrinter("en"), decimal.RequireFromString("-0.4"))
	assert.NotEqual(t, "-0", got)
}

func TestNewPrinter_LocaleInvalidoUsaEspanol(t *testing.T) {
	assert.Equal(t, "12.345", numfmt.Quantity(numfmt.NewPrinter("??"), decimal.NewFromInt(12345)))
}
