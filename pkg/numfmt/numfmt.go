// Package numfmt formatea cantidades de inventario según el idioma configurado.
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NewPrinter printer con separadores de miles según APP_LOCALE (es → 12.345).
// Un locale inválido cae a español.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return message.NewPrinter(tag)
}

// Quantity enteros sin decimales; fracciones con hasta dos decimales (0.4 no se redondea a 0).
func Quantity(p *message.Printer, d decimal.Decimal) string {
	if d.IsInteger() {
		return p.Sprintf("%d", d.IntPart())
	}
	return p.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}
