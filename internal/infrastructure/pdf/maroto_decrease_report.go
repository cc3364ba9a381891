// Package pdf genera la representación gráfica del reporte de disminución de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + snapshots comparados │ fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Variante | SKU | Ayer | Hoy | Disminución │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: variantes con disminución / unidades              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"

	"github.com/jhoicas/Inventario-snapshot/internal/application/compare"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
	"github.com/jhoicas/Inventario-snapshot/pkg/numfmt"
)

var _ compare.ReportRenderer = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa compare.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct {
	now     func() time.Time
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador; locale decide el formato de las cantidades.
func NewMarotoReportGenerator(locale string) *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now, printer: numfmt.NewPrinter(locale)}
}

// RenderDecreaseReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderDecreaseReport(_ context.Context, title string, rows []entity.DecreaseRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de disminución de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(g.printer, rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(g.printer, rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generated time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("DISMINUCIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Variante", 2, align.Left),
		h("SKU", 2, align.Left),
		h("Ayer", 1, align.Right),
		h("Hoy", 1, align.Right),
		h("Disminución", 2, align.Right),
	)
}

// tableDetailRows: una fila por variante con disminución.
func tableDetailRows(p *message.Printer, rows []entity.DecreaseRow) []core.Row {
	cell := func(a align.Type) props.Text {
		return props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
	}
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(truncate(r.ProductTitle, 45), cell(align.Left))),
			col.New(2).Add(text.New(truncate(r.VariantTitle, 20), cell(align.Left))),
			col.New(2).Add(text.New(r.SKU, cell(align.Left))),
			col.New(1).Add(text.New(numfmt.Quantity(p, r.YesterdayStock), cell(align.Right))),
			col.New(1).Add(text.New(numfmt.Quantity(p, r.TodayStock), cell(align.Right))),
			col.New(2).Add(text.New("-"+numfmt.Quantity(p, r.DecreaseAmount), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
		))
	}
	return result
}

func totalsRow(p *message.Printer, rows []entity.DecreaseRow) core.Row {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.DecreaseAmount)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Color: colorPrimary})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(4).Add(
			label("Variantes con disminución:"),
		),
		col.New(2).Add(
			value(p.Sprintf("%d", len(rows))),
			text.New(numfmt.Quantity(p, total)+" u.", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 6, Color: colorAlert,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// truncate corta s a n runas añadiendo "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
