package pdf

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
)

func TestRenderDecreaseReport_GeneraPDF(t *testing.T) {
	rows := []entity.DecreaseRow{{
		ProductTitle:   "Widget",
		VariantTitle:   "Red",
		SKU:            "W-R",
		YesterdayStock: decimal.NewFromInt(10),
		TodayStock:     decimal.NewFromInt(4),
		DecreaseAmount: decimal.NewFromInt(6),
	}}

	out, err := NewMarotoReportGenerator("es").RenderDecreaseReport(context.Background(), "ayer.csv → hoy.csv", rows)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderDecreaseReport_SinFilas(t *testing.T) {
	out, err := NewMarotoReportGenerator("es").RenderDecreaseReport(context.Background(), "sin cambios", nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderDecreaseReport_DisminucionFraccionaria(t *testing.T) {
	rows := []entity.DecreaseRow{{
		ProductTitle:   "Tela",
		VariantTitle:   "Metro",
		YesterdayStock: decimal.RequireFromString("1.4"),
		TodayStock:     decimal.RequireFromString("1"),
		DecreaseAmount: decimal.RequireFromString("0.4"),
	}}
	out, err := NewMarotoReportGenerator("en").RenderDecreaseReport(context.Background(), "fracciones", rows)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "camis…", truncate("camiseta", 6))
	assert.Equal(t, "ñandú", truncate("ñandú", 5))
}
