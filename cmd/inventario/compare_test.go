package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsnapshot "github.com/jhoicas/Inventario-snapshot/internal/application/snapshot"
)

func isolateEnv(t *testing.T, reportDir string) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("COMPARE_TODAY", "")
	t.Setenv("COMPARE_PDF_PATH", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REPORT_DIR", reportDir)
}

func TestCompareCmd_FlagsSobrescribenConfigYHoyPorDefecto(t *testing.T) {
	dir := t.TempDir()
	isolateEnv(t, dir)
	t.Setenv("COMPARE_YESTERDAY", filepath.Join(dir, "no-existe.csv"))
	t.Setenv("COMPARE_OUTPUT", filepath.Join(dir, "desde-config.csv"))

	yesterday := filepath.Join(dir, "old_cleaned.csv")
	require.NoError(t, os.WriteFile(yesterday, []byte(
		"Product Title,Variant Title,SKU,Inventory Available\nWidget,Red,W-R,10\nGorra,,G,1\n"), 0o644))

	// Sin --today se usa inventory_report_<hoy>.csv dentro de REPORT_DIR.
	today := filepath.Join(dir, appsnapshot.ReportFileName(time.Now()))
	require.NoError(t, os.WriteFile(today, []byte(
		"product_title,variant_title,sku,inventory_item_id,available,location_id\nWidget,Red,W-R,101,4,9001\nGorra,Default Title,G,102,1,9001\n"), 0o644))

	out := filepath.Join(dir, "salida", "inventory_decrease_report.csv")
	root := newRootCmd()
	root.SetArgs([]string{"compare", "--yesterday", yesterday, "--out", out})
	require.NoError(t, root.ExecuteContext(context.Background()))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Product Title,Variant Title,SKU,Yesterday Stock,Today Stock,Decrease Amount", lines[0])
	assert.Equal(t, "Widget,Red,W-R,10,4,6", lines[1])

	_, err = os.Stat(filepath.Join(dir, "desde-config.csv"))
	assert.True(t, os.IsNotExist(err), "--out tiene prioridad sobre COMPARE_OUTPUT")
}

func TestCompareCmd_ArchivoFaltanteTerminaConError(t *testing.T) {
	dir := t.TempDir()
	isolateEnv(t, dir)

	root := newRootCmd()
	root.SetArgs([]string{"compare",
		"--yesterday", filepath.Join(dir, "ayer.csv"),
		"--today", filepath.Join(dir, "hoy.csv"),
		"--out", filepath.Join(dir, "out.csv"),
	})
	assert.Error(t, root.ExecuteContext(context.Background()))
}
