package postgres

import (
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-snapshot/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseSnapshotDate interpreta la parte de fecha de una referencia "pg:YYYY-MM-DD".
func ParseSnapshotDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha de snapshot %q (se espera YYYY-MM-DD): %w", s, domain.ErrInvalidInput)
	}
	return d, nil
}

// truncateDay normaliza a medianoche UTC para comparar contra columnas DATE.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
