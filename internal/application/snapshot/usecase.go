package snapshot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/repository"
)

// Options parámetros del pipeline de snapshot.
type Options struct {
	PageSize        int
	LevelsBatchSize int
	ReportDir       string
	TopN            int
}

// UseCase pipeline de snapshot diario: listado paginado → aplanado de variantes →
// niveles por lotes → cruce → CSV ordenado (y PostgreSQL si está configurado).
type UseCase struct {
	catalog Catalog
	writer  ReportWriter
	repo    repository.SnapshotRepository
	opts    Options
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso. repo puede ser nil (sólo CSV).
func NewUseCase(catalog Catalog, writer ReportWriter, repo repository.SnapshotRepository, opts Options, log zerolog.Logger) *UseCase {
	if opts.PageSize <= 0 {
		opts.PageSize = 250
	}
	if opts.LevelsBatchSize <= 0 {
		opts.LevelsBatchSize = 50
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	return &UseCase{catalog: catalog, writer: writer, repo: repo, opts: opts, log: log}
}

// ReportFileName nombre del CSV diario: inventory_report_YYYY-MM-DD.csv.
func ReportFileName(date time.Time) string {
	return fmt.Sprintf("inventory_report_%s.csv", date.Format("2006-01-02"))
}

// Run ejecuta el pipeline completo para la fecha indicada.
func (uc *UseCase) Run(ctx context.Context, date time.Time) (*dto.SnapshotSummary, error) {
	runID := uuid.NewString()
	log := uc.log.With().Str("run_id", runID).Str("date", date.Format("2006-01-02")).Logger()
	log.Info().Msg("iniciando snapshot de inventario")

	products, err := uc.FetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	items := ExtractInventoryItems(products)
	log.Info().Int("items", len(items)).Msg("inventory items extraídos")

	levels, failed, err := uc.FetchInventoryLevels(ctx, items)
	if err != nil {
		return nil, err
	}

	matched := MatchInventory(items, levels)
	log.Info().Int("matched", len(matched)).Msg("items cruzados con niveles de inventario")

	SortByAvailable(matched)

	path := filepath.Join(uc.opts.ReportDir, ReportFileName(date))
	if err := uc.writer.WriteSnapshot(path, matched); err != nil {
		return nil, fmt.Errorf("escribir reporte %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("reporte guardado")

	summary := Summarize(matched, uc.opts.TopN)
	summary.RunID = runID
	summary.Path = path
	summary.Products = len(products)
	summary.Levels = len(levels)
	summary.FailedBatches = failed

	if uc.repo != nil {
		if err := uc.repo.SaveSnapshot(ctx, date, runID, matched); err != nil {
			return nil, fmt.Errorf("persistir snapshot: %w", err)
		}
		summary.Persisted = true
		log.Info().Msg("snapshot persistido en PostgreSQL")
	}
	return summary, nil
}

// FetchAllProducts recorre el listado siguiendo el cursor de la cabecera Link hasta que no haya
// página siguiente. Una respuesta no exitosa corta la paginación y devuelve lo acumulado;
// los errores de red o de decodificación se propagan.
func (uc *UseCase) FetchAllProducts(ctx context.Context) ([]entity.Product, error) {
	var all []entity.Product
	pageURL := ""
	for pageNum := 1; ; pageNum++ {
		uc.log.Debug().Int("page", pageNum).Msg("pidiendo página de productos")
		page, err := uc.catalog.ProductsPage(ctx, pageURL, uc.opts.PageSize)
		if err != nil {
			if errors.Is(err, domain.ErrUpstreamStatus) {
				uc.log.Error().Err(err).Int("page", pageNum).Msg("paginación de productos interrumpida")
				break
			}
			return nil, fmt.Errorf("listar productos (página %d): %w", pageNum, err)
		}
		all = append(all, page.Products...)
		if page.NextPageURL == "" {
			break
		}
		pageURL = page.NextPageURL
	}
	uc.log.Info().Int("products", len(all)).Msg("productos obtenidos")
	return all, nil
}

// ExtractInventoryItems aplana productos y variantes en filas de inventario.
func ExtractInventoryItems(products []entity.Product) []entity.InventoryItem {
	var items []entity.InventoryItem
	for _, p := range products {
		for _, v := range p.Variants {
			items = append(items, entity.InventoryItem{
				ProductTitle:    p.Title,
				VariantTitle:    v.DisplayTitle(),
				SKU:             v.SKU,
				InventoryItemID: v.InventoryItemID,
				VariantID:       v.ID,
			})
		}
	}
	return items
}

// FetchInventoryLevels pide los niveles en lotes de LevelsBatchSize ids (una petición por lote).
// Un lote con respuesta no exitosa se omite y sus items quedan sin nivel; devuelve cuántos se omitieron.
func (uc *UseCase) FetchInventoryLevels(ctx context.Context, items []entity.InventoryItem) ([]entity.InventoryLevel, int, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.InventoryItemID)
	}

	var (
		all    []entity.InventoryLevel
		failed int
	)
	for i, batch := range Batches(ids, uc.opts.LevelsBatchSize) {
		uc.log.Debug().Int("batch", i+1).Int("size", len(batch)).Msg("pidiendo lote de niveles de inventario")
		levels, err := uc.catalog.InventoryLevels(ctx, batch)
		if err != nil {
			if errors.Is(err, domain.ErrUpstreamStatus) {
				failed++
				uc.log.Error().Err(err).Int("batch", i+1).Msg("lote de niveles omitido")
				continue
			}
			return nil, failed, fmt.Errorf("niveles de inventario (lote %d): %w", i+1, err)
		}
		all = append(all, levels...)
	}
	uc.log.Info().Int("levels", len(all)).Int("failed_batches", failed).Msg("niveles de inventario obtenidos")
	return all, failed, nil
}

// Batches parte ids en lotes de tamaño size; el último puede ser menor. ceil(len/size) lotes.
func Batches(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = 1
	}
	batches := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}

// MatchInventory cruza items con niveles por InventoryItemID (left join). Si hay varios niveles
// para el mismo item gana el último; sin nivel: Available 0 y LocationID vacío.
func MatchInventory(items []entity.InventoryItem, levels []entity.InventoryLevel) []entity.MatchedRecord {
	byItem := make(map[int64]entity.InventoryLevel, len(levels))
	for _, l := range levels {
		byItem[l.InventoryItemID] = l
	}

	matched := make([]entity.MatchedRecord, 0, len(items))
	for _, it := range items {
		rec := entity.MatchedRecord{InventoryItem: it, Available: decimal.Zero}
		if l, ok := byItem[it.InventoryItemID]; ok {
			rec.Available = l.Available
			rec.LocationID = l.LocationID
		}
		matched = append(matched, rec)
	}
	return matched
}

// SortByAvailable ordena de mayor a menor stock disponible, estable ante empates.
func SortByAvailable(records []entity.MatchedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Available.GreaterThan(records[j].Available)
	})
}

// Summarize cuenta items con y sin stock y toma los topN primeros (records ya ordenados).
func Summarize(records []entity.MatchedRecord, topN int) *dto.SnapshotSummary {
	s := &dto.SnapshotSummary{Items: len(records)}
	for _, r := range records {
		switch {
		case r.Available.IsPositive():
			s.InStock++
		case r.Available.IsZero():
			s.OutOfStock++
		}
	}
	if topN > len(records) {
		topN = len(records)
	}
	s.Top = records[:topN]
	return s
}
