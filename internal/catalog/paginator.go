// Package catalog fetches products from the external store in pages and
// hands out bounded batches that sweep the whole catalog across runs.
package catalog

import (
	"context"
	"fmt"
	"strconv"

	"seopilot/internal/logger"
	"seopilot/internal/models"
)

const (
	cursorKey = "seo_cursor"
	pageSize  = 250
)

// Source fetches one page of products with IDs greater than sinceID, in
// ascending ID order. An empty result means the end of the catalog.
type Source interface {
	FetchSince(ctx context.Context, sinceID int64, limit int) ([]models.Product, error)
}

// Paginator wraps a Source with full-sweep listing and persisted round-robin
// batch selection.
type Paginator struct {
	source Source
	store  KeyValueStore
	logger *logger.Logger
}

func NewPaginator(source Source, store KeyValueStore, log *logger.Logger) *Paginator {
	return &Paginator{source: source, store: store, logger: log}
}

// ListAll pages through the catalog from the start until it is exhausted or
// maxItems is reached. It does not touch the round-robin cursor.
func (p *Paginator) ListAll(ctx context.Context, maxItems int) ([]models.Product, error) {
	var all []models.Product
	var sinceID int64
	for {
		limit := pageSize
		if maxItems > 0 && maxItems-len(all) < limit {
			limit = maxItems - len(all)
		}
		if limit <= 0 {
			break
		}
		page, err := p.source.FetchSince(ctx, sinceID, limit)
		if err != nil {
			return all, fmt.Errorf("catalog page fetch failed: %w", err)
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		sinceID = page[len(page)-1].ID
		if len(page) < limit {
			break
		}
	}
	return all, nil
}

// ListBatchRoundRobin returns up to batchSize products starting after the
// persisted cursor, wrapping to the start of the catalog at most once, and
// persists the last returned ID so consecutive runs cover every product once
// per cycle. batchSize <= 0 degrades to ListAll.
func (p *Paginator) ListBatchRoundRobin(ctx context.Context, batchSize int) ([]models.Product, error) {
	if batchSize <= 0 {
		return p.ListAll(ctx, 0)
	}

	var batch []models.Product
	var fetchErr error

	sinceID := p.loadCursor(ctx)
	wrapped := false
	for len(batch) < batchSize {
		limit := batchSize - len(batch)
		if limit > pageSize {
			limit = pageSize
		}
		page, err := p.source.FetchSince(ctx, sinceID, limit)
		if err != nil {
			// Keep whatever was accumulated; the cursor still advances so the
			// next run does not re-process this partial batch.
			fetchErr = err
			break
		}
		if len(page) == 0 {
			// End of catalog. A batch in progress ends here so one cycle
			// never repeats a product; an empty batch means the cursor was
			// parked at the end, so wrap to the start exactly once.
			if wrapped || len(batch) > 0 {
				break
			}
			wrapped = true
			sinceID = 0
			continue
		}
		batch = append(batch, page...)
		sinceID = page[len(page)-1].ID
		if len(page) < limit {
			// Short page: the catalog is exhausted.
			break
		}
	}

	if len(batch) > 0 {
		p.saveCursor(ctx, batch[len(batch)-1].ID)
	}
	if fetchErr != nil {
		p.logger.Warn("round-robin batch truncated after %d products: %v", len(batch), fetchErr)
	}
	return batch, nil
}

func (p *Paginator) loadCursor(ctx context.Context) int64 {
	raw, err := p.store.Get(ctx, cursorKey)
	if err != nil || raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Corrupt cursor restarts the sweep from the top of the catalog.
		p.logger.Warn("ignoring corrupt cursor value %q", raw)
		return 0
	}
	return id
}

func (p *Paginator) saveCursor(ctx context.Context, id int64) {
	if err := p.store.Set(ctx, cursorKey, strconv.FormatInt(id, 10)); err != nil {
		p.logger.Error("failed to persist round-robin cursor: %v", err)
	}
}
