package geo

import (
	"context"
	"fmt"
	"sync"

	h3 "github.com/uber/h3-go/v4"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

// Cells already written this process, capped so a long-lived worker does
// not grow the set forever. Clearing past the cap only costs a few
// redundant ON CONFLICT DO NOTHING inserts.
const seenSoftCap = 20000

// CellRegistry keeps h3_cells populated for every cell the pipeline touches
// while skipping repeat inserts in the hot loop.
type CellRegistry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewCellRegistry() *CellRegistry {
	return &CellRegistry{seen: make(map[string]struct{})}
}

func (r *CellRegistry) Ensure(ctx context.Context, q store.Querier, cell h3.Cell) error {
	key := cell.String()

	r.mu.Lock()
	if _, ok := r.seen[key]; ok {
		r.mu.Unlock()
		return nil
	}
	if len(r.seen) > seenSoftCap {
		r.seen = make(map[string]struct{})
	}
	r.seen[key] = struct{}{}
	r.mu.Unlock()

	centroid, err := h3.CellToLatLng(cell)
	if err != nil {
		return fmt.Errorf("cell centroid %s: %w", key, err)
	}
	boundary, err := h3.CellToBoundary(cell)
	if err != nil {
		return fmt.Errorf("cell boundary %s: %w", key, err)
	}

	err = q.InsertH3Cell(ctx, store.InsertH3CellParams{
		H3Cell:      key,
		Resolution:  int32(cell.Resolution()),
		BoundaryWKT: BoundaryWKT(boundary),
		CentroidLat: centroid.Lat,
		CentroidLon: centroid.Lng,
	})
	if err != nil {
		return fmt.Errorf("register cell %s: %w", key, err)
	}
	return nil
}
