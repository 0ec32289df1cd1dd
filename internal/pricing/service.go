package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrMenuUnavailable is returned when quoting an inactive menu.
var ErrMenuUnavailable = errors.New("menu is not available")

// SnapshotLoader reads a menu with its applicable groups and options in
// one consistent read.
type SnapshotLoader interface {
	LoadPricingSnapshot(ctx context.Context, menuID uint) (Snapshot, error)
}

// Request is one pricing request from the order layer.
type Request struct {
	MenuID    uint
	Selection Selection
}

// Quote is a priced request.
type Quote struct {
	ID       uuid.UUID
	MenuID   uint
	MenuName string
	SKU      string
	Result   Result
}

// Service loads snapshots and prices them.
type Service struct {
	loader SnapshotLoader
	engine *Engine
	logger *slog.Logger
}

// NewService wires a loader to an engine. A nil logger discards.
func NewService(loader SnapshotLoader, engine *Engine, logger *slog.Logger) *Service {
	if engine == nil {
		engine = NewEngine(PolicyClamp)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{loader: loader, engine: engine, logger: logger}
}

// Quote prices req against a snapshot read once for this call. An
// invalid selection is not an error: it is reported in Result.
func (s *Service) Quote(ctx context.Context, req Request) (*Quote, error) {
	snap, err := s.loader.LoadPricingSnapshot(ctx, req.MenuID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu %d: %w", req.MenuID, err)
	}
	if !snap.Menu.Active {
		return nil, fmt.Errorf("menu %d (%s): %w", snap.Menu.ID, snap.Menu.SKU, ErrMenuUnavailable)
	}

	q := &Quote{
		ID:       uuid.New(),
		MenuID:   snap.Menu.ID,
		MenuName: snap.Menu.Name,
		SKU:      snap.Menu.SKU,
		Result:   s.engine.Price(snap, req.Selection),
	}

	s.logger.DebugContext(ctx, "priced selection",
		"quote", q.ID.String(),
		"menu", q.MenuID,
		"valid", q.Result.Valid,
		"violations", len(q.Result.Violations),
		"final_price", q.Result.FinalPrice.StringFixed(2),
		"clamped", q.Result.Clamped,
	)
	return q, nil
}
