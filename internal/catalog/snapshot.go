package catalog

import (
	"context"
	"database/sql"

	"github.com/kedaikopi/backoffice/internal/pricing"
	"gorm.io/gorm"
)

// LoadPricingSnapshot reads a live menu, its active attached groups and
// their live options inside one read transaction. Inactive options are
// kept and flagged so the engine can report them as invalid.
func (s *Service) LoadPricingSnapshot(ctx context.Context, menuID uint) (pricing.Snapshot, error) {
	var snap pricing.Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := first[Menu](tx, "menu", menuID)
		if err != nil {
			return err
		}
		groups, err := menuGroups(tx, menuID, false)
		if err != nil {
			return err
		}
		snap = toSnapshot(m, groups)
		return nil
	}, &sql.TxOptions{ReadOnly: s.readOnlyTx()})
	return snap, err
}

// sqlite rejects read-only transaction options.
func (s *Service) readOnlyTx() bool {
	return s.db.Dialector.Name() != "sqlite"
}

func toSnapshot(m *Menu, groups []VariantGroup) pricing.Snapshot {
	snap := pricing.Snapshot{
		Menu: pricing.Menu{
			ID:        m.ID,
			Name:      m.Name,
			SKU:       m.SKU,
			BasePrice: m.Price,
			Active:    m.IsActive,
		},
	}
	for _, g := range groups {
		if !g.IsActive {
			continue
		}
		pg := pricing.Group{
			ID:        g.ID,
			Name:      g.Name,
			Mode:      pricing.Mode(g.Type),
			Required:  g.IsRequired,
			SortOrder: g.SortOrder,
		}
		for _, o := range g.Options {
			pg.Options = append(pg.Options, pricing.Option{
				ID:        o.ID,
				GroupID:   o.VariantGroupID,
				Name:      o.Name,
				Delta:     o.ExtraPrice,
				SortOrder: o.SortOrder,
				Active:    o.IsActive,
			})
		}
		snap.Groups = append(snap.Groups, pg)
	}
	return snap
}
