package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttachVariantGroups adds groups to a menu. Already attached groups are
// left alone. If any id is unknown nothing is attached.
func (s *Service) AttachVariantGroups(ctx context.Context, menuID uint, groupIDs []uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := first[Menu](tx, "menu", menuID); err != nil {
			return err
		}
		groups, err := requireGroups(tx, groupIDs)
		if err != nil {
			return err
		}
		return insertAssociations(tx, menuID, groups)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "variant groups attached", "menu", menuID, "groups", uniqueIDs(groupIDs))
	return nil
}

// SyncVariantGroups makes groupIDs the menu's exact group set. The last
// writer wins.
func (s *Service) SyncVariantGroups(ctx context.Context, menuID uint, groupIDs []uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := first[Menu](tx, "menu", menuID); err != nil {
			return err
		}
		groups, err := requireGroups(tx, groupIDs)
		if err != nil {
			return err
		}
		return replaceAssociations(tx, menuID, groups)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "variant groups synced", "menu", menuID, "groups", uniqueIDs(groupIDs))
	return nil
}

// DetachVariantGroups removes groups from a menu. Groups that are not
// attached are ignored.
func (s *Service) DetachVariantGroups(ctx context.Context, menuID uint, groupIDs []uint) error {
	ids := uniqueIDs(groupIDs)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := first[Menu](tx, "menu", menuID); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("menu_id = ? AND variant_group_id IN ?", menuID, ids).Delete(&MenuVariantGroup{}).Error
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "variant groups detached", "menu", menuID, "groups", ids)
	return nil
}

// ListMenuVariantGroups returns the live groups attached to a menu in
// sort order, each with its live options in sort order.
func (s *Service) ListMenuVariantGroups(ctx context.Context, menuID uint, activeOnly bool) ([]VariantGroup, error) {
	db := s.db.WithContext(ctx)
	if _, err := first[Menu](db, "menu", menuID); err != nil {
		return nil, err
	}
	return menuGroups(db, menuID, activeOnly)
}

func menuGroups(tx *gorm.DB, menuID uint, activeOnly bool) ([]VariantGroup, error) {
	q := tx.Model(&VariantGroup{}).
		Joins("JOIN menu_variant_groups ON menu_variant_groups.variant_group_id = variant_groups.id").
		Where("menu_variant_groups.menu_id = ?", menuID)
	if activeOnly {
		q = q.Where("variant_groups.is_active = ?", true)
	}

	var groups []VariantGroup
	err := q.Preload("Options", func(db *gorm.DB) *gorm.DB {
		if activeOnly {
			db = db.Where("variant_options.is_active = ?", true)
		}
		return db.Order("variant_options.sort_order").Order("variant_options.id")
	}).
		Order("variant_groups.sort_order").Order("variant_groups.id").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// requireGroups resolves ids to live groups, all or nothing. Missing ids
// are reported ascending.
func requireGroups(tx *gorm.DB, groupIDs []uint) ([]uint, error) {
	ids := uniqueIDs(groupIDs)
	if len(ids) == 0 {
		return ids, nil
	}

	var found []uint
	if err := tx.Model(&VariantGroup{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &Error{Kind: KindUnknownVariantGroup, Entity: "menu", Field: "variant_groups", IDs: missing}
	}
	return ids, nil
}

func insertAssociations(tx *gorm.DB, menuID uint, groupIDs []uint) error {
	if len(groupIDs) == 0 {
		return nil
	}
	rows := make([]MenuVariantGroup, len(groupIDs))
	for i, id := range groupIDs {
		rows[i] = MenuVariantGroup{MenuID: menuID, VariantGroupID: id}
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func replaceAssociations(tx *gorm.DB, menuID uint, groupIDs []uint) error {
	del := tx.Where("menu_id = ?", menuID)
	if len(groupIDs) > 0 {
		del = del.Where("variant_group_id NOT IN ?", groupIDs)
	}
	if err := del.Delete(&MenuVariantGroup{}).Error; err != nil {
		return err
	}
	return insertAssociations(tx, menuID, groupIDs)
}
