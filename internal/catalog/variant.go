package catalog

import (
	"context"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/search"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VariantGroupInput creates or updates a variant group.
type VariantGroupInput struct {
	Name       string
	Type       string
	IsRequired bool
	SortOrder  int
	IsActive   bool
}

// VariantOptionInput creates or updates a variant option.
type VariantOptionInput struct {
	VariantGroupID uint
	Name           string
	ExtraPrice     decimal.Decimal
	SortOrder      int
	IsActive       bool
}

// GroupFilter narrows ListVariantGroups.
type GroupFilter struct {
	Search     string
	ActiveOnly bool
	Page       Page
}

// OptionFilter narrows ListVariantOptions. Zero VariantGroupID means all
// groups.
type OptionFilter struct {
	VariantGroupID uint
	ActiveOnly     bool
	Page           Page
}

func (in VariantGroupInput) validate() (VariantGroup, error) {
	name, err := cleanName("variant_group", in.Name)
	if err != nil {
		return VariantGroup{}, err
	}
	mode, err := ParseMode(in.Type)
	if err != nil {
		return VariantGroup{}, err
	}
	if in.SortOrder < 0 {
		return VariantGroup{}, &Error{Kind: KindInvalidSortRank, Entity: "variant_group", Field: "sort_order", Value: in.SortOrder}
	}
	return VariantGroup{
		Name:       name,
		Type:       mode,
		IsRequired: in.IsRequired,
		SortOrder:  in.SortOrder,
		IsActive:   in.IsActive,
	}, nil
}

// CreateVariantGroup adds a group.
func (s *Service) CreateVariantGroup(ctx context.Context, in VariantGroupInput) (*VariantGroup, error) {
	g, err := in.validate()
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit("Options").Create(&g).Error; err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "variant group created", "id", g.ID, "name", g.Name, "type", g.Type)
	return &g, nil
}

// UpdateVariantGroup rewrites a group under the create rules.
func (s *Service) UpdateVariantGroup(ctx context.Context, id uint, in VariantGroupInput) (*VariantGroup, error) {
	v, err := in.validate()
	if err != nil {
		return nil, err
	}

	var g *VariantGroup
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if g, err = first[VariantGroup](tx, "variant_group", id); err != nil {
			return err
		}
		g.Name, g.Type, g.IsRequired, g.SortOrder, g.IsActive = v.Name, v.Type, v.IsRequired, v.SortOrder, v.IsActive
		return tx.Model(g).
			Select("name", "type", "is_required", "sort_order", "is_active", "updated_at").
			Updates(g).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "variant group updated", "id", g.ID, "name", g.Name)
	return g, nil
}

// DeleteVariantGroup soft-deletes a group. Its options and menu
// associations stay in place but are no longer read.
func (s *Service) DeleteVariantGroup(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := first[VariantGroup](tx, "variant_group", id)
		if err != nil {
			return err
		}
		return tx.Delete(g).Error
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "variant group deleted", "id", id)
	return nil
}

// GetVariantGroup loads a group with its live options in sort order.
func (s *Service) GetVariantGroup(ctx context.Context, id uint) (*VariantGroup, error) {
	tx := s.db.WithContext(ctx).Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("variant_options.sort_order").Order("variant_options.id")
	})
	return first[VariantGroup](tx, "variant_group", id)
}

// ListVariantGroups returns one page of groups by sort order, with their
// options.
func (s *Service) ListVariantGroups(ctx context.Context, f GroupFilter) (Paged[VariantGroup], error) {
	q := s.db.WithContext(ctx).Model(&VariantGroup{})
	if f.Search != "" {
		q = q.Where("LOWER(variant_groups.name) LIKE ?"+search.Escape, search.Pattern(f.Search))
	}
	if f.ActiveOnly {
		q = q.Where("variant_groups.is_active = ?", true)
	}
	options := func(db *gorm.DB) *gorm.DB {
		if f.ActiveOnly {
			db = db.Where("variant_options.is_active = ?", true)
		}
		return orderOptions(db)
	}
	q = q.Order("variant_groups.sort_order").Order("variant_groups.id")
	return paginate[VariantGroup](q, s, f.Page, preload("Options", options))
}

// AllVariantGroups returns every live group with its live options, for
// overviews that do not page.
func (s *Service) AllVariantGroups(ctx context.Context) ([]VariantGroup, error) {
	var groups []VariantGroup
	err := s.db.WithContext(ctx).
		Preload("Options", orderOptions).
		Order("sort_order").Order("id").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func orderOptions(db *gorm.DB) *gorm.DB {
	return db.Order("variant_options.sort_order").Order("variant_options.id")
}

// CreateVariantOption adds an option to a live group. The delta may be
// negative.
func (s *Service) CreateVariantOption(ctx context.Context, in VariantOptionInput) (*VariantOption, error) {
	o, err := in.validate()
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := groupExists(tx, in.VariantGroupID); err != nil {
			return err
		}
		return tx.Omit("VariantGroup").Create(&o).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "variant option created", "id", o.ID, "group", o.VariantGroupID, "name", o.Name, "extra_price", money.Wire(o.ExtraPrice))
	return &o, nil
}

// UpdateVariantOption rewrites an option; it may move to another live
// group.
func (s *Service) UpdateVariantOption(ctx context.Context, id uint, in VariantOptionInput) (*VariantOption, error) {
	v, err := in.validate()
	if err != nil {
		return nil, err
	}

	var o *VariantOption
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o, err = first[VariantOption](tx, "variant_option", id); err != nil {
			return err
		}
		if err := groupExists(tx, in.VariantGroupID); err != nil {
			return err
		}
		o.VariantGroupID, o.Name, o.ExtraPrice, o.SortOrder, o.IsActive = v.VariantGroupID, v.Name, v.ExtraPrice, v.SortOrder, v.IsActive
		return tx.Model(o).
			Select("variant_group_id", "name", "extra_price", "sort_order", "is_active", "updated_at").
			Updates(o).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "variant option updated", "id", o.ID, "group", o.VariantGroupID)
	return o, nil
}

// DeleteVariantOption soft-deletes an option.
func (s *Service) DeleteVariantOption(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := first[VariantOption](tx, "variant_option", id)
		if err != nil {
			return err
		}
		return tx.Delete(o).Error
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "variant option deleted", "id", id)
	return nil
}

// GetVariantOption loads one option.
func (s *Service) GetVariantOption(ctx context.Context, id uint) (*VariantOption, error) {
	return first[VariantOption](s.db.WithContext(ctx), "variant_option", id)
}

// ListVariantOptions returns one page of options by sort order, with
// their group.
func (s *Service) ListVariantOptions(ctx context.Context, f OptionFilter) (Paged[VariantOption], error) {
	q := s.db.WithContext(ctx).Model(&VariantOption{}).
		Joins("JOIN variant_groups ON variant_groups.id = variant_options.variant_group_id AND variant_groups.deleted_at IS NULL")
	if f.VariantGroupID != 0 {
		q = q.Where("variant_options.variant_group_id = ?", f.VariantGroupID)
	}
	if f.ActiveOnly {
		q = q.Where("variant_options.is_active = ? AND variant_groups.is_active = ?", true, true)
	}
	q = q.Order("variant_options.sort_order").Order("variant_options.id")
	return paginate[VariantOption](q, s, f.Page, preload("VariantGroup"))
}

// ListOptionsForGroup returns every live option of a live group in sort
// order.
func (s *Service) ListOptionsForGroup(ctx context.Context, groupID uint, activeOnly bool) ([]VariantOption, error) {
	db := s.db.WithContext(ctx)
	if _, err := first[VariantGroup](db, "variant_group", groupID); err != nil {
		return nil, err
	}

	q := db.Where("variant_group_id = ?", groupID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []VariantOption
	if err := q.Order("sort_order").Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (in VariantOptionInput) validate() (VariantOption, error) {
	name, err := cleanName("variant_option", in.Name)
	if err != nil {
		return VariantOption{}, err
	}
	if !money.HasScale(in.ExtraPrice) {
		return VariantOption{}, &Error{Kind: KindInvalidPrice, Entity: "variant_option", Field: "extra_price", Value: in.ExtraPrice.String()}
	}
	if in.SortOrder < 0 {
		return VariantOption{}, &Error{Kind: KindInvalidSortRank, Entity: "variant_option", Field: "sort_order", Value: in.SortOrder}
	}
	return VariantOption{
		VariantGroupID: in.VariantGroupID,
		Name:           name,
		ExtraPrice:     in.ExtraPrice,
		SortOrder:      in.SortOrder,
		IsActive:       in.IsActive,
	}, nil
}

func groupExists(tx *gorm.DB, id uint) error {
	var n int64
	if id != 0 {
		if err := tx.Model(&VariantGroup{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
	}
	if n == 0 {
		return &Error{Kind: KindUnknownVariantGroup, Entity: "variant_option", Field: "variant_group_id", IDs: []uint{id}}
	}
	return nil
}
