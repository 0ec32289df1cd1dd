package catalog

import (
	"context"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/search"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuVariantInput creates or updates a flat menu variant.
type MenuVariantInput struct {
	MenuID     uint
	Name       string
	ExtraPrice decimal.Decimal
}

// MenuVariantFilter narrows ListMenuVariants. Search matches the
// variant name or its menu's name.
type MenuVariantFilter struct {
	Search string
	MenuID uint
	Page   Page
}

func (in MenuVariantInput) validate() (string, error) {
	name, err := cleanName("menu_variant", in.Name)
	if err != nil {
		return "", err
	}
	if in.ExtraPrice.IsNegative() || !money.HasScale(in.ExtraPrice) {
		return "", &Error{Kind: KindInvalidPrice, Entity: "menu_variant", Field: "extra_price", Value: in.ExtraPrice.String()}
	}
	return name, nil
}

// CreateMenuVariant adds a surcharge variant to a live menu.
func (s *Service) CreateMenuVariant(ctx context.Context, in MenuVariantInput) (*MenuVariant, error) {
	name, err := in.validate()
	if err != nil {
		return nil, err
	}

	v := &MenuVariant{MenuID: in.MenuID, Name: name, ExtraPrice: in.ExtraPrice}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := first[Menu](tx, "menu", in.MenuID)
		if err != nil {
			return err
		}
		if err := tx.Omit("Menu").Create(v).Error; err != nil {
			return err
		}
		v.Menu = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "menu variant created", "id", v.ID, "menu", v.MenuID, "name", v.Name)
	return v, nil
}

// UpdateMenuVariant rewrites a variant; it may move to another menu.
func (s *Service) UpdateMenuVariant(ctx context.Context, id uint, in MenuVariantInput) (*MenuVariant, error) {
	name, err := in.validate()
	if err != nil {
		return nil, err
	}

	var v *MenuVariant
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if v, err = first[MenuVariant](tx, "menu_variant", id); err != nil {
			return err
		}
		m, err := first[Menu](tx, "menu", in.MenuID)
		if err != nil {
			return err
		}
		v.MenuID, v.Name, v.ExtraPrice = in.MenuID, name, in.ExtraPrice
		if err := tx.Model(v).Select("menu_id", "name", "extra_price", "updated_at").Updates(v).Error; err != nil {
			return err
		}
		v.Menu = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "menu variant updated", "id", v.ID, "menu", v.MenuID)
	return v, nil
}

// DeleteMenuVariant soft-deletes a variant.
func (s *Service) DeleteMenuVariant(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := first[MenuVariant](tx, "menu_variant", id)
		if err != nil {
			return err
		}
		return tx.Delete(v).Error
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "menu variant deleted", "id", id)
	return nil
}

// ListMenuVariants returns one page of variants of live menus, ordered
// by menu then name, with the menu loaded for TotalPrice.
func (s *Service) ListMenuVariants(ctx context.Context, f MenuVariantFilter) (Paged[MenuVariant], error) {
	q := s.db.WithContext(ctx).Model(&MenuVariant{}).
		Joins("JOIN menus ON menus.id = menu_variants.menu_id AND menus.deleted_at IS NULL")
	if f.Search != "" {
		p := search.Pattern(f.Search)
		q = q.Where("(LOWER(menu_variants.name) LIKE ?"+search.Escape+" OR LOWER(menus.name) LIKE ?"+search.Escape+")", p, p)
	}
	if f.MenuID != 0 {
		q = q.Where("menu_variants.menu_id = ?", f.MenuID)
	}
	q = q.Order("menu_variants.menu_id").Order("menu_variants.name").Order("menu_variants.id")
	return paginate[MenuVariant](q, s, f.Page, preload("Menu"))
}
