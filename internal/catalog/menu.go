package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/search"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuInput creates a menu. VariantGroupIDs are attached in the same
// transaction.
type MenuInput struct {
	CategoryID      uint
	Name            string
	SKU             string
	Price           decimal.Decimal
	Station         string
	IsActive        bool
	VariantGroupIDs []uint
}

// MenuUpdate changes a menu. The SKU is immutable. A nil
// VariantGroupIDs leaves the associations alone; a non-nil one replaces
// them as SyncVariantGroups does.
type MenuUpdate struct {
	CategoryID      uint
	Name            string
	Price           decimal.Decimal
	Station         string
	IsActive        bool
	VariantGroupIDs []uint
}

// MenuFilter narrows ListMenus. Search matches name or SKU.
type MenuFilter struct {
	Search     string
	CategoryID uint
	Station    string
	ActiveOnly bool
	Page       Page
}

// CreateMenu adds a menu to an existing category.
func (s *Service) CreateMenu(ctx context.Context, in MenuInput) (*Menu, error) {
	name, err := cleanName("menu", in.Name)
	if err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || utf8.RuneCountInString(sku) > maxSKULen {
		return nil, &Error{Kind: KindInvalidSKU, Entity: "menu", Field: "sku", Value: in.SKU}
	}
	if err := validPrice(in.Price); err != nil {
		return nil, err
	}
	station, err := ParseStation(in.Station)
	if err != nil {
		return nil, err
	}

	m := &Menu{
		CategoryID: in.CategoryID,
		Name:       name,
		SKU:        sku,
		Price:      in.Price,
		IsActive:   in.IsActive,
		Station:    station,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := categoryExists(tx, in.CategoryID); err != nil {
			return err
		}
		if err := skuFree(tx, sku); err != nil {
			return err
		}
		groups, err := requireGroups(tx, in.VariantGroupIDs)
		if err != nil {
			return err
		}
		if err := tx.Omit("Category", "VariantGroups", "Variants").Create(m).Error; err != nil {
			return err
		}
		return insertAssociations(tx, m.ID, groups)
	})
	err = uniqueViolation(err, &Error{Kind: KindDuplicateSKU, Entity: "menu", Field: "sku", Value: sku})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "menu created", "id", m.ID, "sku", m.SKU, "category", m.CategoryID, "groups", len(in.VariantGroupIDs))
	return m, nil
}

// GetMenu loads a menu with its category and attached groups.
func (s *Service) GetMenu(ctx context.Context, id uint) (*Menu, error) {
	tx := s.db.WithContext(ctx).
		Preload("Category").
		Preload("VariantGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("variant_groups.sort_order").Order("variant_groups.id")
		})
	return first[Menu](tx, "menu", id)
}

// GetMenuBySKU loads a live menu by its business key.
func (s *Service) GetMenuBySKU(ctx context.Context, sku string) (*Menu, error) {
	var m Menu
	res := s.db.WithContext(ctx).Where("sku = ?", strings.TrimSpace(sku)).Limit(1).Find(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &Error{Kind: KindNotFound, Entity: "menu", Field: "sku", Value: sku}
	}
	return &m, nil
}

// UpdateMenu changes everything but the SKU.
func (s *Service) UpdateMenu(ctx context.Context, id uint, in MenuUpdate) (*Menu, error) {
	name, err := cleanName("menu", in.Name)
	if err != nil {
		return nil, err
	}
	if err := validPrice(in.Price); err != nil {
		return nil, err
	}
	station, err := ParseStation(in.Station)
	if err != nil {
		return nil, err
	}

	var m *Menu
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m, err = first[Menu](tx, "menu", id); err != nil {
			return err
		}
		if err := categoryExists(tx, in.CategoryID); err != nil {
			return err
		}
		var groups []uint
		if in.VariantGroupIDs != nil {
			if groups, err = requireGroups(tx, in.VariantGroupIDs); err != nil {
				return err
			}
		}

		m.CategoryID, m.Name, m.Price, m.Station, m.IsActive = in.CategoryID, name, in.Price, station, in.IsActive
		err := tx.Model(m).
			Select("category_id", "name", "price", "station", "is_active", "updated_at").
			Updates(m).Error
		if err != nil {
			return err
		}
		if in.VariantGroupIDs != nil {
			return replaceAssociations(tx, m.ID, groups)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "menu updated", "id", m.ID, "sku", m.SKU)
	return m, nil
}

// DeleteMenu detaches every group and soft-deletes the menu.
func (s *Service) DeleteMenu(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := first[Menu](tx, "menu", id)
		if err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", id).Delete(&MenuVariantGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "menu deleted", "id", id)
	return nil
}

// ListMenus returns one page of live menus ordered by name.
func (s *Service) ListMenus(ctx context.Context, f MenuFilter) (Paged[Menu], error) {
	q := s.db.WithContext(ctx).Model(&Menu{})
	if f.Search != "" {
		p := search.Pattern(f.Search)
		q = q.Where("(LOWER(menus.name) LIKE ?"+search.Escape+" OR LOWER(menus.sku) LIKE ?"+search.Escape+")", p, p)
	}
	if f.CategoryID != 0 {
		q = q.Where("menus.category_id = ?", f.CategoryID)
	}
	if f.Station != "" {
		st, err := ParseStation(f.Station)
		if err != nil {
			return Paged[Menu]{}, err
		}
		q = q.Where("menus.station = ?", st)
	}
	if f.ActiveOnly {
		q = q.Where("menus.is_active = ?", true)
	}
	q = q.Order("menus.name").Order("menus.id")
	return paginate[Menu](q, s, f.Page, preload("Category"))
}

func validPrice(p decimal.Decimal) error {
	if p.IsNegative() || !money.HasScale(p) {
		return &Error{Kind: KindInvalidPrice, Entity: "menu", Field: "price", Value: p.String()}
	}
	return nil
}

func categoryExists(tx *gorm.DB, id uint) error {
	var n int64
	if id != 0 {
		if err := tx.Model(&Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
	}
	if n == 0 {
		return &Error{Kind: KindUnknownCategory, Entity: "menu", Field: "category_id", Value: id}
	}
	return nil
}

func skuFree(tx *gorm.DB, sku string) error {
	var n int64
	if err := tx.Model(&Menu{}).Where("sku = ?", sku).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return &Error{Kind: KindDuplicateSKU, Entity: "menu", Field: "sku", Value: sku}
	}
	return nil
}
