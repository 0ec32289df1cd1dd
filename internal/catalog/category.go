package catalog

import (
	"context"

	"github.com/kedaikopi/backoffice/internal/search"
	"gorm.io/gorm"
)

// CreateCategory adds a category. Names are unique case-insensitively
// and sort must be at least 1.
func (s *Service) CreateCategory(ctx context.Context, name string, sort int) (*Category, error) {
	name, err := validateCategory(name, sort)
	if err != nil {
		return nil, err
	}

	c := &Category{Name: name, Sort: sort}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := categoryNameFree(tx, name, 0); err != nil {
			return err
		}
		return tx.Create(c).Error
	})
	err = uniqueViolation(err, &Error{Kind: KindDuplicateName, Entity: "category", Field: "name", Value: name})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category created", "id", c.ID, "name", c.Name, "sort", c.Sort)
	return c, nil
}

// UpdateCategory renames or re-ranks a category under the create rules.
func (s *Service) UpdateCategory(ctx context.Context, id uint, name string, sort int) (*Category, error) {
	name, err := validateCategory(name, sort)
	if err != nil {
		return nil, err
	}

	var c *Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c, err = first[Category](tx, "category", id); err != nil {
			return err
		}
		if err := categoryNameFree(tx, name, id); err != nil {
			return err
		}
		c.Name, c.Sort = name, sort
		return tx.Model(c).Select("name", "sort", "updated_at").Updates(c).Error
	})
	err = uniqueViolation(err, &Error{Kind: KindDuplicateName, Entity: "category", Field: "name", Value: name})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category updated", "id", c.ID, "name", c.Name, "sort", c.Sort)
	return c, nil
}

// DeleteCategory removes a category that no live menu references.
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := first[Category](tx, "category", id)
		if err != nil {
			return err
		}
		var menus int64
		if err := tx.Model(&Menu{}).Where("category_id = ?", id).Count(&menus).Error; err != nil {
			return err
		}
		if menus > 0 {
			return &Error{Kind: KindHasDependents, Entity: "category", Value: menus, IDs: []uint{id}}
		}
		return tx.Delete(c).Error
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "category deleted", "id", id)
	return nil
}

// GetCategory loads one category.
func (s *Service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	return first[Category](s.db.WithContext(ctx), "category", id)
}

// ListCategories returns categories ordered by sort then name, each with
// its live menu count. A non-empty term filters on name.
func (s *Service) ListCategories(ctx context.Context, term string) ([]Category, error) {
	q := s.db.WithContext(ctx).Model(&Category{}).
		Select("categories.*, (?) AS menus_count",
			s.db.Model(&Menu{}).Select("COUNT(*)").Where("menus.category_id = categories.id"))
	if term != "" {
		q = q.Where("LOWER(categories.name) LIKE ?"+search.Escape, search.Pattern(term))
	}

	var out []Category
	if err := q.Order("categories.sort").Order("categories.name").Order("categories.id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func validateCategory(name string, sort int) (string, error) {
	name, err := cleanName("category", name)
	if err != nil {
		return "", err
	}
	if sort < 1 {
		return "", &Error{Kind: KindInvalidSortRank, Entity: "category", Field: "sort", Value: sort}
	}
	return name, nil
}

func categoryNameFree(tx *gorm.DB, name string, except uint) error {
	q := tx.Model(&Category{}).Where("LOWER(name) = LOWER(?)", name)
	if except != 0 {
		q = q.Where("id <> ?", except)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return &Error{Kind: KindDuplicateName, Entity: "category", Field: "name", Value: name}
	}
	return nil
}
