// Package seed loads the demonstration catalog and staff accounts.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/users"
	"gorm.io/gorm"
)

// DefaultPassword is given to every seeded account.
const DefaultPassword = "password"

// Options tune a seeding run.
type Options struct {
	// SkipUsers leaves the users table alone.
	SkipUsers bool
	// Password overrides DefaultPassword.
	Password string
	// Cost is the bcrypt cost; zero means users.DefaultCost.
	Cost int
}

// Summary counts what a run created.
type Summary struct {
	Skipped       bool
	Categories    int
	Menus         int
	VariantGroups int
	Options       int
	MenuVariants  int
	Users         int
}

func (s Summary) String() string {
	if s.Skipped {
		return "catalog already seeded"
	}
	return fmt.Sprintf("%d categories, %d menus, %d variant groups, %d options, %d menu variants, %d users",
		s.Categories, s.Menus, s.VariantGroups, s.Options, s.MenuVariants, s.Users)
}

// Run seeds db in one transaction. It does nothing when any category
// already exists. Existing accounts are kept.
func Run(ctx context.Context, db *gorm.DB, logger *slog.Logger, opts Options) (Summary, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&catalog.Category{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			sum.Skipped = true
			return nil
		}

		svc := catalog.New(tx, logger, 0)
		if err := seedCatalog(ctx, svc, &sum); err != nil {
			return err
		}
		if opts.SkipUsers {
			return nil
		}
		return seedUsers(ctx, users.NewStore(tx, logger, opts.Cost), opts.Password, &sum)
	})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to seed: %w", err)
	}

	logger.InfoContext(ctx, "seed finished", "summary", sum.String())
	return sum, nil
}

func seedCatalog(ctx context.Context, svc *catalog.Service, sum *Summary) error {
	catIDs := make(map[string]uint, len(categories))
	for _, c := range categories {
		cat, err := svc.CreateCategory(ctx, c.name, c.sort)
		if err != nil {
			return fmt.Errorf("category %s: %w", c.name, err)
		}
		catIDs[c.name] = cat.ID
		sum.Categories++
	}

	groupIDs := make(map[string]uint, len(groups))
	for i, g := range groups {
		grp, err := svc.CreateVariantGroup(ctx, catalog.VariantGroupInput{
			Name:       g.name,
			Type:       string(catalog.ModeSingle),
			IsRequired: g.required,
			SortOrder:  i + 1,
			IsActive:   true,
		})
		if err != nil {
			return fmt.Errorf("variant group %s: %w", g.name, err)
		}
		groupIDs[g.name] = grp.ID
		sum.VariantGroups++

		for j, o := range g.options {
			_, err := svc.CreateVariantOption(ctx, catalog.VariantOptionInput{
				VariantGroupID: grp.ID,
				Name:           o.name,
				ExtraPrice:     money.MustParse(o.extra),
				SortOrder:      j + 1,
				IsActive:       true,
			})
			if err != nil {
				return fmt.Errorf("variant option %s/%s: %w", g.name, o.name, err)
			}
			sum.Options++
		}
	}

	for _, m := range menus {
		var attach []uint
		for _, name := range groupsFor(m.name) {
			attach = append(attach, groupIDs[name])
		}
		menu, err := svc.CreateMenu(ctx, catalog.MenuInput{
			CategoryID:      catIDs[m.category],
			Name:            m.name,
			SKU:             m.sku,
			Price:           money.MustParse(m.price),
			Station:         Station(m.station),
			IsActive:        true,
			VariantGroupIDs: attach,
		})
		if err != nil {
			return fmt.Errorf("menu %s: %w", m.sku, err)
		}
		sum.Menus++

		if len(attach) > 0 {
			continue
		}
		for _, p := range portions {
			_, err := svc.CreateMenuVariant(ctx, catalog.MenuVariantInput{
				MenuID:     menu.ID,
				Name:       p.name,
				ExtraPrice: money.MustParse(p.extra),
			})
			if err != nil {
				return fmt.Errorf("menu variant %s/%s: %w", m.sku, p.name, err)
			}
			sum.MenuVariants++
		}
	}
	return nil
}

func seedUsers(ctx context.Context, store *users.Store, password string, sum *Summary) error {
	for _, u := range staff {
		_, err := store.Create(ctx, u.name, u.email, password, u.role)
		if errors.Is(err, users.ErrEmailTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("user %s: %w", u.email, err)
		}
		sum.Users++
	}
	return nil
}

// groupsFor picks variant groups from the menu name.
func groupsFor(name string) []string {
	n := strings.ToLower(name)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(n, w) {
				return true
			}
		}
		return false
	}

	switch {
	case has("coffee", "latte", "cappuccino", "americano", "espresso", "macchiato"):
		return []string{groupSize, groupTemperature, groupMilk}
	case has("tea", "juice", "smoothie", "chocolate"):
		out := []string{groupSize}
		if has("tea", "chocolate") {
			out = append(out, groupTemperature)
		}
		return append(out, groupSweetness)
	}
	return nil
}

// Station maps legacy station spellings onto the current set.
func Station(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "barista") {
		return string(catalog.StationBar)
	}
	return s
}
