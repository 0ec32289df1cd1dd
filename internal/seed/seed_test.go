package seed

import (
	"context"
	"testing"

	"github.com/kedaikopi/backoffice/internal/access"
	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/pricing"
	"github.com/kedaikopi/backoffice/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(append(catalog.Models(), &users.User{})...))
	return db
}

func TestGroupsFor(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"Latte", []string{groupSize, groupTemperature, groupMilk}},
		{"Green Tea Latte", []string{groupSize, groupTemperature, groupMilk}},
		{"Iced Tea", []string{groupSize, groupTemperature, groupSweetness}},
		{"Fresh Orange Juice", []string{groupSize, groupSweetness}},
		{"Hot Chocolate", []string{groupSize, groupTemperature, groupSweetness}},
		{"Mocha", nil},
		{"Nachos", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupsFor(tt.name), tt.name)
	}
}

func TestStation(t *testing.T) {
	assert.Equal(t, "bar", Station("barista"))
	assert.Equal(t, "bar", Station(" Barista "))
	assert.Equal(t, "kitchen", Station("kitchen"))
}

func TestRun(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	sum, err := Run(ctx, db, nil, Options{Cost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.False(t, sum.Skipped)
	assert.Equal(t, len(categories), sum.Categories)
	assert.Equal(t, len(menus), sum.Menus)
	assert.Equal(t, 4, sum.VariantGroups)
	assert.Equal(t, 16, sum.Options)
	assert.Equal(t, 16*len(portions), sum.MenuVariants)
	assert.Equal(t, 3, sum.Users)

	svc := catalog.New(db, nil, 0)
	choc, err := svc.GetMenuBySKU(ctx, "NC-HC-003")
	require.NoError(t, err)
	assert.Equal(t, catalog.StationBar, choc.Station)

	latte, err := svc.GetMenuBySKU(ctx, "CF-LAT-004")
	require.NoError(t, err)
	attached, err := svc.ListMenuVariantGroups(ctx, latte.ID, true)
	require.NoError(t, err)
	require.Len(t, attached, 3)
	size, temp := attached[0], attached[1]
	assert.Equal(t, groupSize, size.Name)
	assert.Equal(t, groupTemperature, temp.Name)
	require.Len(t, size.Options, 4)

	q, err := pricing.NewService(svc, nil, nil).Quote(ctx, pricing.Request{
		MenuID: latte.ID,
		Selection: pricing.Selection{
			size.ID: {size.Options[0].ID},
			temp.ID: {temp.Options[0].ID},
		},
	})
	require.NoError(t, err)
	require.True(t, q.Result.Valid)
	assert.Equal(t, "25000.00", money.Wire(q.Result.FinalPrice))

	store := users.NewStore(db, nil, bcrypt.MinCost)
	admin, err := store.Authenticate(ctx, "admin@coffeshop.com", DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, access.RoleAdmin, admin.Role)
	regular, err := store.Authenticate(ctx, "user@coffeshop.com", DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, access.RoleNone, regular.Role)

	again, err := Run(ctx, db, nil, Options{Cost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	cats, err := svc.ListCategories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cats, len(categories))
}

func TestRunSkipUsers(t *testing.T) {
	db := setupDB(t)
	sum, err := Run(context.Background(), db, nil, Options{SkipUsers: true})
	require.NoError(t, err)
	assert.Zero(t, sum.Users)

	n, err := users.NewStore(db, nil, 0).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
