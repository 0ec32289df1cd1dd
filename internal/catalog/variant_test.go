package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGroup(t *testing.T, s *Service, name, mode string, required bool, sort int) *VariantGroup {
	t.Helper()
	g, err := s.CreateVariantGroup(context.Background(), VariantGroupInput{
		Name: name, Type: mode, IsRequired: required, SortOrder: sort, IsActive: true,
	})
	require.NoError(t, err)
	return g
}

func mustOption(t *testing.T, s *Service, groupID uint, name, delta string, sort int) *VariantOption {
	t.Helper()
	o, err := s.CreateVariantOption(context.Background(), VariantOptionInput{
		VariantGroupID: groupID, Name: name, ExtraPrice: money.MustParse(delta), SortOrder: sort, IsActive: true,
	})
	require.NoError(t, err)
	return o
}

func TestCreateVariantGroup(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	g, err := s.CreateVariantGroup(ctx, VariantGroupInput{Name: "Size", Type: "Single", IsRequired: true})
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, g.Type)
	assert.False(t, g.IsActive)

	_, err = s.CreateVariantGroup(ctx, VariantGroupInput{Name: "Size", Type: "any"})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = s.CreateVariantGroup(ctx, VariantGroupInput{Name: "Size", Type: "multiple", SortOrder: -1})
	assert.ErrorIs(t, err, ErrInvalidSortRank)

	// Sort rank zero is allowed for groups.
	_, err = s.CreateVariantGroup(ctx, VariantGroupInput{Name: "Toppings", Type: "multiple", SortOrder: 0})
	assert.NoError(t, err)
}

func TestUpdateAndDeleteVariantGroup(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	g := mustGroup(t, s, "Size", "single", true, 1)

	up, err := s.UpdateVariantGroup(ctx, g.ID, VariantGroupInput{Name: "Cup Size", Type: "multiple", SortOrder: 3})
	require.NoError(t, err)
	got, err := s.GetVariantGroup(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cup Size", got.Name)
	assert.Equal(t, ModeMultiple, got.Type)
	assert.False(t, got.IsRequired)
	assert.False(t, got.IsActive)
	assert.Equal(t, 3, got.SortOrder)

	require.NoError(t, s.DeleteVariantGroup(ctx, g.ID))
	_, err = s.GetVariantGroup(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteVariantGroup(ctx, g.ID), ErrNotFound)
}

func TestListVariantGroupsOrdered(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	milk := mustGroup(t, s, "Milk Type", "single", false, 3)
	size := mustGroup(t, s, "Size", "single", true, 1)
	temp := mustGroup(t, s, "Temperature", "single", true, 1)
	sweet := mustGroup(t, s, "Sweetness Level", "single", false, 4)
	_, err := s.UpdateVariantGroup(ctx, sweet.ID, VariantGroupInput{Name: sweet.Name, Type: "single", SortOrder: 4})
	require.NoError(t, err)

	page, err := s.ListVariantGroups(ctx, GroupFilter{})
	require.NoError(t, err)
	ids := make([]uint, 0, len(page.Items))
	for _, g := range page.Items {
		ids = append(ids, g.ID)
	}
	// Ties on sort order keep creation order.
	assert.Equal(t, []uint{size.ID, temp.ID, milk.ID, sweet.ID}, ids)

	page, err = s.ListVariantGroups(ctx, GroupFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	page, err = s.ListVariantGroups(ctx, GroupFilter{Search: "milk"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, milk.ID, page.Items[0].ID)
}

func TestVariantOptions(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	size := mustGroup(t, s, "Size", "single", true, 1)
	milk := mustGroup(t, s, "Milk Type", "single", false, 2)

	large := mustOption(t, s, size.ID, "Large", "8000", 3)
	small := mustOption(t, s, size.ID, "Small", "-5000", 1)
	regular := mustOption(t, s, size.ID, "Regular", "0", 2)
	mustOption(t, s, milk.ID, "Oat", "8000", 1)

	assert.Equal(t, "+Rp 8.000", large.FormattedExtraPrice())
	assert.Equal(t, "-Rp 5.000", small.FormattedExtraPrice())
	assert.Equal(t, "No extra cost", regular.FormattedExtraPrice())

	_, err := s.CreateVariantOption(ctx, VariantOptionInput{VariantGroupID: 99, Name: "Huge", ExtraPrice: money.Zero})
	require.ErrorIs(t, err, ErrUnknownVariantGroup)
	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []uint{99}, ce.IDs)

	opts, err := s.ListOptionsForGroup(ctx, size.ID, false)
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, []string{"Small", "Regular", "Large"}, []string{opts[0].Name, opts[1].Name, opts[2].Name})

	_, err = s.UpdateVariantOption(ctx, regular.ID, VariantOptionInput{VariantGroupID: size.ID, Name: "Regular", ExtraPrice: money.Zero, SortOrder: 2})
	require.NoError(t, err)
	opts, err = s.ListOptionsForGroup(ctx, size.ID, true)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	// Soft-deleted options are never listed.
	require.NoError(t, s.DeleteVariantOption(ctx, small.ID))
	opts, err = s.ListOptionsForGroup(ctx, size.ID, false)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	page, err := s.ListVariantOptions(ctx, OptionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.NotNil(t, page.Items[0].VariantGroup)

	// Options can move between live groups only.
	moved, err := s.UpdateVariantOption(ctx, large.ID, VariantOptionInput{VariantGroupID: milk.ID, Name: "Soy", ExtraPrice: money.MustParse("7000"), IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, milk.ID, moved.VariantGroupID)

	require.NoError(t, s.DeleteVariantGroup(ctx, size.ID))
	_, err = s.UpdateVariantOption(ctx, large.ID, VariantOptionInput{VariantGroupID: size.ID, Name: "Large", ExtraPrice: money.Zero})
	assert.ErrorIs(t, err, ErrUnknownVariantGroup)
	_, err = s.ListOptionsForGroup(ctx, size.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)

	// Options of a deleted group leave every listing with it.
	for _, activeOnly := range []bool{false, true} {
		page, err = s.ListVariantOptions(ctx, OptionFilter{ActiveOnly: activeOnly})
		require.NoError(t, err)
		for _, o := range page.Items {
			assert.Equal(t, milk.ID, o.VariantGroupID, o.Name)
			require.NotNil(t, o.VariantGroup, o.Name)
		}
	}
	page, err = s.ListVariantOptions(ctx, OptionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	page, err = s.ListVariantOptions(ctx, OptionFilter{VariantGroupID: size.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestAttachSyncDetach(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()
	c := mustCategory(t, s, "Coffee", 1)
	m := mustMenu(t, s, c.ID, "Latte", "COF-LAT", "30000")
	size := mustGroup(t, s, "Size", "single", true, 1)
	temp := mustGroup(t, s, "Temperature", "single", true, 2)
	milk := mustGroup(t, s, "Milk Type", "single", false, 3)

	attached := func() []uint {
		t.Helper()
		groups, err := s.ListMenuVariantGroups(ctx, m.ID, false)
		require.NoError(t, err)
		ids := []uint{}
		for _, g := range groups {
			ids = append(ids, g.ID)
		}
		return ids
	}

	require.NoError(t, s.AttachVariantGroups(ctx, m.ID, []uint{milk.ID, size.ID}))
	require.NoError(t, s.AttachVariantGroups(ctx, m.ID, []uint{size.ID, size.ID}))
	assert.Equal(t, []uint{size.ID, milk.ID}, attached())

	// Unknown ids attach nothing.
	err := s.AttachVariantGroups(ctx, m.ID, []uint{temp.ID, 500, 400})
	require.ErrorIs(t, err, ErrUnknownVariantGroup)
	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []uint{400, 500}, ce.IDs)
	assert.Equal(t, []uint{size.ID, milk.ID}, attached())

	require.NoError(t, s.SyncVariantGroups(ctx, m.ID, []uint{temp.ID, size.ID}))
	require.NoError(t, s.SyncVariantGroups(ctx, m.ID, []uint{temp.ID, size.ID}))
	assert.Equal(t, []uint{size.ID, temp.ID}, attached())

	assert.ErrorIs(t, s.SyncVariantGroups(ctx, m.ID, []uint{milk.ID, 400}), ErrUnknownVariantGroup)
	assert.Equal(t, []uint{size.ID, temp.ID}, attached())

	// Zero never names a group.
	err = s.AttachVariantGroups(ctx, m.ID, []uint{0})
	require.ErrorIs(t, err, ErrUnknownVariantGroup)
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []uint{0}, ce.IDs)
	assert.ErrorIs(t, s.SyncVariantGroups(ctx, m.ID, []uint{size.ID, 0}), ErrUnknownVariantGroup)
	assert.Equal(t, []uint{size.ID, temp.ID}, attached())

	require.NoError(t, s.DetachVariantGroups(ctx, m.ID, []uint{temp.ID, milk.ID}))
	require.NoError(t, s.DetachVariantGroups(ctx, m.ID, []uint{temp.ID}))
	assert.Equal(t, []uint{size.ID}, attached())

	// Soft-deleted groups cannot be attached and drop out of reads.
	require.NoError(t, s.DeleteVariantGroup(ctx, milk.ID))
	assert.ErrorIs(t, s.AttachVariantGroups(ctx, m.ID, []uint{milk.ID}), ErrUnknownVariantGroup)
	require.NoError(t, s.AttachVariantGroups(ctx, m.ID, []uint{temp.ID}))
	require.NoError(t, s.DeleteVariantGroup(ctx, temp.ID))
	assert.Equal(t, []uint{size.ID}, attached())

	require.NoError(t, s.SyncVariantGroups(ctx, m.ID, nil))
	assert.Empty(t, attached())

	assert.ErrorIs(t, s.AttachVariantGroups(ctx, 404, []uint{size.ID}), ErrNotFound)
}
