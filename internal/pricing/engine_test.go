package pricing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sizeGroup uint = 1
	milkGroup uint = 2

	small   uint = 10
	regular uint = 11
	large   uint = 12
	regMilk uint = 20
	oat     uint = 21
)

func latte() Snapshot {
	return Snapshot{
		Menu: Menu{ID: 1, Name: "Latte", SKU: "COF-LAT", BasePrice: money.MustParse("30000"), Active: true},
		Groups: []Group{
			{
				ID: milkGroup, Name: "Milk", Mode: ModeSingle, SortOrder: 2,
				Options: []Option{
					{ID: regMilk, GroupID: milkGroup, Name: "Regular", Delta: money.Zero, Active: true},
					{ID: oat, GroupID: milkGroup, Name: "Oat", Delta: money.MustParse("8000"), Active: true, SortOrder: 1},
				},
			},
			{
				ID: sizeGroup, Name: "Size", Mode: ModeSingle, Required: true, SortOrder: 1,
				Options: []Option{
					{ID: small, GroupID: sizeGroup, Name: "Small", Delta: money.MustParse("-5000"), Active: true},
					{ID: regular, GroupID: sizeGroup, Name: "Regular", Delta: money.Zero, Active: true, SortOrder: 1},
					{ID: large, GroupID: sizeGroup, Name: "Large", Delta: money.MustParse("8000"), Active: true, SortOrder: 2},
				},
			},
		},
	}
}

func TestPriceLargeOat(t *testing.T) {
	r := NewEngine(PolicyClamp).Price(latte(), Selection{sizeGroup: {large}, milkGroup: {oat}})

	require.True(t, r.Valid)
	assert.Empty(t, r.Violations)
	assert.Equal(t, "46000.00", money.Wire(r.FinalPrice))
	assert.False(t, r.Clamped)
	require.Len(t, r.Lines, 2)
	// Lines follow group sort order.
	assert.Equal(t, "Size", r.Lines[0].GroupName)
	assert.Equal(t, "Milk", r.Lines[1].GroupName)
	assert.NoError(t, r.Err())
}

func TestPriceMissingRequired(t *testing.T) {
	r := NewEngine(PolicyClamp).Price(latte(), Selection{})

	require.False(t, r.Valid)
	assert.Equal(t, []Violation{{Kind: MissingRequiredSelection, GroupID: sizeGroup}}, r.Violations)
	assert.True(t, r.FinalPrice.IsZero())

	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, Violation{Kind: MissingRequiredSelection, GroupID: sizeGroup}))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has(MissingRequiredSelection))
}

func TestPriceTooManyInSingleGroup(t *testing.T) {
	r := NewEngine(PolicyClamp).Price(latte(), Selection{sizeGroup: {small, large}})

	require.False(t, r.Valid)
	assert.Equal(t, []Violation{{Kind: TooManySelections, GroupID: sizeGroup}}, r.Violations)
}

func TestPriceClampsNegativeTotal(t *testing.T) {
	snap := Snapshot{
		Menu: Menu{ID: 2, Name: "Espresso", SKU: "COF-ESP", BasePrice: money.MustParse("18000"), Active: true},
		Groups: []Group{{
			ID: sizeGroup, Name: "Size", Mode: ModeSingle, Required: true,
			Options: []Option{{ID: small, GroupID: sizeGroup, Name: "Small", Delta: money.MustParse("-20000"), Active: true}},
		}},
	}
	sel := Selection{sizeGroup: {small}}

	r := NewEngine(PolicyClamp).Price(snap, sel)
	require.True(t, r.Valid)
	assert.Equal(t, "-2000.00", money.Wire(r.RawTotal))
	assert.Equal(t, "0.00", money.Wire(r.FinalPrice))
	assert.True(t, r.Clamped)

	r = NewEngine(PolicyAllow).Price(snap, sel)
	require.True(t, r.Valid)
	assert.Equal(t, "-2000.00", money.Wire(r.FinalPrice))
	assert.False(t, r.Clamped)

	r = NewEngine(PolicyReject).Price(snap, sel)
	require.False(t, r.Valid)
	assert.Equal(t, []Violation{{Kind: NegativeTotal}}, r.Violations)
}

func TestValidateAggregatesInOrder(t *testing.T) {
	sel := Selection{
		milkGroup: {regMilk, oat, 99},
		7:         {70},
		5:         {50},
		8:         {},
	}
	got := NewEngine("").Validate(latte(), sel)

	want := []Violation{
		{Kind: MissingRequiredSelection, GroupID: sizeGroup},
		{Kind: TooManySelections, GroupID: milkGroup},
		{Kind: InvalidOption, GroupID: milkGroup, OptionID: 99},
		{Kind: UnapplicableGroup, GroupID: 5},
		{Kind: UnapplicableGroup, GroupID: 7},
	}
	assert.Equal(t, want, got)
}

func TestInactiveOptionIsInvalid(t *testing.T) {
	snap := latte()
	for i := range snap.Groups {
		for j := range snap.Groups[i].Options {
			if snap.Groups[i].Options[j].ID == large {
				snap.Groups[i].Options[j].Active = false
			}
		}
	}

	r := NewEngine(PolicyClamp).Price(snap, Selection{sizeGroup: {large}})
	require.False(t, r.Valid)
	assert.Equal(t, []Violation{{Kind: InvalidOption, GroupID: sizeGroup, OptionID: large}}, r.Violations)
}

func TestOptionFromAnotherGroupIsInvalid(t *testing.T) {
	r := NewEngine(PolicyClamp).Price(latte(), Selection{sizeGroup: {oat}})
	require.False(t, r.Valid)
	assert.Equal(t, []Violation{{Kind: InvalidOption, GroupID: sizeGroup, OptionID: oat}}, r.Violations)
}

func TestRequiredGroupWithoutOptions(t *testing.T) {
	snap := Snapshot{
		Menu:   Menu{ID: 3, BasePrice: money.MustParse("10000"), Active: true},
		Groups: []Group{{ID: 4, Name: "Temperature", Mode: ModeSingle, Required: true}},
	}
	got := NewEngine(PolicyClamp).Validate(snap, Selection{})
	assert.Equal(t, []Violation{{Kind: MissingRequiredSelection, GroupID: 4}}, got)
}

func TestMultipleModeIsUnbounded(t *testing.T) {
	const toppings uint = 3
	snap := Snapshot{
		Menu: Menu{ID: 4, BasePrice: money.MustParse("25000"), Active: true},
		Groups: []Group{{
			ID: toppings, Name: "Toppings", Mode: ModeMultiple,
			Options: []Option{
				{ID: 31, GroupID: toppings, Delta: money.MustParse("3000"), Active: true},
				{ID: 32, GroupID: toppings, Delta: money.MustParse("4500.50"), Active: true},
				{ID: 33, GroupID: toppings, Delta: money.MustParse("0.25"), Active: true},
			},
		}},
	}

	r := NewEngine(PolicyClamp).Price(snap, Selection{toppings: {31, 32, 33, 32}})
	require.True(t, r.Valid)
	// Repeated ids count once.
	assert.Len(t, r.Lines, 3)
	assert.Equal(t, "32500.75", money.Wire(r.FinalPrice))
}

func TestPriceIsBasePlusDeltas(t *testing.T) {
	snap := latte()
	engine := NewEngine(PolicyAllow)
	deltas := map[uint]string{small: "-5000", regular: "0", large: "8000", regMilk: "0", oat: "8000"}

	for _, size := range []uint{small, regular, large} {
		for _, milk := range [][]uint{nil, {regMilk}, {oat}} {
			r := engine.Price(snap, Selection{sizeGroup: {size}, milkGroup: milk})
			require.True(t, r.Valid)

			want := snap.Menu.BasePrice.Add(money.MustParse(deltas[size]))
			for _, m := range milk {
				want = want.Add(money.MustParse(deltas[m]))
			}
			assert.True(t, want.Equal(r.FinalPrice), "size %d milk %v: got %s want %s", size, milk, r.FinalPrice, want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyClamp, p)

	p, err = ParsePolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, PolicyReject, p)

	_, err = ParsePolicy("floor")
	assert.Error(t, err)
}

func TestResultJSON(t *testing.T) {
	r := NewEngine(PolicyClamp).Price(latte(), Selection{sizeGroup: {large}, milkGroup: {oat}})
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, true, got["valid"])
	assert.Equal(t, "30000.00", got["base_price"])
	assert.Equal(t, "46000.00", got["final_price"])
	assert.Equal(t, []any{}, got["errors"])

	r = NewEngine(PolicyClamp).Price(latte(), Selection{})
	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"valid":false,"errors":[{"kind":"missing_required_selection","group_id":1}],"base_price":"30000.00"}`,
		string(data))
}
