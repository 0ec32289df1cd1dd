// Package pricing validates a variant selection against a menu's
// applicable variant groups and computes the final line price.
//
// The engine is pure: it prices a Snapshot that the caller loaded once
// and holds no state between calls.
package pricing

import (
	"fmt"
	"sort"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/shopspring/decimal"
)

// Mode is a variant group's selection mode.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeMultiple Mode = "multiple"
)

// Policy decides what happens when deltas push a total below zero.
type Policy string

const (
	// PolicyClamp floors the final price at zero and flags the result.
	PolicyClamp Policy = "clamp"
	// PolicyAllow returns negative totals unchanged.
	PolicyAllow Policy = "allow"
	// PolicyReject reports a NegativeTotal violation.
	PolicyReject Policy = "reject"
)

// ParsePolicy maps a config value to a Policy; "" means clamp.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyClamp:
		return PolicyClamp, nil
	case PolicyAllow, PolicyReject:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown negative total policy %q (want clamp, allow or reject)", s)
}

// Menu is the priced item.
type Menu struct {
	ID        uint
	Name      string
	SKU       string
	BasePrice decimal.Decimal
	Active    bool
}

// Option is one selectable value of a group.
type Option struct {
	ID        uint
	GroupID   uint
	Name      string
	Delta     decimal.Decimal
	SortOrder int
	Active    bool
}

// Group is a variant group applicable to the menu.
type Group struct {
	ID        uint
	Name      string
	Mode      Mode
	Required  bool
	SortOrder int
	Options   []Option
}

// Snapshot is everything needed to price one menu, read once.
type Snapshot struct {
	Menu   Menu
	Groups []Group
}

// Selection maps a group id to the option ids chosen in it.
type Selection map[uint][]uint

// Line is one selected option contributing to the price.
type Line struct {
	GroupID    uint
	GroupName  string
	OptionID   uint
	OptionName string
	Delta      decimal.Decimal
}

// Result is the outcome of pricing one selection.
type Result struct {
	Valid      bool
	Violations []Violation
	BasePrice  decimal.Decimal
	Lines      []Line
	RawTotal   decimal.Decimal
	FinalPrice decimal.Decimal
	Clamped    bool
}

// Err returns nil for a valid result, otherwise a *ValidationError
// carrying every violation.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Violations: r.Violations}
}

// Engine prices selections under a negative-total policy.
type Engine struct {
	policy Policy
}

// NewEngine creates an engine; an empty policy means clamp.
func NewEngine(policy Policy) *Engine {
	if policy == "" {
		policy = PolicyClamp
	}
	return &Engine{policy: policy}
}

// Policy returns the engine's negative-total policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Validate checks sel against the snapshot's groups and returns every
// violation, in group sort order and then by group id for groups the
// menu does not offer.
func (e *Engine) Validate(snap Snapshot, sel Selection) []Violation {
	violations, _ := e.check(snap, sel)
	return violations
}

// Price validates sel and, when it is valid, computes
// base price + sum of the selected deltas.
func (e *Engine) Price(snap Snapshot, sel Selection) Result {
	result := Result{BasePrice: snap.Menu.BasePrice}

	violations, lines := e.check(snap, sel)
	if len(violations) > 0 {
		result.Violations = violations
		return result
	}

	total := snap.Menu.BasePrice
	for _, l := range lines {
		total = total.Add(l.Delta)
	}
	total = total.Round(money.Scale)

	result.Lines = lines
	result.RawTotal = total
	result.FinalPrice = total

	if total.IsNegative() {
		switch e.policy {
		case PolicyReject:
			result.Violations = []Violation{{Kind: NegativeTotal}}
			result.FinalPrice = decimal.Zero
			return result
		case PolicyClamp:
			result.FinalPrice = decimal.Zero
			result.Clamped = true
		}
	}

	result.Valid = true
	return result
}

func (e *Engine) check(snap Snapshot, sel Selection) ([]Violation, []Line) {
	groups := sortedGroups(snap.Groups)

	var violations []Violation
	var lines []Line
	applicable := make(map[uint]bool, len(groups))

	for _, g := range groups {
		applicable[g.ID] = true

		active := make(map[uint]Option, len(g.Options))
		for _, o := range g.Options {
			if o.Active && o.GroupID == g.ID {
				active[o.ID] = o
			}
		}

		chosen := dedupe(sel[g.ID])
		if g.Required && len(chosen) == 0 {
			violations = append(violations, Violation{Kind: MissingRequiredSelection, GroupID: g.ID})
		}
		if g.Mode == ModeSingle && len(chosen) > 1 {
			violations = append(violations, Violation{Kind: TooManySelections, GroupID: g.ID})
		}
		for _, id := range chosen {
			o, ok := active[id]
			if !ok {
				violations = append(violations, Violation{Kind: InvalidOption, GroupID: g.ID, OptionID: id})
				continue
			}
			lines = append(lines, Line{
				GroupID:    g.ID,
				GroupName:  g.Name,
				OptionID:   o.ID,
				OptionName: o.Name,
				Delta:      o.Delta,
			})
		}
	}

	var foreign []uint
	for groupID, ids := range sel {
		if !applicable[groupID] && len(ids) > 0 {
			foreign = append(foreign, groupID)
		}
	}
	sort.Slice(foreign, func(i, j int) bool { return foreign[i] < foreign[j] })
	for _, groupID := range foreign {
		violations = append(violations, Violation{Kind: UnapplicableGroup, GroupID: groupID})
	}

	return violations, lines
}

func sortedGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// dedupe keeps the first occurrence of each id.
func dedupe(ids []uint) []uint {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
