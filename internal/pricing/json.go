package pricing

import (
	"encoding/json"

	"github.com/kedaikopi/backoffice/internal/money"
)

type lineJSON struct {
	GroupID    uint   `json:"group_id"`
	GroupName  string `json:"group_name"`
	OptionID   uint   `json:"option_id"`
	OptionName string `json:"option_name"`
	Delta      string `json:"delta"`
}

type resultJSON struct {
	Valid      bool        `json:"valid"`
	Errors     []Violation `json:"errors"`
	BasePrice  string      `json:"base_price"`
	Lines      []lineJSON  `json:"lines,omitempty"`
	RawTotal   *string     `json:"raw_total,omitempty"`
	FinalPrice *string     `json:"final_price,omitempty"`
	Clamped    bool        `json:"clamped,omitempty"`
}

func (r Result) wire() resultJSON {
	out := resultJSON{
		Valid:     r.Valid,
		Errors:    r.Violations,
		BasePrice: money.Wire(r.BasePrice),
		Clamped:   r.Clamped,
	}
	if out.Errors == nil {
		out.Errors = []Violation{}
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, lineJSON{
			GroupID:    l.GroupID,
			GroupName:  l.GroupName,
			OptionID:   l.OptionID,
			OptionName: l.OptionName,
			Delta:      money.Wire(l.Delta),
		})
	}
	if r.Valid {
		raw := money.Wire(r.RawTotal)
		final := money.Wire(r.FinalPrice)
		out.RawTotal = &raw
		out.FinalPrice = &final
	}
	return out
}

// MarshalJSON writes money as two-decimal strings; final_price is
// present only on a valid result.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

type quoteJSON struct {
	ID     string `json:"id"`
	MenuID uint   `json:"menu_id"`
	Menu   string `json:"menu"`
	SKU    string `json:"sku"`
	resultJSON
}

// MarshalJSON flattens the result next to the quote identifiers.
func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(quoteJSON{
		ID:         q.ID.String(),
		MenuID:     q.MenuID,
		Menu:       q.MenuName,
		SKU:        q.SKU,
		resultJSON: q.Result.wire(),
	})
}
