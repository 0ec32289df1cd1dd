package pricing

import (
	"fmt"
	"strings"
)

// Kind classifies a selection violation.
type Kind string

const (
	MissingRequiredSelection Kind = "missing_required_selection"
	TooManySelections        Kind = "too_many_selections"
	InvalidOption            Kind = "invalid_option"
	UnapplicableGroup        Kind = "unapplicable_group"
	NegativeTotal            Kind = "negative_total"
)

// Violation is one problem with a selection. It is comparable, so
// errors.Is matches an exact violation inside a ValidationError.
type Violation struct {
	Kind     Kind `json:"kind"`
	GroupID  uint `json:"group_id,omitempty"`
	OptionID uint `json:"option_id,omitempty"`
}

func (v Violation) Error() string {
	switch v.Kind {
	case MissingRequiredSelection:
		return fmt.Sprintf("variant group %d requires a selection", v.GroupID)
	case TooManySelections:
		return fmt.Sprintf("variant group %d allows only one option", v.GroupID)
	case InvalidOption:
		return fmt.Sprintf("option %d is not an active option of variant group %d", v.OptionID, v.GroupID)
	case UnapplicableGroup:
		return fmt.Sprintf("variant group %d does not apply to this menu", v.GroupID)
	case NegativeTotal:
		return "selected options bring the total below zero"
	}
	return string(v.Kind)
}

// ValidationError aggregates every violation of one pricing request.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "invalid selection: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual violations to errors.Is / errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}

// Has reports whether any violation is of kind k.
func (e *ValidationError) Has(k Kind) bool {
	for _, v := range e.Violations {
		if v.Kind == k {
			return true
		}
	}
	return false
}
