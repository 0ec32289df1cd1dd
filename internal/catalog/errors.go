package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies a catalog error.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindInvalidName         Kind = "invalid_name"
	KindDuplicateName       Kind = "duplicate_name"
	KindInvalidSortRank     Kind = "invalid_sort_rank"
	KindHasDependents       Kind = "has_dependents"
	KindUnknownCategory     Kind = "unknown_category"
	KindDuplicateSKU        Kind = "duplicate_sku"
	KindInvalidSKU          Kind = "invalid_sku"
	KindInvalidPrice        Kind = "invalid_price"
	KindInvalidStation      Kind = "invalid_station"
	KindUnknownVariantGroup Kind = "unknown_variant_group"
	KindInvalidMode         Kind = "invalid_mode"
)

// Error is a structured catalog error. errors.Is matches on Kind, so
// callers compare against the Err* sentinels and use errors.As to read
// the offending identifiers.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	Value  any
	IDs    []uint
}

// Sentinels for errors.Is.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidName         = &Error{Kind: KindInvalidName}
	ErrDuplicateName       = &Error{Kind: KindDuplicateName}
	ErrInvalidSortRank     = &Error{Kind: KindInvalidSortRank}
	ErrHasDependents       = &Error{Kind: KindHasDependents}
	ErrUnknownCategory     = &Error{Kind: KindUnknownCategory}
	ErrDuplicateSKU        = &Error{Kind: KindDuplicateSKU}
	ErrInvalidSKU          = &Error{Kind: KindInvalidSKU}
	ErrInvalidPrice        = &Error{Kind: KindInvalidPrice}
	ErrInvalidStation      = &Error{Kind: KindInvalidStation}
	ErrUnknownVariantGroup = &Error{Kind: KindUnknownVariantGroup}
	ErrInvalidMode         = &Error{Kind: KindInvalidMode}
)

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Entity != "" {
		sb.WriteString(e.Entity)
		sb.WriteString(": ")
	}
	switch e.Kind {
	case KindNotFound:
		sb.WriteString("not found")
	case KindInvalidName:
		sb.WriteString("name is required (max 255 characters)")
	case KindDuplicateName:
		fmt.Fprintf(&sb, "name %q is already taken", e.Value)
	case KindInvalidSortRank:
		fmt.Fprintf(&sb, "invalid sort rank %v", e.Value)
	case KindHasDependents:
		fmt.Fprintf(&sb, "still referenced by %v menu(s)", e.Value)
	case KindUnknownCategory:
		fmt.Fprintf(&sb, "unknown category %v", e.Value)
	case KindDuplicateSKU:
		fmt.Fprintf(&sb, "sku %q is already used", e.Value)
	case KindInvalidSKU:
		sb.WriteString("sku is required (max 100 characters)")
	case KindInvalidPrice:
		fmt.Fprintf(&sb, "invalid price %v", e.Value)
	case KindInvalidStation:
		fmt.Fprintf(&sb, "invalid station %q (want kitchen, bar or both)", e.Value)
	case KindUnknownVariantGroup:
		fmt.Fprintf(&sb, "unknown variant group(s) %v", e.IDs)
	case KindInvalidMode:
		fmt.Fprintf(&sb, "invalid mode %q (want single or multiple)", e.Value)
	default:
		sb.WriteString(string(e.Kind))
	}
	if e.Kind == KindNotFound && e.Value != nil {
		fmt.Fprintf(&sb, " (id %v)", e.Value)
	}
	return sb.String()
}

// Is reports whether target is a catalog error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func notFound(entity string, id uint) error {
	return &Error{Kind: KindNotFound, Entity: entity, Value: id}
}

// uniqueViolation reports a write rejected by a unique index as dup. The
// service checks first, so this only fires when a concurrent writer wins.
func uniqueViolation(err error, dup *Error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dup
	}
	return err
}
