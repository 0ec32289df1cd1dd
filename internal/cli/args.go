package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/pricing"
	"github.com/shopspring/decimal"
)

func parseID(s, what string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return uint(n), nil
}

func parseIDs(args []string, what string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID(part, what)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// parseSelection reads "group=option[,option]" pairs. A group given twice
// accumulates its options; "group=" selects nothing in that group.
func parseSelection(pairs []string) (pricing.Selection, error) {
	sel := pricing.Selection{}
	for _, p := range pairs {
		g, opts, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid selection %q (want group=option[,option])", p)
		}
		gid, err := parseID(g, "variant group")
		if err != nil {
			return nil, err
		}
		ids, err := parseIDs([]string{opts}, "variant option")
		if err != nil {
			return nil, err
		}
		if _, ok := sel[gid]; !ok {
			sel[gid] = []uint{}
		}
		sel[gid] = append(sel[gid], ids...)
	}
	return sel, nil
}

func parseMoney(s, field string) (decimal.Decimal, error) {
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return d, nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func pageFooter[T any](p catalog.Paged[T]) string {
	return fmt.Sprintf("page %d of %d (%d total)", p.Page, p.LastPage, p.Total)
}
