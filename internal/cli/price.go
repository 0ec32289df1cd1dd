package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kedaikopi/backoffice/internal/money"
	"github.com/kedaikopi/backoffice/internal/pricing"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/spf13/cobra"
)

var priceOpts struct {
	selections []string
	json       bool
}

var errInvalidSelection = errors.New("selection is invalid")

var priceCmd = &cobra.Command{
	Use:   "price <menu-id>",
	Short: "Price a menu with a variant selection",
	Long: `Validates a selection against the menu's variant groups and prints the
price breakdown. Each --select names a group and its chosen options:

  backoffice price 4 --select 1=3 --select 3=11

An invalid selection is printed in full and exits with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		menuID, err := parseID(args[0], "menu")
		if err != nil {
			return err
		}
		sel, err := parseSelection(priceOpts.selections)
		if err != nil {
			return err
		}

		q, err := a.pricing.Quote(cmd.Context(), pricing.Request{MenuID: menuID, Selection: sel})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if priceOpts.json {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(q); err != nil {
				return err
			}
		} else {
			printQuote(out, q)
		}
		if !q.Result.Valid {
			return fmt.Errorf("%w: %d violation(s)", errInvalidSelection, len(q.Result.Violations))
		}
		return nil
	}),
}

func printQuote(w io.Writer, q *pricing.Quote) {
	utils.PrintHeader(w, fmt.Sprintf("%s (%s)", q.MenuName, q.SKU))
	fmt.Fprintf(w, "Quote: %s\n", q.ID)
	fmt.Fprintf(w, "Base price: %s\n", money.Format(q.Result.BasePrice))

	if !q.Result.Valid {
		for _, v := range q.Result.Violations {
			utils.PrintError(w, "%s", v.Error())
		}
		return
	}
	for _, l := range q.Result.Lines {
		fmt.Fprintf(w, "  %s: %s  %s\n", l.GroupName, l.OptionName, money.FormatDelta(l.Delta))
	}
	fmt.Fprintf(w, "Total: %s", money.Format(q.Result.FinalPrice))
	if q.Result.Clamped {
		fmt.Fprintf(w, " (clamped from %s)", money.Format(q.Result.RawTotal))
	}
	fmt.Fprintln(w)
}

func init() {
	priceCmd.Flags().StringArrayVar(&priceOpts.selections, "select", nil, "group=option[,option], repeatable")
	priceCmd.Flags().BoolVar(&priceOpts.json, "json", false, "print the quote as JSON")
	rootCmd.AddCommand(priceCmd)
}
