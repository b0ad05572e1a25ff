package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/okian/dss/internal/adapters/countries"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME...",
	Short: "Resolve country names to ISO-3 codes",
	Long:  `Resolve accepts English or Spanish names, with or without accents, and ISO-3 codes.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	miss := color.New(color.FgRed)
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	if err := table.Append([]string{"Name", "ISO-3", "Country"}); err != nil {
		return err
	}

	unresolved := 0
	for _, name := range args {
		row := []string{name, miss.Sprint("?"), miss.Sprint("unresolved")}
		if code, ok := countries.Resolve(name); ok {
			row = []string{name, code, countries.NameFor(code)}
		} else {
			unresolved++
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if unresolved > 0 {
		return fmt.Errorf("%d of %d names did not resolve", unresolved, len(args))
	}
	return nil
}
