package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/okian/dss/internal/domain/types"
)

// WriteTable prints the ranking, the applied weights and the insights.
// The leader row and section titles are coloured when w is a terminal.
func WriteTable(w io.Writer, payload *types.Payload) error {
	title := color.New(color.FgHiMagenta, color.Bold)
	leader := color.New(color.FgHiGreen, color.Bold)

	_, _ = title.Fprintln(w, "Ranking")
	table := tablewriter.NewWriter(w)
	if err := table.Append([]string{"#", "Country", "Year", "Usage %", "Fixed /100", "Mbps/user", "Access", "Infra", "Capacity", "Score"}); err != nil {
		return err
	}
	for _, c := range payload.Comparison {
		name := c.Country.Country
		if c.Rank == 1 {
			name = leader.Sprint(name)
		}
		if err := table.Append([]string{
			strconv.Itoa(c.Rank),
			name,
			c.Country.Year,
			dash(cell(c.Country.AccessInternetPct)),
			dash(cell(c.Country.FixedBroadbandSubsPer100)),
			dash(cell(c.Country.BroadbandSpeedMbps)),
			num(c.Norm.Access),
			num(c.Norm.Infra),
			num(c.Norm.Capacity),
			num(c.Score),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	wt := payload.Weights
	_, _ = title.Fprintln(w, "Weights")
	if _, err := fmt.Fprintf(w, "access %s  infra %s  capacity %s\n", num(wt.Access), num(wt.Infra), num(wt.Capacity)); err != nil {
		return err
	}

	if len(payload.Insights) > 0 {
		_, _ = title.Fprintln(w, "Insights")
		for _, line := range payload.Insights {
			if _, err := fmt.Fprintf(w, "- %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
