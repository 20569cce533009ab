package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/spf13/cobra"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "Show the WHO reference ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := quality.WHORanges()
		w := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			type entry struct {
				Parameter   string  `json:"parameter"`
				Low         float64 `json:"low"`
				High        float64 `json:"high"`
				Provisional bool    `json:"provisional"`
			}
			var out []entry
			for _, e := range table.Entries() {
				out = append(out, entry{string(e.Parameter), e.Range.Low, e.Range.High, e.Range.Provisional})
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Fprintf(w, "%-18s  %10s  %10s\n", "Parameter", "Low", "High")
		fmt.Fprintln(w, strings.Repeat("─", 42))
		for _, e := range table.Entries() {
			mark := ""
			if e.Range.Provisional {
				mark = "  *"
			}
			fmt.Fprintf(w, "%-18s  %10g  %10g%s\n", e.Parameter, e.Range.Low, e.Range.High, mark)
		}
		if len(table.Provisional()) > 0 {
			fmt.Fprintln(w, "\n* provisional: not yet confirmed against the WHO guidelines")
		}
		return nil
	},
}

func init() {
	rangesCmd.Flags().Bool("json", false, "Print the table as JSON")
}
