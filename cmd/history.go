package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/aquacheck/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryPredictions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No predictions found.")
			return nil
		}

		fmt.Fprintf(w, "%-5s  %-19s  %-12s  %-11s  %8s  %-6s  %s\n",
			"ID", "Timestamp", "Classifier", "Label", "Conf %", "Ms", "Out of range")
		fmt.Fprintln(w, strings.Repeat("─", 100))

		for _, e := range events {
			if failedOnly && e.Success {
				continue
			}
			label, conf := e.Label, fmt.Sprintf("%.2f", e.Confidence)
			flagged := strings.Join(e.OutOfRange, ", ")
			if !e.Success {
				label, conf = "✗ failed", "-"
				flagged = e.ErrorMessage
			}
			fmt.Fprintf(w, "%-5d  %-19s  %-12s  %-11s  %8s  %-6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Classifier, 12),
				label,
				conf,
				e.LatencyMs,
				flagged,
			)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of predictions to show")
	historyCmd.Flags().Bool("failed", false, "Only show failed requests")
}
