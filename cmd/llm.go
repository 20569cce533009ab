package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/aquacheck/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM classifier request events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		events, err := queryLLMEvents(cmd, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No LLM events found.")
			return nil
		}

		// Header.
		fmt.Fprintf(w, "%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(w, strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			fmt.Fprintf(w, "%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := queryLLMEvents(cmd, store.QueryOpts{})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No LLM usage recorded yet.")
			return nil
		}

		type usage struct {
			calls, failed, in, out int
			latency               int64
		}
		byModel := make(map[string]*usage)
		for _, e := range events {
			u, ok := byModel[e.Model]
			if !ok {
				u = &usage{}
				byModel[e.Model] = u
			}
			u.calls++
			if !e.Success {
				u.failed++
			}
			u.in += e.InputTokens
			u.out += e.OutputTokens
			u.latency += e.LatencyMs
		}
		models := make([]string, 0, len(byModel))
		for m := range byModel {
			models = append(models, m)
		}
		sort.Strings(models)

		fmt.Fprintf(w, "%-32s  %6s  %6s  %10s  %10s  %8s\n",
			"Model", "Calls", "Failed", "Input", "Output", "Avg Ms")
		fmt.Fprintln(w, strings.Repeat("─", 80))
		for _, m := range models {
			u := byModel[m]
			fmt.Fprintf(w, "%-32s  %6d  %6d  %10d  %10d  %8d\n",
				truncate(m, 32), u.calls, u.failed, u.in, u.out, u.latency/int64(u.calls))
		}
		return nil
	},
}

func queryLLMEvents(cmd *cobra.Command, opts store.QueryOpts) ([]store.LLMEventRecord, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return events, nil
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. classify)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
