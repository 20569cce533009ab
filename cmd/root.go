package cmd

import (
	"github.com/abhisek/aquacheck/internal/classifier"
	"github.com/abhisek/aquacheck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aquacheck",
	Short: "Water potability prediction",
	Long: "Aquacheck predicts whether a water sample is potable from nine measured\n" +
		"quality parameters and flags the values outside WHO-recommended ranges.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides AQUACHECK_DB env var)")
	rootCmd.PersistentFlags().String("model", "", "Path to the forest model artifact (overrides AQUACHECK_MODEL env var)")
	rootCmd.PersistentFlags().String("classifier", "", "Classifier backend: forest, llm or fixed (overrides AQUACHECK_CLASSIFIER env var)")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then AQUACHECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveClassifierConfig layers --classifier and --model over the
// AQUACHECK_* environment and the defaults.
func resolveClassifierConfig(cmd *cobra.Command) classifier.Config {
	cfg := classifier.ConfigFromEnv()
	if b, _ := cmd.Flags().GetString("classifier"); b != "" {
		cfg.Backend = b
	}
	if p, _ := cmd.Flags().GetString("model"); p != "" {
		cfg.ModelPath = p
	}
	return cfg
}
