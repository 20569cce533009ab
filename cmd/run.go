package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/aquacheck/internal/app"
	"github.com/abhisek/aquacheck/internal/classifier"
	"github.com/abhisek/aquacheck/internal/predict"
	"github.com/abhisek/aquacheck/internal/quality"
	"github.com/abhisek/aquacheck/internal/store"
	"github.com/spf13/cobra"
)

// runtime holds the dependencies shared by the TUI and the one-shot
// commands.
type runtime struct {
	store   *store.Store
	service *predict.Service
}

func (r *runtime) Close() {
	if r.store != nil {
		r.store.Close()
	}
}

// bootstrap opens the store and loads the classifier. A store that cannot
// be opened only disables history; a classifier that cannot be loaded is
// fatal.
func bootstrap(cmd *cobra.Command) (*runtime, error) {
	rt := &runtime{}
	var eventRepo store.EventRepo

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		rt.store, err = store.Open(dbPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: event store unavailable:", err)
	} else {
		eventRepo = rt.store.EventRepo()
	}

	clf, err := classifier.Load(cmd.Context(), resolveClassifierConfig(cmd), eventRepo)
	if err != nil {
		rt.Close()
		return nil, err
	}

	cfg := &predict.Config{
		Ranges:     quality.WHORanges(),
		Classifier: clf,
	}
	var recorder predict.EventRecorder
	if eventRepo != nil {
		recorder = eventRepo
	}
	rt.service = predict.NewService(cfg, recorder)
	return rt, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := app.Options{Service: rt.service}
	if rt.store != nil {
		opts.EventRepo = rt.store.EventRepo()
	}
	return app.Run(opts)
}
