package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/jobly/internal/config"
	"github.com/alfredjeanlab/jobly/internal/store/postgres"
	joblysync "github.com/alfredjeanlab/jobly/internal/sync"
	"github.com/alfredjeanlab/jobly/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:               "export",
	Short:             "Write a JSONL snapshot of the database",
	Long:              "Write a JSONL snapshot of every company and job, read directly from JOBLY_DATABASE_URL.",
	GroupID:           "views",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		path, _ := cmd.Flags().GetString("output")
		if path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}
		sum, err := joblysync.ExportJSONL(cmd.Context(), store, out)
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d companies and %d jobs to %s\n", sum.Companies, sum.Jobs, ui.RenderAccent(path))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
}
