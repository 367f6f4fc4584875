package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/jobly/internal/client"
	"github.com/alfredjeanlab/jobly/internal/ui"
)

var (
	httpURL    string
	token      string
	jsonOutput bool

	joblyClient client.JoblyClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("JOBLY_HTTP_URL"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if s := os.Getenv("JOBLY_TOKEN"); s != "" {
		return s
	}
	return activeRemoteToken()
}

// noClient overrides the root PersistentPreRunE for commands that never talk
// to the HTTP API.
func noClient(*cobra.Command, []string) error { return nil }

var rootCmd = &cobra.Command{
	Use:          "jobly <command>",
	Short:        "Company and job board service",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		joblyClient = client.NewHTTPClient(httpURL, token)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if joblyClient != nil {
			joblyClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "HTTP server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", defaultToken(), "admin bearer token for write commands")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "data", Title: "Data:"},
		&cobra.Group{ID: "views", Title: "Views:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	ui.Setup()
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Data
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(jobsCmd)

	// Views
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(exportCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
