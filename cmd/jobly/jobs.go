package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/jobly/internal/client"
	"github.com/alfredjeanlab/jobly/internal/model"
)

var jobsCmd = &cobra.Command{
	Use:     "jobs",
	Aliases: []string{"job"},
	Short:   "List, show and edit jobs",
	GroupID: "data",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter model.JobFilter
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			filter.Title = &title
		}
		if cmd.Flags().Changed("min-salary") {
			n, _ := cmd.Flags().GetInt("min-salary")
			filter.MinSalary = &n
		}
		filter.HasEquity, _ = cmd.Flags().GetBool("has-equity")

		jobs, err := joblyClient.ListJobs(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("listing jobs: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), jobs)
		}
		printJobList(cmd.OutOrStdout(), jobs)
		return nil
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := joblyClient.GetJob(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("getting job: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), j)
		}
		printJob(cmd.OutOrStdout(), j)
		return nil
	},
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create <title> --company <handle>",
	Short: "Post a job for a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.CreateJobRequest{Title: args[0]}
		req.CompanyHandle, _ = cmd.Flags().GetString("company")
		req.Equity, _ = cmd.Flags().GetString("equity")
		if cmd.Flags().Changed("salary") {
			n, _ := cmd.Flags().GetInt("salary")
			req.Salary = &n
		}

		created, err := joblyClient.CreateJob(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("creating job: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), created)
		}
		printJob(cmd.OutOrStdout(), created)
		return nil
	},
}

var jobsUpdateCmd = &cobra.Command{
	Use:   "update <title> --set key=value...",
	Short: "Change fields of a job",
	Long: `Change fields of a job. Keys are title, salary, equity and
companyHandle. Values are sent as JSON when they parse as JSON and as plain
strings otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringArray("set")
		patch, err := parseSetFlags(sets)
		if err != nil {
			return err
		}

		updated, err := joblyClient.UpdateJob(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("updating job: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), updated)
		}
		printJob(cmd.OutOrStdout(), updated)
		return nil
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <title>",
	Short: "Delete a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := joblyClient.DeleteJob(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("deleting job: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted job %s\n", args[0])
		return nil
	},
}

func init() {
	jobsListCmd.Flags().String("title", "", "case-insensitive title substring")
	jobsListCmd.Flags().Int("min-salary", 0, "only jobs paying at least this")
	jobsListCmd.Flags().Bool("has-equity", false, "only jobs offering equity")

	jobsCreateCmd.Flags().String("company", "", "handle of the posting company")
	jobsCreateCmd.Flags().Int("salary", 0, "annual salary")
	jobsCreateCmd.Flags().String("equity", "", "equity fraction between 0 and 1, e.g. 0.05")
	_ = jobsCreateCmd.MarkFlagRequired("company")

	jobsUpdateCmd.Flags().StringArray("set", nil, "field to change as key=value (repeatable)")
	_ = jobsUpdateCmd.MarkFlagRequired("set")

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsShowCmd)
	jobsCmd.AddCommand(jobsCreateCmd)
	jobsCmd.AddCommand(jobsUpdateCmd)
	jobsCmd.AddCommand(jobsDeleteCmd)
}
