package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/jobly/internal/model"
)

var companiesCmd = &cobra.Command{
	Use:     "companies",
	Aliases: []string{"company"},
	Short:   "List, show and edit companies",
	GroupID: "data",
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter model.CompanyFilter
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			filter.Name = &name
		}
		if cmd.Flags().Changed("min-employees") {
			n, _ := cmd.Flags().GetInt("min-employees")
			filter.MinEmployees = &n
		}
		if cmd.Flags().Changed("max-employees") {
			n, _ := cmd.Flags().GetInt("max-employees")
			filter.MaxEmployees = &n
		}

		companies, err := joblyClient.ListCompanies(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("listing companies: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), companies)
		}
		printCompanyList(cmd.OutOrStdout(), companies)
		return nil
	},
}

var companiesShowCmd = &cobra.Command{
	Use:   "show <handle>",
	Short: "Show a company and its jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := joblyClient.GetCompany(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("getting company: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), c)
		}
		printCompanyDetail(cmd.OutOrStdout(), c)
		return nil
	},
}

var companiesCreateCmd = &cobra.Command{
	Use:   "create <handle> <name>",
	Short: "Create a company",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &model.Company{Handle: args[0], Name: args[1]}
		c.Description, _ = cmd.Flags().GetString("description")
		c.LogoURL, _ = cmd.Flags().GetString("logo-url")
		if cmd.Flags().Changed("employees") {
			n, _ := cmd.Flags().GetInt("employees")
			c.NumEmployees = &n
		}

		created, err := joblyClient.CreateCompany(cmd.Context(), c)
		if err != nil {
			return fmt.Errorf("creating company: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), created)
		}
		printCompany(cmd.OutOrStdout(), created)
		return nil
	},
}

var companiesUpdateCmd = &cobra.Command{
	Use:   "update <handle> --set key=value...",
	Short: "Change fields of a company",
	Long: `Change fields of a company. Keys are name, description, numEmployees
and logoUrl. Values are sent as JSON when they parse as JSON (numbers, null,
quoted strings) and as plain strings otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringArray("set")
		patch, err := parseSetFlags(sets)
		if err != nil {
			return err
		}

		updated, err := joblyClient.UpdateCompany(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("updating company: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), updated)
		}
		printCompany(cmd.OutOrStdout(), updated)
		return nil
	},
}

var companiesDeleteCmd = &cobra.Command{
	Use:   "delete <handle>",
	Short: "Delete a company and all of its jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := joblyClient.DeleteCompany(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("deleting company: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted company %s\n", args[0])
		return nil
	},
}

func init() {
	companiesListCmd.Flags().String("name", "", "case-insensitive name substring")
	companiesListCmd.Flags().Int("min-employees", 0, "only companies with more employees than this")
	companiesListCmd.Flags().Int("max-employees", 0, "only companies with fewer employees than this")

	companiesCreateCmd.Flags().String("description", "", "company description")
	companiesCreateCmd.Flags().Int("employees", 0, "number of employees")
	companiesCreateCmd.Flags().String("logo-url", "", "logo URL")

	companiesUpdateCmd.Flags().StringArray("set", nil, "field to change as key=value (repeatable)")
	_ = companiesUpdateCmd.MarkFlagRequired("set")

	companiesCmd.AddCommand(companiesListCmd)
	companiesCmd.AddCommand(companiesShowCmd)
	companiesCmd.AddCommand(companiesCreateCmd)
	companiesCmd.AddCommand(companiesUpdateCmd)
	companiesCmd.AddCommand(companiesDeleteCmd)
}
