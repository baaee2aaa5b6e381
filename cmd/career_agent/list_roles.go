package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listRolesCmd = &cobra.Command{
	Use:   "list-roles",
	Short: "List the roles in the catalog",
	Long:  "Prints the role catalog as a table, or as JSON with --json. Uses the built-in catalog unless --catalog is given.",
	RunE:  runListRoles,
}

var (
	listRolesCatalog string
	listRolesJSON    bool
)

func init() {
	listRolesCmd.Flags().StringVarP(&listRolesCatalog, "catalog", "c", "", "Path to role catalog JSON or YAML (defaults to the built-in catalog)")
	listRolesCmd.Flags().BoolVar(&listRolesJSON, "json", false, "Print the catalog as JSON")

	rootCmd.AddCommand(listRolesCmd)
}

func runListRoles(cmd *cobra.Command, _ []string) error {
	roles, err := loadCatalog(listRolesCatalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if listRolesJSON {
		return writeJSON(cmd.OutOrStdout(), "", roles)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROLE ID\tTITLE\tSKILLS")
	for _, role := range roles {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", role.RoleID, role.Title, len(role.Skills))
	}
	return tw.Flush()
}
