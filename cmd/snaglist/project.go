package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectName string

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long: `Create registers a new project with a unique name.

Example:
  snaglist project create --name "Riverside Apartments"`,
	RunE: runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with entry counts",
	RunE:  runProjectList,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and all its entries and recordings",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "project name (required)")
	_ = projectCreateCmd.MarkFlagRequired("name")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	proj, err := a.projects.Create(cmd.Context(), projectName)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(proj)
	}
	fmt.Printf("Created project %q (%s)\n", proj.Name, proj.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	summaries, err := a.projects.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(summaries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENTRIES\tOPEN\tID")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", s.Name, s.EntryCount, s.OpenEntries, s.ID)
	}
	return w.Flush()
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	removed, err := a.projects.Delete(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	fmt.Printf("Deleted project and %d entries\n", removed)
	return nil
}
