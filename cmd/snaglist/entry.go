package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fieldstack/snaglist/internal/domain/entry"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage snag entries",
}

var (
	entryProject     string
	entryName        string
	entryDescription string
	entryPhoto       string
	entryPriority    string
	entryAssignee    string
	entryLocation    string
	entryStatus      string
)

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new snag in a project",
	Long: `Add logs a new snag. The entry gets the project's next snag number.

Example:
  snaglist entry add --project "Riverside Apartments" --name "Cracked tile" --priority High`,
	RunE: runEntryAdd,
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's entries in snag-number order",
	RunE:  runEntryList,
}

var entryGetCmd = &cobra.Command{
	Use:   "get <entry-id | project/number>",
	Short: "Show one entry",
	Long: `Get shows a single entry, addressed either by its id or by
project name and snag number separated by a slash.

Example:
  snaglist entry get "Riverside Apartments/3"`,
	Args: cobra.ExactArgs(1),
	RunE: runEntryGet,
}

var entryUpdateCmd = &cobra.Command{
	Use:   "update <entry-id>",
	Short: "Update an entry's fields",
	Long: `Update changes the given fields and leaves the rest alone. Setting
--status Completed stamps the completion date; --status InProgress clears it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEntryUpdate,
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry (its snag number is never reused)",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntryDelete,
}

func init() {
	entryAddCmd.Flags().StringVar(&entryProject, "project", "", "project name (required)")
	entryAddCmd.Flags().StringVar(&entryName, "name", "", "defect title (required)")
	entryAddCmd.Flags().StringVar(&entryDescription, "description", "", "defect description")
	entryAddCmd.Flags().StringVar(&entryPhoto, "photo", "", "photo path")
	entryAddCmd.Flags().StringVar(&entryPriority, "priority", "", "Low, Medium, or High (default Medium)")
	entryAddCmd.Flags().StringVar(&entryAssignee, "assigned-to", "", "person responsible")
	entryAddCmd.Flags().StringVar(&entryLocation, "location", "", "location on site")
	_ = entryAddCmd.MarkFlagRequired("project")
	_ = entryAddCmd.MarkFlagRequired("name")

	entryListCmd.Flags().StringVar(&entryProject, "project", "", "project name (required)")
	_ = entryListCmd.MarkFlagRequired("project")

	entryUpdateCmd.Flags().StringVar(&entryName, "name", "", "new title")
	entryUpdateCmd.Flags().StringVar(&entryDescription, "description", "", "new description")
	entryUpdateCmd.Flags().StringVar(&entryPhoto, "photo", "", "new photo path")
	entryUpdateCmd.Flags().StringVar(&entryPriority, "priority", "", "new priority")
	entryUpdateCmd.Flags().StringVar(&entryAssignee, "assigned-to", "", "new assignee")
	entryUpdateCmd.Flags().StringVar(&entryLocation, "location", "", "new location")
	entryUpdateCmd.Flags().StringVar(&entryStatus, "status", "", "InProgress or Completed")

	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryGetCmd)
	entryCmd.AddCommand(entryUpdateCmd)
	entryCmd.AddCommand(entryDeleteCmd)
}

func runEntryAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	e, err := a.entries.Create(cmd.Context(), entry.CreateRequest{
		ProjectName: entryProject,
		Name:        entryName,
		Description: entryDescription,
		PhotoPath:   entryPhoto,
		Priority:    entry.Priority(entryPriority),
		AssignedTo:  entryAssignee,
		Location:    entryLocation,
	})
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(e)
	}
	fmt.Printf("Logged snag #%d in %q (%s)\n", e.SnagNumber, e.ProjectName, e.ID)
	return nil
}

func runEntryList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	entries, err := a.entries.ListByProject(cmd.Context(), entryProject)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPRIORITY\tSTATUS\tASSIGNED\tID")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.SnagNumber, e.Name, e.Priority, e.Status, e.AssignedTo, e.ID)
	}
	return w.Flush()
}

func runEntryGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	e, err := resolveEntry(cmd, a, args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(e)
	}

	fmt.Printf("Snag #%d in %q\n", e.SnagNumber, e.ProjectName)
	fmt.Printf("  Name:        %s\n", e.Name)
	if e.Description != "" {
		fmt.Printf("  Description: %s\n", e.Description)
	}
	fmt.Printf("  Priority:    %s\n", e.Priority)
	fmt.Printf("  Status:      %s\n", e.Status)
	if e.AssignedTo != "" {
		fmt.Printf("  Assigned:    %s\n", e.AssignedTo)
	}
	if e.Location != "" {
		fmt.Printf("  Location:    %s\n", e.Location)
	}
	fmt.Printf("  Observed:    %s\n", e.ObservationDate.Format("2006-01-02"))
	if e.CompletionDate != nil {
		fmt.Printf("  Completed:   %s\n", e.CompletionDate.Format("2006-01-02"))
	}
	fmt.Printf("  Annotations: %d\n", len(e.Annotations))
	fmt.Printf("  ID:          %s\n", e.ID)
	return nil
}

// resolveEntry accepts either an entry id or "project name/number".
func resolveEntry(cmd *cobra.Command, a *app, ref string) (*entry.Entry, error) {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] != '/' {
			continue
		}
		number, err := strconv.ParseInt(ref[i+1:], 10, 64)
		if err != nil {
			break
		}
		return a.entries.GetBySnagNumber(cmd.Context(), ref[:i], number)
	}
	return a.entries.Get(cmd.Context(), ref)
}

func runEntryUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	var req entry.UpdateRequest
	if cmd.Flags().Changed("name") {
		req.Name = &entryName
	}
	if cmd.Flags().Changed("description") {
		req.Description = &entryDescription
	}
	if cmd.Flags().Changed("photo") {
		req.PhotoPath = &entryPhoto
	}
	if cmd.Flags().Changed("priority") {
		p := entry.Priority(entryPriority)
		req.Priority = &p
	}
	if cmd.Flags().Changed("assigned-to") {
		req.AssignedTo = &entryAssignee
	}
	if cmd.Flags().Changed("location") {
		req.Location = &entryLocation
	}
	if cmd.Flags().Changed("status") {
		s := entry.Status(entryStatus)
		req.Status = &s
	}

	e, err := a.entries.Update(cmd.Context(), args[0], req)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(e)
	}
	fmt.Printf("Updated snag #%d in %q\n", e.SnagNumber, e.ProjectName)
	return nil
}

func runEntryDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.entries.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	fmt.Println("Entry deleted")
	return nil
}
