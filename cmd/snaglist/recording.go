package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var recordingCmd = &cobra.Command{
	Use:   "recording",
	Short: "Manage voice recordings",
}

var (
	recordingProject string
	recordingFile    string
)

var recordingAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store an audio file as a project voice note",
	RunE:  runRecordingAdd,
}

var recordingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's recordings",
	RunE:  runRecordingList,
}

var recordingDeleteCmd = &cobra.Command{
	Use:   "delete <recording-id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordingDelete,
}

func init() {
	recordingAddCmd.Flags().StringVar(&recordingProject, "project", "", "project name (required)")
	recordingAddCmd.Flags().StringVar(&recordingFile, "file", "", "audio file to store (required)")
	_ = recordingAddCmd.MarkFlagRequired("project")
	_ = recordingAddCmd.MarkFlagRequired("file")

	recordingListCmd.Flags().StringVar(&recordingProject, "project", "", "project name (required)")
	_ = recordingListCmd.MarkFlagRequired("project")

	recordingCmd.AddCommand(recordingAddCmd)
	recordingCmd.AddCommand(recordingListCmd)
	recordingCmd.AddCommand(recordingDeleteCmd)
}

func runRecordingAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	audio, err := os.ReadFile(recordingFile)
	if err != nil {
		return fmt.Errorf("read audio file: %w", err)
	}

	rec, err := a.recordings.Create(cmd.Context(), recordingProject, filepath.Base(recordingFile), audio)
	if err != nil {
		return fmt.Errorf("add recording: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(rec)
	}
	fmt.Printf("Stored recording %q (%s)\n", rec.FileName, rec.ID)
	return nil
}

func runRecordingList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	recordings, err := a.recordings.ListByProject(cmd.Context(), recordingProject)
	if err != nil {
		return fmt.Errorf("list recordings: %w", err)
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(recordings)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tPROCESSED\tCREATED\tID")
	for _, rec := range recordings {
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\n",
			rec.FileName, rec.Processed, rec.CreatedAt.Format("2006-01-02 15:04"), rec.ID)
	}
	return w.Flush()
}

func runRecordingDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.recordings.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete recording: %w", err)
	}

	fmt.Println("Recording deleted")
	return nil
}
