package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldstack/snaglist/internal/backup"
)

var (
	backupOut  string
	backupIn   string
	restoreYes bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole store as a JSON snapshot",
	Long: `Export writes every project and entry to a portable JSON document.
Voice recordings are NOT included in snapshots.`,
	RunE: runExport,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "DESTRUCTIVE: replace the entire store with a snapshot",
	Long: `Restore replaces everything in the store with the snapshot's
contents. All current projects and entries are dropped, and every voice
recording is deleted; snapshots carry no audio, so recordings do not
come back.

The snapshot is validated first. An invalid snapshot restores nothing.`,
	RunE: runRestore,
}

func init() {
	exportCmd.Flags().StringVar(&backupOut, "out", "", "output file (default: stdout)")

	restoreCmd.Flags().StringVar(&backupIn, "in", "", "snapshot file (required)")
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "skip the confirmation prompt")
	_ = restoreCmd.MarkFlagRequired("in")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.backup.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	out := os.Stdout
	if backupOut != "" {
		f, err := os.Create(backupOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := snap.Encode(out); err != nil {
		return err
	}

	if backupOut != "" {
		fmt.Fprintf(os.Stderr, "Exported %d projects and %d entries to %s (recordings are not included)\n",
			len(snap.Projects), len(snap.Entries), backupOut)
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(backupIn)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := backup.Decode(f)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if !restoreYes {
		fmt.Printf("This replaces the ENTIRE store with %d projects and %d entries.\n",
			len(snap.Projects), len(snap.Entries))
		fmt.Println("All current data is dropped, including every voice recording.")
		fmt.Print("Continue? [y/N] ")

		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := a.backup.Restore(cmd.Context(), snap); err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	fmt.Printf("Restored %d projects and %d entries\n", len(snap.Projects), len(snap.Entries))
	return nil
}
