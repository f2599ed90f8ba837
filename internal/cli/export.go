package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/room-calendar/internal/config"
	"github.com/example/room-calendar/internal/datastore"
)

var (
	exportFormat string
	exportPath   string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "ics", "target format: jsonl, csv, sqlite, or ics")
	exportCmd.Flags().StringVar(&exportPath, "path", "", "target file (or SQLite DSN)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calendar snapshot to another format",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if exportPath == "" {
		return fmt.Errorf("--path is required")
	}

	service, closer, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	target, targetCloser, err := openStore(config.SnapshotConfig{Path: exportPath, Format: exportFormat})
	if err != nil {
		return err
	}
	defer targetCloser()

	events := service.Calendar().Events()
	records := make([]datastore.EventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, datastore.EventRecord{
			ID:    event.ID,
			Room:  event.Room,
			Name:  event.Name,
			Start: event.Start,
			End:   event.End,
		})
	}
	if err := target.Save(ctx, records); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d events to %s\n", len(records), exportPath)
	return nil
}
