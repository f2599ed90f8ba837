package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listDate string

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "day to list (defaults to today)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events on a day, grouped by room",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	date := time.Now()
	if listDate != "" {
		parsed, err := parseTime(listDate)
		if err != nil {
			return err
		}
		date = parsed
	}

	service, closer, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	byRoom, err := service.EventsOnDate(ctx, date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	for _, room := range service.Calendar().Rooms() {
		events := byRoom[room]
		if len(events) == 0 {
			continue
		}
		for _, event := range events {
			fmt.Fprintln(out, formatEvent(event))
			total++
		}
	}
	if total == 0 {
		fmt.Fprintf(out, "no events on %s\n", date.Format("2006-01-02"))
	}
	return nil
}
