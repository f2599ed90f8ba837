package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/room-calendar/internal/application"
)

var (
	addRoom     string
	addName     string
	addStart    string
	addDuration time.Duration
)

func init() {
	addCmd.Flags().StringVar(&addRoom, "room", "", "room to book")
	addCmd.Flags().StringVar(&addName, "name", "", "event name")
	addCmd.Flags().StringVar(&addStart, "start", "", "start time (RFC 3339 or \"2006-01-02 15:04\")")
	addCmd.Flags().DurationVar(&addDuration, "duration", time.Hour, "event duration")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Book a new event",
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	start, err := parseTime(addStart)
	if err != nil {
		return err
	}

	service, closer, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	event, err := service.AddEvent(ctx, application.AddEventParams{
		Room:     addRoom,
		Name:     addName,
		Start:    start,
		Duration: addDuration,
	})
	if err != nil {
		return err
	}
	if err := service.SaveSnapshot(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatEvent(event))
	return nil
}
