package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/room-calendar/internal/application"
)

var (
	copyRoom       string
	copyName       string
	copyAt         string
	copyToRoom     string
	copyToStart    string
	copyToDuration time.Duration
)

func init() {
	copyCmd.Flags().StringVar(&copyRoom, "room", "", "room holding the source event")
	copyCmd.Flags().StringVar(&copyName, "name", "", "source event name")
	copyCmd.Flags().StringVar(&copyAt, "at", "", "any instant the source event covers")
	copyCmd.Flags().StringVar(&copyToRoom, "to-room", "", "place the copy in this room")
	copyCmd.Flags().StringVar(&copyToStart, "to-start", "", "place the copy at this start time")
	copyCmd.Flags().DurationVar(&copyToDuration, "to-duration", 0, "duration of the copy")
	rootCmd.AddCommand(copyCmd)
}

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Duplicate an event into a new range",
	RunE:  runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	at, err := parseTime(copyAt)
	if err != nil {
		return err
	}

	params := application.CopyEventParams{
		Room: copyRoom,
		At:   at,
		Name: copyName,
	}
	if cmd.Flags().Changed("to-room") {
		params.TargetRoom = &copyToRoom
	}
	if cmd.Flags().Changed("to-start") {
		toStart, err := parseTime(copyToStart)
		if err != nil {
			return err
		}
		params.TargetStart = &toStart
	}
	if cmd.Flags().Changed("to-duration") {
		params.TargetDuration = &copyToDuration
	}

	service, closer, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	event, err := service.CopyEvent(ctx, params)
	if err != nil {
		return err
	}
	if err := service.SaveSnapshot(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatEvent(event))
	return nil
}
