package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/room-calendar/internal/application"
)

var (
	editRoom        string
	editName        string
	editAt          string
	editNewRoom     string
	editNewName     string
	editNewStart    string
	editNewDuration time.Duration
)

func init() {
	editCmd.Flags().StringVar(&editRoom, "room", "", "room holding the event")
	editCmd.Flags().StringVar(&editName, "name", "", "event name")
	editCmd.Flags().StringVar(&editAt, "at", "", "any instant the event covers")
	editCmd.Flags().StringVar(&editNewRoom, "new-room", "", "move the event to this room")
	editCmd.Flags().StringVar(&editNewName, "new-name", "", "rename the event")
	editCmd.Flags().StringVar(&editNewStart, "new-start", "", "move the event to this start time")
	editCmd.Flags().DurationVar(&editNewDuration, "new-duration", 0, "resize the event")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change an event's room, name, start, or duration",
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	at, err := parseTime(editAt)
	if err != nil {
		return err
	}

	params := application.EditEventParams{
		Room: editRoom,
		At:   at,
		Name: editName,
	}
	if cmd.Flags().Changed("new-room") {
		params.NewRoom = &editNewRoom
	}
	if cmd.Flags().Changed("new-name") {
		params.NewName = &editNewName
	}
	if cmd.Flags().Changed("new-start") {
		newStart, err := parseTime(editNewStart)
		if err != nil {
			return err
		}
		params.NewStart = &newStart
	}
	if cmd.Flags().Changed("new-duration") {
		params.NewDuration = &editNewDuration
	}

	service, closer, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	event, err := service.EditEvent(ctx, params)
	if err != nil {
		return err
	}
	if err := service.SaveSnapshot(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatEvent(event))
	return nil
}
