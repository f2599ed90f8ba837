package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/room-calendar/internal/application"
)

var (
	removeRoom string
	removeName string
	removeAt   string
)

func init() {
	removeCmd.Flags().StringVar(&removeRoom, "room", "", "room holding the event")
	removeCmd.Flags().StringVar(&removeName, "name", "", "event name")
	removeCmd.Flags().StringVar(&removeAt, "at", "", "any instant the event covers")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete an event",
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	at, err := parseTime(removeAt)
	if err != nil {
		return err
	}

	service, closer, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	removed, err := service.RemoveEvent(ctx, application.RemoveEventParams{
		Room: removeRoom,
		At:   at,
		Name: removeName,
	})
	if err != nil {
		return err
	}
	if err := service.SaveSnapshot(ctx); err != nil {
		return err
	}

	if removed {
		fmt.Fprintln(cmd.OutOrStdout(), "removed")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "no matching event")
	}
	return nil
}
