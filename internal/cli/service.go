package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/example/room-calendar/internal/application"
	"github.com/example/room-calendar/internal/calendar"
	"github.com/example/room-calendar/internal/config"
	"github.com/example/room-calendar/internal/datastore"
	sqlitestore "github.com/example/room-calendar/internal/datastore/sqlite"
	"github.com/example/room-calendar/internal/logging"
)

// openService builds the booking service from configuration and loads the
// persisted snapshot. The returned closer must be called when done.
func openService(ctx context.Context) (*application.BookingService, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	}))

	origin, err := cfg.OriginTime()
	if err != nil {
		return nil, nil, err
	}

	cal, err := calendar.New(cfg.Rooms, origin, cfg.HorizonDays, time.Duration(cfg.Step), nil)
	if err != nil {
		return nil, nil, err
	}

	store, closer, err := openStore(cfg.Snapshot)
	if err != nil {
		return nil, nil, err
	}

	service := application.NewBookingServiceWithLogger(cal, store, logger)
	if err := service.LoadSnapshot(ctx); err != nil {
		closer()
		return nil, nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return service, closer, nil
}

func openStore(cfg config.SnapshotConfig) (datastore.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Format {
	case "jsonl":
		return datastore.NewJSONStore(cfg.Path), noop, nil
	case "csv":
		return datastore.NewCSVStore(cfg.Path), noop, nil
	case "ics":
		return datastore.NewICSStore(cfg.Path), noop, nil
	case "sqlite":
		store, err := sqlitestore.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported snapshot format %q", cfg.Format)
	}
}

// parseTime accepts RFC 3339, "2006-01-02 15:04", or a bare date.
func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", value)
}

func formatEvent(event calendar.Event) string {
	return fmt.Sprintf("%-20s  %-20s  %s .. %s",
		event.Room,
		event.Name,
		event.Start.Format("2006-01-02 15:04"),
		event.End.Format("2006-01-02 15:04"),
	)
}
