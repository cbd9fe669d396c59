package app

import (
	"context"
	"fmt"
	"time"

	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/attendance/notify"
	"timekeeper.app/timekeeper/attendance/report"
	"timekeeper.app/timekeeper/attendance/store/gormstore"
	"timekeeper.app/timekeeper/config"
	dbcore "timekeeper.app/timekeeper/core"
	"timekeeper.app/timekeeper/infrastructure/communication"
)

// Services groups the attendance services over one store.
type Services struct {
	Store       core.RecordStore
	Attendance  *core.AttendanceService
	Statistics  *core.StatisticsService
	TimeEntries *core.TimeEntryService
	Users       *core.UserService
	Offices     *core.OfficeService
	Calendar    *core.CalendarService
	Location    *time.Location
}

func NewServices(store core.RecordStore, notifier core.ForcedCheckOutNotifier, loc *time.Location) *Services {
	return &Services{
		Store:       store,
		Attendance:  core.NewAttendanceService(store, notifier, loc),
		Statistics:  core.NewStatisticsService(store, loc),
		TimeEntries: core.NewTimeEntryService(store, loc),
		Users:       core.NewUserService(store),
		Offices:     core.NewOfficeService(store),
		Calendar:    core.NewCalendarService(store, loc),
		Location:    loc,
	}
}

func (s *Services) Report() report.Services {
	return report.Services{
		Users:       s.Users,
		Offices:     s.Offices,
		TimeEntries: s.TimeEntries,
		Statistics:  s.Statistics,
		Attendance:  s.Attendance,
	}
}

// App is an opened database plus the services running on it.
type App struct {
	*Services
	DM *dbcore.DatabaseManager
}

// Open connects to the configured database and, when migrate is set, creates the schema.
func Open(ctx context.Context, cfg config.Config, notifier core.ForcedCheckOutNotifier, migrate bool) (*App, error) {
	dsn, err := cfg.ResolveDSN(ctx)
	if err != nil {
		return nil, err
	}

	dm, err := dbcore.New(dsn, cfg.DBMaxConnections, dbcore.ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	if migrate {
		if err := dm.Migrate(ctx, model.All()...); err != nil {
			dm.Close()
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return &App{Services: NewServices(gormstore.New(dm.DB), notifier, cfg.Location), DM: dm}, nil
}

// Close waits for pending notifications, then closes the database.
func (a *App) Close() error {
	a.Attendance.Wait()
	return a.DM.Close()
}

// Notifier builds the forced check-out notifier from whatever channels are configured.
func Notifier(ctx context.Context, cfg config.Config) core.ForcedCheckOutNotifier {
	notifiers := notify.Multi{notify.LogNotifier{}}

	if cfg.SlackBotToken != "" && cfg.SlackInfoChannel != "" {
		slack := communication.NewSlack(cfg.SlackBotToken, communication.SlackOption{
			InfoChannelID:  cfg.SlackInfoChannel,
			ErrorChannelID: cfg.SlackErrorChannel,
		})
		notifiers = append(notifiers, notify.NewSlackNotifier(slack, cfg.Location))
	}

	if cfg.NotifyFromEmail != "" {
		mailer, err := communication.NewMailer(ctx)
		if err != nil {
			fmt.Printf("[WARN] email notifications disabled: %v\n", err)
		} else {
			notifiers = append(notifiers, notify.NewEmailNotifier(mailer, cfg.NotifyFromEmail, cfg.Location))
		}
	}

	return notifiers
}
