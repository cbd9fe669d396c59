package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/infrastructure/communication"
	"timekeeper.app/timekeeper/utils"
)

const timestampLayout = "Mon 2 Jan 2006 15:04"

type EmailSender interface {
	Send(ctx context.Context, email *communication.Email) (string, error)
}

type ChannelPoster interface {
	Info(ctx context.Context, message string) error
}

func describe(userEmail string, record model.AttendanceRecord, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s was checked out by an administrator.\n", userEmail)
	fmt.Fprintf(&b, "Checked in: %s\n", record.CheckInTime.In(loc).Format(timestampLayout))
	if record.CheckOutTime != nil {
		fmt.Fprintf(&b, "Checked out: %s\n", record.CheckOutTime.In(loc).Format(timestampLayout))
	}
	if hours := record.TotalHours(); hours != nil {
		fmt.Fprintf(&b, "Hours: %.2f\n", *hours)
	}
	if notes := utils.Deref(record.Notes, ""); notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	return b.String()
}

// EmailNotifier tells the affected user by email.
type EmailNotifier struct {
	sender EmailSender
	from   string
	loc    *time.Location
}

func NewEmailNotifier(sender EmailSender, from string, loc *time.Location) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, loc: loc}
}

func (n *EmailNotifier) NotifyForcedCheckOut(ctx context.Context, userEmail string, record model.AttendanceRecord) error {
	id, err := n.sender.Send(ctx, &communication.Email{
		From:    n.from,
		To:      []string{userEmail},
		Subject: "You have been checked out",
		Text:    describe(userEmail, record, n.loc),
	})
	if err != nil {
		return fmt.Errorf("failed to email %s: %w", userEmail, err)
	}
	fmt.Printf("[INFO] forced check-out email %s sent to %s\n", id, userEmail)
	return nil
}

// SlackNotifier posts to the info channel.
type SlackNotifier struct {
	poster ChannelPoster
	loc    *time.Location
}

func NewSlackNotifier(poster ChannelPoster, loc *time.Location) *SlackNotifier {
	return &SlackNotifier{poster: poster, loc: loc}
}

func (n *SlackNotifier) NotifyForcedCheckOut(ctx context.Context, userEmail string, record model.AttendanceRecord) error {
	if err := n.poster.Info(ctx, describe(userEmail, record, n.loc)); err != nil {
		return fmt.Errorf("failed to post forced check-out of %s: %w", userEmail, err)
	}
	return nil
}

type LogNotifier struct{}

func (LogNotifier) NotifyForcedCheckOut(_ context.Context, userEmail string, record model.AttendanceRecord) error {
	fmt.Printf("[INFO] record %s of %s force checked-out\n", record.ID, userEmail)
	return nil
}

// Multi fans out to every notifier and joins their errors.
type Multi []core.ForcedCheckOutNotifier

func (m Multi) NotifyForcedCheckOut(ctx context.Context, userEmail string, record model.AttendanceRecord) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyForcedCheckOut(ctx, userEmail, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
