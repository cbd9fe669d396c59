package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/infrastructure/communication"
	"timekeeper.app/timekeeper/utils"
)

var loc = time.FixedZone("AEST", 10*60*60)

type fakeSender struct {
	sent []*communication.Email
	err  error
}

func (f *fakeSender) Send(_ context.Context, email *communication.Email) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, email)
	return "msg-1", nil
}

type fakePoster struct {
	messages []string
	err      error
}

func (f *fakePoster) Info(_ context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

func forcedRecord() model.AttendanceRecord {
	checkIn := time.Date(2024, 1, 15, 9, 0, 0, 0, loc)
	checkOut := checkIn.Add(7*time.Hour + 30*time.Minute)
	return model.AttendanceRecord{
		CheckInTime:  checkIn,
		CheckOutTime: &checkOut,
		Status:       model.StatusCheckedOut,
		Notes:        utils.Ptr("[Force checked-out by admin]"),
	}
}

func TestEmailNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := NewEmailNotifier(sender, "noreply@example.com", loc)

	require.NoError(t, n.NotifyForcedCheckOut(context.Background(), "jane@example.com", forcedRecord()))
	require.Len(t, sender.sent, 1)

	email := sender.sent[0]
	assert.Equal(t, "noreply@example.com", email.From)
	assert.Equal(t, []string{"jane@example.com"}, email.To)
	assert.Contains(t, email.Text, "Checked in: Mon 15 Jan 2024 09:00")
	assert.Contains(t, email.Text, "Checked out: Mon 15 Jan 2024 16:30")
	assert.Contains(t, email.Text, "Hours: 7.50")
	assert.Contains(t, email.Text, "Notes: [Force checked-out by admin]")

	sender.err = errors.New("throttled")
	err := n.NotifyForcedCheckOut(context.Background(), "jane@example.com", forcedRecord())
	assert.ErrorContains(t, err, "throttled")
}

func TestSlackNotifier(t *testing.T) {
	poster := &fakePoster{}
	n := NewSlackNotifier(poster, loc)

	require.NoError(t, n.NotifyForcedCheckOut(context.Background(), "jane@example.com", forcedRecord()))
	require.Len(t, poster.messages, 1)
	assert.Contains(t, poster.messages[0], "jane@example.com was checked out by an administrator.")
}

func TestMulti(t *testing.T) {
	sender := &fakeSender{err: errors.New("ses down")}
	poster := &fakePoster{}
	m := Multi{NewEmailNotifier(sender, "noreply@example.com", loc), NewSlackNotifier(poster, loc), LogNotifier{}}

	err := m.NotifyForcedCheckOut(context.Background(), "jane@example.com", forcedRecord())
	assert.ErrorContains(t, err, "ses down")
	assert.Len(t, poster.messages, 1, "a failing notifier does not stop the others")

	assert.NoError(t, Multi{}.NotifyForcedCheckOut(context.Background(), "jane@example.com", forcedRecord()))
}
