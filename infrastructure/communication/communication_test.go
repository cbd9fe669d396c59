package communication

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmailBuffer(t *testing.T) {
	buf, err := BuildEmailBuffer(&Email{
		From:        "noreply@example.com",
		To:          []string{"jane@example.com"},
		Subject:     "You were checked out",
		Text:        "An administrator closed your session.",
		HTML:        "<p>An administrator closed your session.</p>",
		Attachments: []Attachment{{Filename: "report.xlsx", ContentType: "application/octet-stream", Content: []byte("xlsx")}},
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(buf)
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", msg.Header.Get("From"))
	assert.Equal(t, "jane@example.com", msg.Header.Get("To"))
	assert.Equal(t, "You were checked out", msg.Header.Get("Subject"))
	assert.True(t, strings.HasPrefix(msg.Header.Get("Content-Type"), "multipart/mixed"))

	body, err := io.ReadAll(msg.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "text/plain; charset=UTF-8")
	assert.Contains(t, string(body), "text/html; charset=UTF-8")
	assert.Contains(t, string(body), `filename="report.xlsx"`)
}

func TestBuildEmailBufferNeedsRecipients(t *testing.T) {
	_, err := BuildEmailBuffer(&Email{From: "noreply@example.com"})
	assert.Error(t, err)
}

type fakeSES struct {
	raw []byte
	err error
}

func (f *fakeSES) SendRawEmail(_ context.Context, params *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.raw = params.RawMessage.Data
	return &ses.SendRawEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestMailerSend(t *testing.T) {
	client := &fakeSES{}
	m := &Mailer{client: client}

	id, err := m.Send(context.Background(), &Email{From: "a@example.com", To: []string{"b@example.com"}, Subject: "hi", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Contains(t, string(client.raw), "Subject: hi")

	m.client = &fakeSES{err: errors.New("throttled")}
	_, err = m.Send(context.Background(), &Email{From: "a@example.com", To: []string{"b@example.com"}})
	assert.ErrorContains(t, err, "throttled")
}

func TestSlackPostsToChannels(t *testing.T) {
	var got []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = append(got, r.PostForm)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1.0"}`))
	}))
	defer srv.Close()

	s := NewSlack("xoxb-test", SlackOption{InfoChannelID: "CINFO", ErrorChannelID: "CERR", APIURL: srv.URL + "/"})
	require.NoError(t, s.Info(context.Background(), "report ready"))
	require.NoError(t, s.Error(context.Background(), "import failed"))

	require.Len(t, got, 2)
	assert.Equal(t, "CINFO", got[0].Get("channel"))
	assert.Equal(t, "report ready", got[0].Get("text"))
	assert.Equal(t, "CERR", got[1].Get("channel"))
}
