package communication

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
	// APIURL overrides the Slack endpoint, used by tests.
	APIURL string
}

func NewSlack(token string, options SlackOption) *Slack {
	var opts []slack.Option
	if options.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(options.APIURL))
	}
	return &Slack{client: slack.New(token, opts...), options: options}
}

func (s *Slack) postMessage(ctx context.Context, channelID, message string) error {
	_, _, err := s.client.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Info(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.InfoChannelID, message)
}

func (s *Slack) Error(ctx context.Context, message string) error {
	return s.postMessage(ctx, s.options.ErrorChannelID, message)
}
