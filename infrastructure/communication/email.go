package communication

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Email struct {
	From        string
	To          []string
	Cc          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

type rawEmailSender interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// Mailer sends raw MIME messages through SES.
type Mailer struct {
	client rawEmailSender
}

func NewMailer(ctx context.Context) (*Mailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Mailer{client: ses.NewFromConfig(cfg)}, nil
}

// Send returns the SES message id.
func (m *Mailer) Send(ctx context.Context, email *Email) (string, error) {
	raw, err := BuildEmailBuffer(email)
	if err != nil {
		return "", err
	}

	res, err := m.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: raw.Bytes()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email via SES: %w", err)
	}
	return aws.ToString(res.MessageId), nil
}

func writeQuotedPrintable(w *multipart.Writer, contentType, body string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType + "; charset=UTF-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}

func BuildEmailBuffer(info *Email) (*bytes.Buffer, error) {
	if info.From == "" || len(info.To) == 0 {
		return nil, fmt.Errorf("email needs a sender and at least one recipient")
	}

	var emailRaw bytes.Buffer
	writer := multipart.NewWriter(&emailRaw)

	headers := fmt.Sprintf("From: %s\r\n", info.From)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(info.To, ", "))
	if len(info.Cc) > 0 {
		headers += fmt.Sprintf("Cc: %s\r\n", strings.Join(info.Cc, ", "))
	}
	headers += fmt.Sprintf("Subject: %s\r\n", info.Subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", writer.Boundary())
	headers += "\r\n"
	emailRaw.WriteString(headers)

	// text/plain + text/html alternatives
	altBuf := &bytes.Buffer{}
	altWriter := multipart.NewWriter(altBuf)
	altPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"multipart/alternative; boundary=" + altWriter.Boundary()},
	})
	if err != nil {
		return nil, err
	}
	if info.Text != "" {
		if err := writeQuotedPrintable(altWriter, "text/plain", info.Text); err != nil {
			return nil, err
		}
	}
	if info.HTML != "" {
		if err := writeQuotedPrintable(altWriter, "text/html", info.HTML); err != nil {
			return nil, err
		}
	}
	if err := altWriter.Close(); err != nil {
		return nil, err
	}
	if _, err := altPart.Write(altBuf.Bytes()); err != nil {
		return nil, err
	}

	for _, att := range info.Attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", fmt.Sprintf("%s; name=\"%s\"", att.ContentType, att.Filename))
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", att.Filename))
		h.Set("Content-Transfer-Encoding", "base64")

		part, err := writer.CreatePart(h)
		if err != nil {
			return nil, err
		}
		b := make([]byte, base64.StdEncoding.EncodedLen(len(att.Content)))
		base64.StdEncoding.Encode(b, att.Content)

		// wrap lines at 76 chars
		for i := 0; i < len(b); i += 76 {
			end := min(i+76, len(b))
			part.Write(b[i:end])
			part.Write([]byte("\r\n"))
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return &emailRaw, nil
}
