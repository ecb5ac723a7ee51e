package mail

import (
	"fmt"
	"io"
	"time"

	gomail "github.com/emersion/go-message/mail"
)

// WriteMIME writes env as a multipart/alternative message with a plain
// text part and an HTML part.
func WriteMIME(w io.Writer, env Envelope, date time.Time) error {
	var h gomail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*gomail.Address{{Name: env.FromName, Address: env.From}})
	h.SetAddressList("To", []*gomail.Address{{Address: env.To}})
	if env.ReplyTo != "" {
		h.SetAddressList("Reply-To", []*gomail.Address{{Address: env.ReplyTo}})
	}
	h.SetSubject(env.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}

	iw, err := gomail.CreateInlineWriter(w, h)
	if err != nil {
		return fmt.Errorf("failed to create mime writer: %w", err)
	}

	if err := writePart(iw, "text/plain", env.TextBody); err != nil {
		return err
	}
	if err := writePart(iw, "text/html", env.HTMLBody); err != nil {
		return err
	}

	return iw.Close()
}

func writePart(iw *gomail.InlineWriter, contentType, body string) error {
	var th gomail.InlineHeader
	th.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	th.Set("Content-Transfer-Encoding", "quoted-printable")

	pw, err := iw.CreatePart(th)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(pw, body); err != nil {
		pw.Close()
		return fmt.Errorf("failed to write %s part: %w", contentType, err)
	}
	return pw.Close()
}
