// Package mail turns an accepted contact submission into an email and hands
// it to the configured transport.
package mail

import (
	"fmt"
	"strings"
)

// Submission is the validated, spam-cleared form content.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Sender identifies who the outbound mail is from and where it goes.
type Sender struct {
	From     string
	FromName string
	To       string
}

// Envelope is one outbound message. It is built per request and discarded
// after the transport returns.
type Envelope struct {
	From     string
	FromName string
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// SubjectPrefix marks contact-form mail in the recipient's inbox
const SubjectPrefix = "[Portfolio] "

// BuildEnvelope renders both bodies from the same fields. Every user value
// in the HTML body is escaped.
func BuildEnvelope(sender Sender, s Submission) Envelope {
	var html strings.Builder
	html.WriteString("<h2>New Contact Form Submission</h2>\n")
	fmt.Fprintf(&html, "<p><strong>From:</strong> %s (%s)</p>\n", EscapeHTML(s.Name), EscapeHTML(s.Email))
	fmt.Fprintf(&html, "<p><strong>Subject:</strong> %s</p>\n", EscapeHTML(s.Subject))
	html.WriteString("<hr />\n")
	html.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&html, "<p>%s</p>\n", escapeMultiline(s.Message))

	text := fmt.Sprintf("New Contact Form Submission\n\nFrom: %s (%s)\nSubject: %s\n\nMessage:\n%s",
		s.Name, s.Email, s.Subject, s.Message)

	return Envelope{
		From:     sender.From,
		FromName: sender.FromName,
		To:       sender.To,
		ReplyTo:  s.Email,
		Subject:  SubjectPrefix + s.Subject,
		HTMLBody: html.String(),
		TextBody: strings.TrimSpace(text),
	}
}
