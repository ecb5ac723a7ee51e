package mail

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var testSender = Sender{From: "noreply@ashcraft.tech", FromName: "Portfolio Contact Form", To: "hello@ashcraft.tech"}

func TestBuildEnvelope(t *testing.T) {
	env := BuildEnvelope(testSender, Submission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Hello there",
	})

	want := Envelope{
		From:     "noreply@ashcraft.tech",
		FromName: "Portfolio Contact Form",
		To:       "hello@ashcraft.tech",
		ReplyTo:  "ada@example.com",
		Subject:  "[Portfolio] Hi",
		HTMLBody: "<h2>New Contact Form Submission</h2>\n" +
			"<p><strong>From:</strong> Ada (ada@example.com)</p>\n" +
			"<p><strong>Subject:</strong> Hi</p>\n" +
			"<hr />\n" +
			"<p><strong>Message:</strong></p>\n" +
			"<p>Hello there</p>\n",
		TextBody: "New Contact Form Submission\n\nFrom: Ada (ada@example.com)\nSubject: Hi\n\nMessage:\nHello there",
	}

	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("BuildEnvelope mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEnvelopeEscapesHTML(t *testing.T) {
	env := BuildEnvelope(testSender, Submission{
		Name:    `<b>Mallory</b>`,
		Email:   "m@evil.example",
		Subject: `"quoted" & 'single'`,
		Message: "<script>alert(1)</script>\nline two",
	})

	assert.Contains(t, env.HTMLBody, "&lt;script&gt;alert(1)&lt;/script&gt;<br>line two")
	assert.Contains(t, env.HTMLBody, "&lt;b&gt;Mallory&lt;/b&gt;")
	assert.Contains(t, env.HTMLBody, "&quot;quoted&quot; &amp; &#039;single&#039;")
	assert.NotContains(t, env.HTMLBody, "<script>")

	// plain text keeps the raw input
	assert.Contains(t, env.TextBody, "<script>alert(1)</script>\nline two")
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<tag>", "&lt;tag&gt;"},
		{`"x"`, "&quot;x&quot;"},
		{"it's", "it&#039;s"},
		{"&amp;", "&amp;amp;"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeHTML(tt.in))
		})
	}
}

func TestEscapeMultilineNormalizesCRLF(t *testing.T) {
	got := escapeMultiline("one\r\ntwo\nthree")
	assert.Equal(t, "one<br>two<br>three", got)
	assert.False(t, strings.Contains(got, "\r"))
}
