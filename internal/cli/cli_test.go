package cli

import (
	"bytes"
	"testing"

	"github.com/ashcraft-tech/contact-api/internal/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Info()+"\n", out)
}

func TestSendTestThroughLogTransport(t *testing.T) {
	t.Setenv("MAIL_TRANSPORT", "log")
	t.Setenv("LOG_FILE", "")

	out, err := run(t, "send-test", "--to", "owner@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent test message to owner@example.com via log")
}

func TestSendTestRejectsMisconfiguredTransport(t *testing.T) {
	t.Setenv("MAIL_TRANSPORT", "smtp")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("LOG_FILE", "")

	_, err := run(t, "send-test")
	assert.Error(t, err)
}
