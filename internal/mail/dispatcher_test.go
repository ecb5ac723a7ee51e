package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyTransport struct {
	sent     []Envelope
	err      error
	deadline time.Time
}

func (s *spyTransport) Send(ctx context.Context, env Envelope) error {
	s.deadline, _ = ctx.Deadline()
	s.sent = append(s.sent, env)
	return s.err
}

func (s *spyTransport) Name() string { return "spy" }

func TestDispatcherDispatch(t *testing.T) {
	spy := &spyTransport{}
	d := NewDispatcher(spy, testSender, time.Minute)

	before := time.Now()
	err := d.Dispatch(context.Background(), Submission{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "<b>x</b>"})
	require.NoError(t, err)

	require.Len(t, spy.sent, 1)
	assert.Equal(t, "hello@ashcraft.tech", spy.sent[0].To)
	assert.Contains(t, spy.sent[0].HTMLBody, "&lt;b&gt;x&lt;/b&gt;")
	assert.WithinDuration(t, before.Add(time.Minute), spy.deadline, 5*time.Second)
	assert.Equal(t, "spy", d.TransportName())
}

func TestDispatcherWrapsFailure(t *testing.T) {
	upstream := errors.New("connection reset")
	d := NewDispatcher(&spyTransport{err: upstream}, testSender, time.Second)

	err := d.Dispatch(context.Background(), Submission{Name: "a", Email: "a@b.co", Subject: "s", Message: "m"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDispatch)
	assert.ErrorIs(t, err, upstream)
}

func TestDispatcherDefaults(t *testing.T) {
	d := NewDispatcher(nil, testSender, 0)
	assert.Equal(t, "log", d.TransportName())
	assert.Equal(t, 15*time.Second, d.timeout)
	assert.NoError(t, d.Dispatch(context.Background(), Submission{Name: "a", Email: "a@b.co", Subject: "s", Message: "m"}))
}
