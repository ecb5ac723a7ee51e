package mail

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/ashcraft-tech/contact-api/internal/mail")

// Dispatcher builds envelopes and sends them through one Transport.
type Dispatcher struct {
	transport Transport
	sender    Sender
	timeout   time.Duration
}

func NewDispatcher(transport Transport, sender Sender, timeout time.Duration) *Dispatcher {
	if transport == nil {
		transport = NullTransport{}
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{
		transport: transport,
		sender:    sender,
		timeout:   timeout,
	}
}

// TransportName reports which transport is active
func (d *Dispatcher) TransportName() string {
	return d.transport.Name()
}

// Dispatch sends s once. Any provider failure is returned wrapped in
// ErrDispatch; there is no retry.
func (d *Dispatcher) Dispatch(ctx context.Context, s Submission) error {
	return d.Send(ctx, BuildEnvelope(d.sender, s))
}

// Send delivers a prebuilt envelope under the dispatcher's timeout.
func (d *Dispatcher) Send(ctx context.Context, env Envelope) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "mail.Dispatch", trace.WithAttributes(
		attribute.String("mail.transport", d.transport.Name()),
	))
	defer span.End()

	if err := d.transport.Send(ctx, env); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return fmt.Errorf("%w: %s: %w", ErrDispatch, d.transport.Name(), err)
	}
	return nil
}
