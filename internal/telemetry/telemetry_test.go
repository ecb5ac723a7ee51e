package telemetry_test

import (
	"context"
	"testing"

	"github.com/ashcraft-tech/contact-api/internal/telemetry"

	"github.com/stretchr/testify/require"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "contact-api", "  ")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupNoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "contact-api", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable addresses: no span is ever recorded, so nothing is exported.
	for _, endpoint := range []string{"192.0.2.1:4317", "http://192.0.2.1:4317"} {
		t.Run(endpoint, func(t *testing.T) {
			shutdown, err := telemetry.Setup(context.Background(), "contact-api", endpoint)
			require.NoError(t, err)
			require.NoError(t, shutdown(context.Background()))
		})
	}
}
