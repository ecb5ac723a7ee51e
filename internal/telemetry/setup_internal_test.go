package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
)

func TestSetupResourceFailureRegistersNothing(t *testing.T) {
	errResource := errors.New("resource detection failed")
	orig := newResource
	newResource = func(context.Context, string) (*resource.Resource, error) {
		return nil, errResource
	}
	t.Cleanup(func() { newResource = orig })

	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "contact-api", "192.0.2.1:4317")
	require.ErrorIs(t, err, errResource)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}
