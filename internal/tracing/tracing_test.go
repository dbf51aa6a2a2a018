package tracing

import (
	"bytes"
	"context"
	"testing"

	"placefinder/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(config.TracingConfig{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	carrier := propagation.MapCarrier{"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"}
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), carrier)

	out := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, out)
	assert.Equal(t, carrier["traceparent"], out["traceparent"])
}

func TestSetup_ExportsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	shutdown, err := Setup(config.TracingConfig{Enabled: true, ServiceName: "placefinder-test"}, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("placefinder/test").Start(context.Background(), "lookup")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"lookup"`)
	assert.Contains(t, buf.String(), "placefinder-test")
}
