package telemetry

import (
	"context"
	"testing"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("PULSAR_OTEL_ENDPOINT", "")
	t.Setenv("PULSAR_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("PULSAR_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("PULSAR_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address, so no actual export happens.
	t.Setenv("PULSAR_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("PULSAR_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopShutdownIgnoresCancelledContext(t *testing.T) {
	t.Setenv("PULSAR_OTEL_ENDPOINT", "")
	t.Setenv("PULSAR_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "noop-test")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
