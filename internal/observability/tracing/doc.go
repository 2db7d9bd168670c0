// Package tracing provides OpenTelemetry tracing integration.
//
// The tracer is obtained from the global otel provider, so spans are no-ops
// until a TracerProvider is installed with otel.SetTracerProvider.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "notify.Dispatch")
//	defer span.End()
package tracing
