package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// RouteFunc maps a request path onto its route template.
type RouteFunc func(path string) string

// statusRecorder captures the first status code written.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHeader {
		rec.status = code
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

// Middleware starts one server span per request, continuing any W3C trace
// context found in the headers. Spans are named "METHOD route" so topics and
// handler types stay out of span names; a nil route uses the raw path.
// The trace ID is echoed in X-Trace-Id and 5xx responses mark the span as
// failed.
//
//	handler := tracing.Middleware(pathutil.NormalizePath)(mux)
func Middleware(route RouteFunc) func(http.Handler) http.Handler {
	if route == nil {
		route = func(path string) string { return path }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			tmpl := route(r.URL.Path)
			ctx, span := tracer.Start(ctx, r.Method+" "+tmpl,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("http.route", tmpl),
				),
			)
			defer span.End()

			w.Header().Set("X-Trace-Id", span.SpanContext().TraceID().String())

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}
		})
	}
}
