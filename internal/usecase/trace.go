package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("lzvcup-scraper/internal/usecase")

// unitSpan wraps the span of one unit of scrape work.
type unitSpan struct {
	trace.Span
}

// startSpan only opens a span below an existing one, so untraced callers
// such as tests and dry runs pay nothing.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, unitSpan) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, unitSpan{Span: trace.SpanFromContext(ctx)}
	}
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, unitSpan{Span: span}
}

// end closes the span. Absence errors are expected on this site and are
// recorded as events instead of span errors.
func (s unitSpan) end(err error) {
	switch {
	case err == nil:
	case IsAbsence(err):
		s.AddEvent("unit skipped", trace.WithAttributes(attribute.String("reason", err.Error())))
	default:
		s.RecordError(err)
		s.SetStatus(codes.Error, err.Error())
	}
	s.End()
}
