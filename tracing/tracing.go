// Package tracing wraps reactive effect executions in OpenTelemetry spans,
// grounded on the teacher's OpenTelemetry() HTTP middleware: same
// Config/Option shape, same tracer.Start/span.RecordError/span.SetStatus
// sequence, pointed at an effect's function instead of an HTTP handler.
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/reactive-go/reactive/reactive"
)

const defaultTracerName = "reactive"

// Config configures the tracing wrapper.
type Config struct {
	// TracerName names the tracer (default: "reactive").
	TracerName string
	// AttributeExtractor adds custom attributes to every effect span.
	AttributeExtractor func() []attribute.KeyValue

	tracer trace.Tracer
}

// Option configures Config.
type Option func(*Config)

func WithTracerName(name string) Option { return func(c *Config) { c.TracerName = name } }
func WithAttributeExtractor(fn func() []attribute.KeyValue) Option {
	return func(c *Config) { c.AttributeExtractor = fn }
}

func defaultConfig() Config {
	return Config{TracerName: defaultTracerName}
}

// Traced wraps fn (an effect body, as passed to reactive.CreateEffect) so
// each execution opens a span named name, tagged with the effect name and
// any extracted attributes. A panic is recorded on the span as an error and
// then re-raised. The span carries no count of the dependencies the run
// established.
//
//	reactive.CreateEffect(tracing.Traced(ctx, "render-sidebar", func() reactive.Cleanup {
//	    ...
//	    return nil
//	}))
func Traced(ctx context.Context, name string, fn func() reactive.Cleanup, opts ...Option) func() reactive.Cleanup {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)

	return func() reactive.Cleanup {
		attrs := []attribute.KeyValue{attribute.String("reactive.effect", name)}
		if cfg.AttributeExtractor != nil {
			attrs = append(attrs, cfg.AttributeExtractor()...)
		}
		_, span := cfg.tracer.Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		var cleanup reactive.Cleanup
		func() {
			defer func() {
				if r := recover(); r != nil {
					span.RecordError(panicToError(r))
					span.SetStatus(codes.Error, "panic")
					panic(r)
				}
			}()
			cleanup = fn()
		}()
		span.SetStatus(codes.Ok, "")
		return cleanup
	}
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
