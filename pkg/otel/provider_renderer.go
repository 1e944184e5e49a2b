package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/plantuml/pkg/renderer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type Renderer interface {
	Observable
	renderer.Provider
}

type observableRenderer struct {
	name     string
	provider string

	renderer renderer.Provider

	durationMetric metric.Float64Histogram
}

func NewRenderer(provider, name string, p renderer.Provider) Renderer {
	meter := otel.Meter(instrumentationName)

	durationMetric, _ := meter.Float64Histogram("plantuml.render.duration",
		metric.WithDescription("Duration of diagram render operations."),
		metric.WithUnit("s"),
	)

	return &observableRenderer{
		renderer: p,

		name:     name,
		provider: provider,

		durationMetric: durationMetric,
	}
}

func (p *observableRenderer) otelSetup() {
}

func (p *observableRenderer) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "render "+p.name)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("plantuml.renderer", p.name),
		attribute.String("plantuml.provider", p.provider),
		attribute.String("plantuml.format", string(format)),
	}

	span.SetAttributes(attrs...)
	span.SetAttributes(EndUserAttrs(ctx)...)

	timestamp := time.Now()

	result, err := p.renderer.Render(ctx, code, format, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		attrs = append(attrs, attribute.String("error.type", "render"))
	}

	if result != nil {
		span.SetAttributes(attribute.Int("plantuml.size", len(result.Content)))
	}

	if p.durationMetric != nil {
		p.durationMetric.Record(ctx, time.Since(timestamp).Seconds(), metric.WithAttributes(attrs...))
	}

	return result, err
}
