package otel

import (
	"context"

	"github.com/adrianliechti/plantuml/pkg/tool"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type Tool interface {
	Observable
	tool.Provider
}

type observableTool struct {
	provider string

	tool tool.Provider

	callMetric metric.Int64Counter
}

func NewTool(provider string, p tool.Provider) Tool {
	meter := otel.Meter(instrumentationName)

	callMetric, _ := meter.Int64Counter("plantuml.tool.calls",
		metric.WithDescription("Number of tool invocations."),
	)

	return &observableTool{
		tool: p,

		provider: provider,

		callMetric: callMetric,
	}
}

func (p *observableTool) otelSetup() {
}

func (p *observableTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "tools "+p.provider)
	defer span.End()

	tools, err := p.tool.Tools(ctx)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return tools, err
}

func (p *observableTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "execute_tool "+name)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("mcp.server", p.provider),
		attribute.String("mcp.tool", name),
	}

	span.SetAttributes(attrs...)
	span.SetAttributes(EndUserAttrs(ctx)...)

	result, err := p.tool.Execute(ctx, name, parameters)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		attrs = append(attrs, attribute.String("error.type", "tool"))
	}

	if p.callMetric != nil {
		p.callMetric.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	return result, err
}
