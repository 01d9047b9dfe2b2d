// Package tracing sets up the process-wide Jaeger exporter and exposes
// helpers for carrying an opentracing span context across a channel
// boundary (UDP ingress goroutine -> fan-out goroutine) using a binary
// carrier, since the two sides do not share a context.Context.
package tracing

import (
	"bytes"
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// Tracer is the process-wide tracer, set by Setup.
var Tracer opentracing.Tracer

// Closer releases tracer resources on shutdown.
var Closer io.Closer

// Setup configures the global Jaeger tracer. serviceName identifies this
// process in the trace backend; agentAddr is the Jaeger agent's
// host:port. When agentAddr is empty, tracing is configured to sample
// nothing, so spans are created but never exported.
func Setup(serviceName, agentAddr string) error {
	samplerType := jaeger.SamplerTypeConst
	samplerParam := float64(0)
	if agentAddr != "" {
		samplerParam = 1
	}

	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  samplerType,
			Param: samplerParam,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentAddr,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return err
	}

	Tracer = tracer
	Closer = closer
	opentracing.SetGlobalTracer(tracer)
	return nil
}

// InjectSpanContextIntoBinaryCarrier serializes span's context into a byte
// slice suitable for attaching to a LinkPacket that crosses a channel
// boundary.
func InjectSpanContextIntoBinaryCarrier(tracer opentracing.Tracer, span opentracing.Span) ([]byte, error) {
	var buf bytes.Buffer
	if err := tracer.Inject(span.Context(), opentracing.Binary, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExtractSpanContextFromBinaryCarrier reverses
// InjectSpanContextIntoBinaryCarrier.
func ExtractSpanContextFromBinaryCarrier(tracer opentracing.Tracer, carrier []byte) (opentracing.SpanContext, error) {
	return tracer.Extract(opentracing.Binary, bytes.NewReader(carrier))
}
