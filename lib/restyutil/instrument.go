package restyutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

type instrumentCtx struct {
	output    InstrumentOutput
	tracer    trace.Tracer
	idcounter *uint64
}

type messageIdKey struct{}

// InstrumentClient wraps every request of client in a span and, when output
// is not nil, writes the full exchange to output under an increasing id.
// `tracer` can be nil, it will default to a library name of "resty".
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	var idcounter uint64
	i := instrumentCtx{output: output, tracer: tracer, idcounter: &idcounter}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i instrumentCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, span := i.tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))
	span.SetAttributes(
		semconv.HTTPRequestMethodKey.String(req.Method),
		semconv.URLFull(req.URL),
	)

	messageId := fmt.Sprintf("%04d", atomic.AddUint64(i.idcounter, 1))
	ctx = context.WithValue(ctx, messageIdKey{}, messageId)

	req.SetContext(ctx)
	return nil
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(semconv.HTTPResponseStatusCode(res.StatusCode()))
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
	}

	if i.output != nil {
		messageId, _ := ctx.Value(messageIdKey{}).(string)
		i.output.Write(messageId, formatHttpMessage(res))
	}
	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")
}
