// Package dispatch hands a classified request to its destination backend
// and relays the destination's response unchanged.
package dispatch

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TykTechnologies/tyk-rpc-router/common/option"
	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/errors"
	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
)

const tracerName = "github.com/TykTechnologies/tyk-rpc-router/internal/dispatch"

// ErrUnknownDestination is returned when a router has nothing registered
// for a destination.
var ErrUnknownDestination = errors.New("no route for destination")

// Mode names a Router implementation.
type Mode string

const (
	// ModeInternal hands the request to an in-process handler.
	ModeInternal Mode = "internal"
	// ModeForward POSTs the body to the backend and copies the answer back.
	ModeForward Mode = "forward"
)

// ParseMode resolves a configured dispatch mode. Empty means internal.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeInternal:
		return ModeInternal, nil
	case ModeForward:
		return ModeForward, nil
	default:
		return "", fmt.Errorf("unknown dispatch mode %q", s)
	}
}

// Outcome describes a completed dispatch.
type Outcome struct {
	Destination classifier.Destination
	Mode        Mode
	// StatusCode is the status written to the client.
	StatusCode int
	// Err is set when no backend response was obtained.
	Err error
	// Classification describes a failed or 5xx exchange, nil otherwise.
	Classification *errors.ErrorClassification
}

// Failed reports whether the destination did not answer successfully.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.StatusCode >= http.StatusInternalServerError
}

// Router delivers a request to a destination. Whatever the destination
// answers is what the client receives.
type Router interface {
	Route(w http.ResponseWriter, r *http.Request, dest classifier.Destination) Outcome
}

// Dispatcher routes requests and records a span per dispatch.
type Dispatcher struct {
	router Router
	tracer trace.Tracer
}

// WithTracer sets the tracer provider used for dispatch spans.
func WithTracer(tp trace.TracerProvider) option.Option[Dispatcher] {
	return func(d *Dispatcher) {
		d.tracer = tp.Tracer(tracerName)
	}
}

// New creates a Dispatcher over router. Spans go to the global provider
// unless WithTracer is passed.
func New(router Router, opts ...option.Option[Dispatcher]) *Dispatcher {
	return option.New(opts).
		Prepend(WithTracer(otel.GetTracerProvider())).
		Build(Dispatcher{router: router})
}

// Forward delivers r, whose body must hold the raw request bytes, to dest.
func (d *Dispatcher) Forward(w http.ResponseWriter, r *http.Request, req *jsonrpc.Request, dest classifier.Destination) Outcome {
	ctx, span := d.tracer.Start(r.Context(), "dispatch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.method", req.Method),
			attribute.String("router.destination", dest.String()),
		),
	)
	defer span.End()

	out := d.router.Route(w, r.WithContext(ctx), dest)

	span.SetAttributes(
		attribute.String("router.mode", string(out.Mode)),
		attribute.Int("http.response.status_code", out.StatusCode),
	)
	if out.Err != nil {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, out.Err.Error())
	}

	return out
}

// WithBody sets body as the readable body of r.
func WithBody(r *http.Request, body []byte) *http.Request {
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	r.ContentLength = int64(len(body))
	return r
}
