package dispatch

import (
	"fmt"
	"net/http"

	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/httpctx"
	"github.com/TykTechnologies/tyk-rpc-router/internal/httputil"
)

// InternalRouter transfers a request to the in-process handler registered
// for its destination. The handler writes the final response.
type InternalRouter struct {
	handlers map[classifier.Destination]http.Handler
}

// NewInternalRouter creates a router over handlers.
func NewInternalRouter(handlers map[classifier.Destination]http.Handler) *InternalRouter {
	h := make(map[classifier.Destination]http.Handler, len(handlers))
	for dest, handler := range handlers {
		h[dest] = handler
	}
	return &InternalRouter{handlers: h}
}

// Route rewrites the path of r to the destination path, marks it as
// internally routed and serves it with the destination handler.
func (ir *InternalRouter) Route(w http.ResponseWriter, r *http.Request, dest classifier.Destination) Outcome {
	out := Outcome{Destination: dest, Mode: ModeInternal}

	handler, ok := ir.handlers[dest]
	if !ok {
		httputil.BadGateway(w, r)
		out.StatusCode = http.StatusBadGateway
		out.Err = fmt.Errorf("%w: %s", ErrUnknownDestination, dest)
		return out
	}

	sub := r.Clone(r.Context())
	sub.Body = r.Body
	sub.URL.Path = dest.Path()
	sub.URL.RawPath = ""
	sub.RequestURI = dest.Path()
	sub = httpctx.SetInternalRouting(sub)

	rec := httputil.NewStatusRecorder(w)
	handler.ServeHTTP(rec, sub)

	out.StatusCode = rec.Status()
	if out.StatusCode == 0 {
		out.StatusCode = http.StatusOK
	}
	return out
}
