package httpctx

import (
	"net/http"
)

var internalRouting = NewValue[bool]("rpc-router:internal-routing")

// SetInternalRouting marks r as dispatched by the router itself. Named
// destination routes only accept marked requests.
func SetInternalRouting(r *http.Request) *http.Request {
	return internalRouting.Set(r, true)
}

// IsInternalRouting reports whether r was dispatched by the router.
func IsInternalRouting(r *http.Request) bool {
	enabled, _ := internalRouting.Get(r)
	return enabled
}

var requestID = NewValue[string]("rpc-router:request-id")

// SetRequestID stores the request id assigned at ingress.
func SetRequestID(r *http.Request, id string) *http.Request {
	return requestID.Set(r, id)
}

// RequestID returns the id assigned at ingress, or "".
func RequestID(r *http.Request) string {
	id, _ := requestID.Get(r)
	return id
}
