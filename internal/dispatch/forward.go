package dispatch

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/TykTechnologies/tyk-rpc-router/common/option"
	"github.com/TykTechnologies/tyk-rpc-router/headers"
	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/errors"
	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
	jsonrpcerrors "github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc/errors"
)

// ForwardRouter POSTs the request body to the backend URL of the
// destination and copies status, body, Content-Type and Content-Encoding
// back. There is no retry and no failover.
type ForwardRouter struct {
	targets map[classifier.Destination]*url.URL
	client  *http.Client
}

// WithClient sets the HTTP client used for backend calls.
func WithClient(client *http.Client) option.Option[ForwardRouter] {
	return func(f *ForwardRouter) {
		if client != nil {
			f.client = client
		}
	}
}

// NewForwardRouter creates a router posting to targets, keyed by destination.
func NewForwardRouter(targets map[classifier.Destination]string, opts ...option.Option[ForwardRouter]) (*ForwardRouter, error) {
	parsed := make(map[classifier.Destination]*url.URL, len(targets))
	for dest, target := range targets {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("%s url: %w", dest, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%s url %q: scheme and host are required", dest, target)
		}
		parsed[dest] = u
	}

	return option.New(opts).Build(ForwardRouter{
		targets: parsed,
		client:  http.DefaultClient,
	}), nil
}

// Route forwards r to dest. The sub-call shares the context of r, so a
// client that goes away cancels it.
func (f *ForwardRouter) Route(w http.ResponseWriter, r *http.Request, dest classifier.Destination) Outcome {
	out := Outcome{Destination: dest, Mode: ModeForward}

	target, ok := f.targets[dest]
	if !ok {
		return f.fail(w, out, nil, fmt.Errorf("%w: %s", ErrUnknownDestination, dest), "")
	}

	var body []byte
	if r.Body != nil {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			return f.fail(w, out, nil, fmt.Errorf("read request body: %w", err), target.Host)
		}
	}

	sub, err := http.NewRequestWithContext(r.Context(), http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return f.fail(w, out, body, err, target.Host)
	}

	contentType := r.Header.Get(headers.ContentType)
	if contentType == "" {
		contentType = headers.ApplicationJSON
	}
	sub.Header.Set(headers.ContentType, contentType)
	// An explicit value stops the transport from negotiating gzip and
	// decompressing the answer behind our back.
	sub.Header.Set(headers.AcceptEncoding, "identity")
	if id := r.Header.Get(headers.XRequestID); id != "" {
		sub.Header.Set(headers.XRequestID, id)
	}
	sub.Header.Set(headers.XRouterDestination, dest.String())

	resp, err := f.client.Do(sub)
	if err != nil {
		return f.fail(w, out, body, fmt.Errorf("forward to %s: %w", dest, err), target.Host)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return f.fail(w, out, body, fmt.Errorf("read %s response: %w", dest, err), target.Host)
	}

	for _, name := range []string{headers.ContentType, headers.ContentEncoding} {
		if v := resp.Header.Get(name); v != "" {
			w.Header().Set(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(respBody)

	out.StatusCode = resp.StatusCode
	if resp.StatusCode >= http.StatusInternalServerError {
		out.Classification = errors.ClassifyUpstreamResponse(resp.StatusCode, dest.String(), target.Host)
	}
	return out
}

// fail answers 502 with a JSON-RPC error carrying the id found in body.
func (f *ForwardRouter) fail(w http.ResponseWriter, out Outcome, body []byte, err error, host string) Outcome {
	jsonrpcerrors.WriteJSONRPCError(w, jsonrpcerrors.RequestID(body), http.StatusBadGateway, jsonrpc.ErrMsgUpstream)
	out.StatusCode = http.StatusBadGateway
	out.Err = err
	out.Classification = errors.ClassifyUpstreamError(err, out.Destination.String(), host)
	return out
}
