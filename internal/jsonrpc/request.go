// Package jsonrpc parses inbound JSON-RPC 2.0 request objects into the
// minimal shape the router needs: the method name and positional params.
package jsonrpc

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Version is the only protocol version the router speaks.
const Version = "2.0"

// ErrMalformedRequest is returned when a body is not a JSON-RPC request
// object with a string method.
var ErrMalformedRequest = errors.New("malformed JSON-RPC request")

// Request is a parsed JSON-RPC request. It is never modified after Parse.
type Request struct {
	// Method is the JSON-RPC method name, e.g. "eth_call".
	Method string
	// Params holds the positional parameters verbatim. It is empty when
	// params were absent, null or passed by name.
	Params []json.RawMessage
	// ID is the raw request id, nil when absent.
	ID json.RawMessage
}

// envelope is the wire form. Method and Params stay raw so their JSON
// type can be checked before decoding.
type envelope struct {
	Method json.RawMessage `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     json.RawMessage `json:"id"`
}

// Parse decodes body into a Request. Any error wraps ErrMalformedRequest.
func Parse(body []byte) (*Request, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedRequest)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a request object", ErrMalformedRequest)
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	if len(env.Method) == 0 || env.Method[0] != '"' {
		return nil, fmt.Errorf("%w: method must be a string", ErrMalformedRequest)
	}

	var method string
	if err := json.Unmarshal(env.Method, &method); err != nil {
		return nil, fmt.Errorf("%w: method: %v", ErrMalformedRequest, err)
	}

	params, err := parseParams(env.Params)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method: method,
		Params: params,
		ID:     env.ID,
	}, nil
}

func parseParams(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []json.RawMessage{}, nil
	}

	switch raw[0] {
	case '[':
		var params []json.RawMessage
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, fmt.Errorf("%w: params: %v", ErrMalformedRequest, err)
		}
		if params == nil {
			params = []json.RawMessage{}
		}
		return params, nil
	case '{':
		// By-name params carry no positional values.
		return []json.RawMessage{}, nil
	default:
		return nil, fmt.Errorf("%w: params must be an array or an object", ErrMalformedRequest)
	}
}

// Param returns the positional parameter at index i. The second return
// value reports whether the caller supplied it.
func (r *Request) Param(i int) (json.RawMessage, bool) {
	if r == nil || i < 0 || i >= len(r.Params) {
		return nil, false
	}
	return r.Params[i], true
}
