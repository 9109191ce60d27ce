// Package classifier decides which backend serves a JSON-RPC request.
//
// The decision is a pure function of the method name and its positional
// params. Tracing methods always go to the tracer. State queries that take
// a block reference go to the tracer unless the reference is one of the
// predefined tags (latest, pending, earliest), which the proxy backend keeps
// materialized. Everything else goes to the proxy.
//
// A state query whose block reference was omitted is routed to the tracer.
// JSON-RPC would default such a call to "latest"; the router deliberately
// does not assume that.
package classifier

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
)

// Reason explains why a destination was chosen.
type Reason string

const (
	// ReasonTracingMethod is used for methods in the tracing registry.
	ReasonTracingMethod Reason = "tracing_method"
	// ReasonBlockReference is used when a block reference is not a predefined tag.
	ReasonBlockReference Reason = "block_reference"
	// ReasonDefault is used when nothing requires the tracer.
	ReasonDefault Reason = "default"
)

// Decision is a classification together with the facts it was based on.
type Decision struct {
	Destination Destination
	Reason      Reason
	// BlockRef describes the block reference argument for methods that
	// take one, and is BlockRefNone otherwise.
	BlockRef BlockRefKind
}

// Classify returns the destination for req.
func Classify(req *jsonrpc.Request) Destination {
	return Explain(req).Destination
}

// Explain classifies req and reports the reason.
func Explain(req *jsonrpc.Request) Decision {
	if IsTracingMethod(req.Method) {
		return Decision{Destination: Tracer, Reason: ReasonTracingMethod, BlockRef: BlockRefNone}
	}

	idx, ok := BlockTagIndex(req.Method)
	if !ok {
		return Decision{Destination: Proxy, Reason: ReasonDefault, BlockRef: BlockRefNone}
	}

	tag, present := req.Param(idx)
	ref := DescribeBlockRef(tag, present)
	if isEIP1898Tag(tag, present) {
		return Decision{Destination: Tracer, Reason: ReasonBlockReference, BlockRef: ref}
	}

	return Decision{Destination: Proxy, Reason: ReasonDefault, BlockRef: ref}
}

// IsEIP1898 reports whether req references a block other than a predefined
// tag. Methods without a block reference argument never do. A missing
// argument counts as a non-default reference.
func IsEIP1898(req *jsonrpc.Request) bool {
	idx, ok := BlockTagIndex(req.Method)
	if !ok {
		return false
	}

	tag, present := req.Param(idx)
	return isEIP1898Tag(tag, present)
}

func isEIP1898Tag(tag json.RawMessage, present bool) bool {
	return !present || !IsPredefinedTag(tag)
}

// IsPredefinedTag reports whether raw is a JSON string equal to one of the
// predefined tags.
func IsPredefinedTag(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '"' {
		return false
	}

	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return false
	}

	return IsPredefinedTagName(tag)
}
