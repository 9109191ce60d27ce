package classifier

import (
	"sort"

	"github.com/samber/lo"
)

// Tracing methods need execution replay and are only served by the tracer.
const (
	DebugTraceBlock              = "debug_traceBlock"
	DebugTraceBlockByHash        = "debug_traceBlockByHash"
	DebugTraceBlockByNumber      = "debug_traceBlockByNumber"
	DebugTraceBlockFromFile      = "debug_traceBlockFromFile"
	DebugTraceCall               = "debug_traceCall"
	DebugTraceTransaction        = "debug_traceTransaction"
	TraceBlock                   = "trace_block"
	TraceCall                    = "trace_call"
	TraceCallMany                = "trace_callMany"
	TraceFilter                  = "trace_filter"
	TraceGet                     = "trace_get"
	TraceRawTransaction          = "trace_rawTransaction"
	TraceReplayBlockTransactions = "trace_replayBlockTransactions"
	TraceReplayTransaction       = "trace_replayTransaction"
	TraceTransaction             = "trace_transaction"
)

// State queries that take an EIP-1898 block reference.
const (
	EthGetStorageAt        = "eth_getStorageAt"
	EthGetBalance          = "eth_getBalance"
	EthGetCode             = "eth_getCode"
	EthGetTransactionCount = "eth_getTransactionCount"
	EthCall                = "eth_call"
)

const (
	TagLatest   = "latest"
	TagPending  = "pending"
	TagEarliest = "earliest"
)

var (
	tracingMethods = map[string]struct{}{
		DebugTraceBlock:              {},
		DebugTraceBlockByHash:        {},
		DebugTraceBlockByNumber:      {},
		DebugTraceBlockFromFile:      {},
		DebugTraceCall:               {},
		DebugTraceTransaction:        {},
		TraceBlock:                   {},
		TraceCall:                    {},
		TraceCallMany:                {},
		TraceFilter:                  {},
		TraceGet:                     {},
		TraceRawTransaction:          {},
		TraceReplayBlockTransactions: {},
		TraceReplayTransaction:       {},
		TraceTransaction:             {},
	}

	// blockTagParamIndex maps a method to the position of its block
	// reference argument.
	blockTagParamIndex = map[string]int{
		EthGetStorageAt:        2,
		EthGetBalance:          1,
		EthGetCode:             1,
		EthGetTransactionCount: 1,
		EthCall:                1,
	}

	// predefinedTags are the only block references the proxy backend
	// resolves correctly.
	predefinedTags = map[string]struct{}{
		TagLatest:   {},
		TagPending:  {},
		TagEarliest: {},
	}
)

// IsTracingMethod reports whether method is served by the tracer regardless
// of its arguments. The match is exact.
func IsTracingMethod(method string) bool {
	_, ok := tracingMethods[method]
	return ok
}

// BlockTagIndex returns the params position of the block reference taken
// by method. The second value is false for methods without one.
func BlockTagIndex(method string) (int, bool) {
	idx, ok := blockTagParamIndex[method]
	return idx, ok
}

// IsPredefinedTagName reports whether tag is one of latest, pending or
// earliest. The comparison is case-sensitive.
func IsPredefinedTagName(tag string) bool {
	_, ok := predefinedTags[tag]
	return ok
}

// TracingMethods returns the tracing method names, sorted.
func TracingMethods() []string {
	methods := lo.Keys(tracingMethods)
	sort.Strings(methods)
	return methods
}

// BlockTagMethods returns a copy of the method to block reference index table.
func BlockTagMethods() map[string]int {
	return lo.Assign(blockTagParamIndex)
}

// PredefinedTags returns the predefined block tags, sorted.
func PredefinedTags() []string {
	tags := lo.Keys(predefinedTags)
	sort.Strings(tags)
	return tags
}
