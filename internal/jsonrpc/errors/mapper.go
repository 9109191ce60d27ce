package errors

import (
	"net/http"

	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
)

// Custom JSON-RPC error codes in the server-defined range (-32000 to -32099).
const (
	// CodeServerError is a generic server error (-32000).
	CodeServerError = -32000
	// CodeUpstreamError indicates the selected backend could not be reached (-32004).
	CodeUpstreamError = -32004
)

// MapHTTPStatusToJSONRPCCode maps HTTP status codes to JSON-RPC 2.0 error codes.
//
// Standard JSON-RPC codes (predefined):
//
//	-32700: Parse error
//	-32600: Invalid Request
//	-32601: Method not found
//	-32603: Internal error
//
// Custom codes (server-defined -32000 to -32099):
//
//	-32000: Generic server error
//	-32004: Upstream error (502, 503, 504)
//
// Returns 0 for success status codes (2xx, 3xx).
func MapHTTPStatusToJSONRPCCode(httpStatus int) int {
	if httpStatus < 400 {
		return 0
	}

	switch httpStatus {
	case http.StatusBadRequest:
		return jsonrpc.CodeParseError

	case http.StatusNotFound:
		return jsonrpc.CodeMethodNotFound

	case http.StatusMethodNotAllowed, http.StatusRequestEntityTooLarge:
		return jsonrpc.CodeInvalidRequest

	case http.StatusInternalServerError:
		return jsonrpc.CodeInternalError

	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return CodeUpstreamError

	default:
		if httpStatus >= 500 {
			return jsonrpc.CodeInternalError
		}
		return CodeServerError
	}
}
