package errors

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/TykTechnologies/tyk-rpc-router/headers"
	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
)

// JSONRPCError represents a JSON-RPC 2.0 error object as defined in the specification.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSONRPCErrorResponse represents a complete JSON-RPC 2.0 error response.
type JSONRPCErrorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Error   JSONRPCError    `json:"error"`
	ID      json.RawMessage `json:"id"`
}

// WriteParseError writes the -32700 response for a body that could not be
// parsed as a JSON-RPC request. The id is recovered from body when it is
// readable, and null otherwise.
func WriteParseError(w http.ResponseWriter, body []byte, message string) {
	response := buildErrorResponse(RequestID(body), jsonrpc.CodeParseError, message, http.StatusBadRequest)
	writeJSONResponse(w, http.StatusBadRequest, response)
}

// WriteJSONRPCError writes a JSON-RPC 2.0 error response to the HTTP response writer.
// It maps the HTTP status code to an appropriate JSON-RPC error code.
//
// The response will include the original HTTP status code in the error data field
// for debugging purposes.
func WriteJSONRPCError(w http.ResponseWriter, requestID json.RawMessage, httpCode int, message string) {
	rpcCode := MapHTTPStatusToJSONRPCCode(httpCode)

	response := buildErrorResponse(requestID, rpcCode, message, httpCode)

	writeJSONResponse(w, httpCode, response)
}

// RequestID extracts the "id" member of a request body without requiring
// the rest of the body to be valid. It returns the JSON null literal when
// no usable id is found.
func RequestID(body []byte) json.RawMessage {
	if !gjson.ValidBytes(body) {
		return nullID()
	}

	id := gjson.GetBytes(body, "id")
	switch id.Type {
	case gjson.String, gjson.Number:
		return json.RawMessage(id.Raw)
	default:
		return nullID()
	}
}

func nullID() json.RawMessage {
	return json.RawMessage("null")
}

// buildErrorResponse constructs a JSON-RPC error response structure.
func buildErrorResponse(requestID json.RawMessage, rpcCode int, message string, httpCode int) JSONRPCErrorResponse {
	if len(requestID) == 0 {
		requestID = nullID()
	}

	return JSONRPCErrorResponse{
		JSONRPC: jsonrpc.Version,
		Error: JSONRPCError{
			Code:    rpcCode,
			Message: message,
			Data: map[string]interface{}{
				"http_code": httpCode,
			},
		},
		ID: requestID,
	}
}

// writeJSONResponse writes the JSON-RPC response with appropriate headers.
func writeJSONResponse(w http.ResponseWriter, httpCode int, response JSONRPCErrorResponse) {
	w.Header().Set(headers.ContentType, headers.ApplicationJSON)
	w.WriteHeader(httpCode)

	// The caller is already on an error path, nothing useful to do on failure.
	_ = json.NewEncoder(w).Encode(response)
}
