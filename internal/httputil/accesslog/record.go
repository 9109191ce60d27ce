package accesslog

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TykTechnologies/tyk-rpc-router/request"
)

// Record is a representation of a routed request in the access log.
type Record struct {
	fields logrus.Fields
}

// NewRecord returns a Record object.
func NewRecord() *Record {
	fields := logrus.Fields{
		"prefix": "access-log",
	}
	return &Record{
		fields: fields,
	}
}

// WithClientIP sets the client ip of the Record.
func (a *Record) WithClientIP(req *http.Request) *Record {
	if req != nil {
		a.fields["client_ip"] = request.RealIP(req)
	}
	return a
}

// WithMethod sets the request method of the Record.
func (a *Record) WithMethod(req *http.Request) *Record {
	if req != nil {
		a.fields["method"] = req.Method
	}
	return a
}

// WithPath sets the path of the Record.
func (a *Record) WithPath(req *http.Request) *Record {
	if req != nil {
		a.fields["path"] = req.URL.Path
	}
	return a
}

// WithUserAgent sets the user agent of the Record.
func (a *Record) WithUserAgent(req *http.Request) *Record {
	if req != nil {
		a.fields["user_agent"] = req.UserAgent()
	}
	return a
}

// WithRequestID sets the request id of the Record.
func (a *Record) WithRequestID(id string) *Record {
	if id != "" {
		a.fields["request_id"] = id
	}
	return a
}

// WithStatus sets the response status of the Record.
func (a *Record) WithStatus(status int) *Record {
	a.fields["status"] = status
	return a
}

// WithLatency sets the total latency in milliseconds.
func (a *Record) WithLatency(latency time.Duration) *Record {
	a.fields["latency_total"] = latency.Milliseconds()
	return a
}

// WithRPCMethod sets the JSON-RPC method name.
func (a *Record) WithRPCMethod(method string) *Record {
	if method != "" {
		a.fields["rpc_method"] = method
	}
	return a
}

// WithRouting sets the routing decision fields. Empty values are skipped.
func (a *Record) WithRouting(destination, reason, blockRef, mode string) *Record {
	for k, v := range map[string]string{
		"destination": destination,
		"reason":      reason,
		"block_ref":   blockRef,
		"mode":        mode,
	} {
		if v != "" {
			a.fields[k] = v
		}
	}
	return a
}

// WithFields merges extra fields, e.g. an upstream error classification.
func (a *Record) WithFields(fields logrus.Fields) *Record {
	for k, v := range fields {
		a.fields[k] = v
	}
	return a
}

// Fields returns a logrus.Fields intended for logging.
func (a *Record) Fields() logrus.Fields {
	return a.fields
}

// Filter returns a copy of in holding only allowedFields. The prefix is
// always kept. An empty allow list keeps everything.
func Filter(in logrus.Fields, allowedFields []string) logrus.Fields {
	if len(allowedFields) == 0 {
		return in
	}

	allowed := make(map[string]struct{}, len(allowedFields)+1)
	for _, field := range allowedFields {
		allowed[field] = struct{}{}
	}
	allowed["prefix"] = struct{}{}

	out := make(logrus.Fields, len(allowedFields)+1)
	for k, v := range in {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out
}
