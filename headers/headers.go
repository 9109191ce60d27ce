package headers

const (
	UserAgent       = "User-Agent"
	ContentType     = "Content-Type"
	ContentLength   = "Content-Length"
	ContentEncoding = "Content-Encoding"
	Accept          = "Accept"
	AcceptEncoding  = "Accept-Encoding"
	Connection      = "Connection"
	Allow           = "Allow"
)

const (
	ApplicationJSON = "application/json"
	TextPlain       = "text/plain; charset=utf-8"
)

const (
	XRealIP       = "X-Real-IP"
	XForwardFor   = "X-Forwarded-For"
	XForwardProto = "X-Forwarded-Proto"
	XRequestID    = "X-Request-ID"
	XGenerator    = "X-Generator"
)

// Router response headers
const (
	XRouterDestination = "X-Rpc-Router-Destination"
)
