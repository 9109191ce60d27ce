// Package httpctx holds typed request context values.
package httpctx

import (
	"context"
	"net/http"
)

type contextKey string

// Value is a typed accessor for a request context key.
type Value[T any] struct {
	key contextKey
}

// NewValue returns an accessor for key.
func NewValue[T any](key string) *Value[T] {
	return &Value[T]{key: contextKey(key)}
}

// Get returns the value stored in r, or the zero value.
func (v *Value[T]) Get(r *http.Request) (T, bool) {
	val, ok := r.Context().Value(v.key).(T)
	return val, ok
}

// Set returns a shallow copy of r carrying val.
func (v *Value[T]) Set(r *http.Request, val T) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), v.key, val))
}
