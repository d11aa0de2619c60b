package web

import "context"

type contextKey[T any] struct{}

// SetValue returns req with a typed value stored in its context. For use in
// transforms; handlers read it back with GetValue or the ContextValue extractor.
func SetValue[T any](req *Request, val T) *Request {
	ctx := context.WithValue(req.Head().Context(), contextKey[T]{}, val)
	return req.WithContext(ctx)
}

// GetValue retrieves a typed value from the request context.
func GetValue[T any](ctx context.Context) (T, bool) {
	val, ok := ctx.Value(contextKey[T]{}).(T)
	return val, ok
}
