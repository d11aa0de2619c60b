package web

import "net/http"

// Registrar is the interface accepted by the registration functions.
// Both *Router and *Group implement it.
type Registrar interface {
	addRoute(rt *route)
	errorRenderer() ErrorRenderer
}

// Handle registers the handler h, fed by the extractor ex, for requests
// matching method and pattern. An empty method matches any method. Patterns
// use http.ServeMux syntax, so path wildcards such as "/items/{id}" are
// available to the Path extractor.
func Handle[T, O any](reg Registrar, method, pattern string, h Handler[T, O], ex Extractor[T], opts ...AdapterOption) {
	opts = append([]AdapterOption{WithErrorRenderer(reg.errorRenderer())}, opts...)
	HandleService(reg, method, pattern, Adapt(h, ex, opts...))
}

// HandleService registers svc for requests matching method and pattern.
func HandleService(reg Registrar, method, pattern string, svc Service) {
	reg.addRoute(&route{method: method, pattern: pattern, svc: svc})
}

// Get registers a GET handler.
func Get[T, O any](reg Registrar, pattern string, h Handler[T, O], ex Extractor[T], opts ...AdapterOption) {
	Handle(reg, http.MethodGet, pattern, h, ex, opts...)
}

// Post registers a POST handler.
func Post[T, O any](reg Registrar, pattern string, h Handler[T, O], ex Extractor[T], opts ...AdapterOption) {
	Handle(reg, http.MethodPost, pattern, h, ex, opts...)
}

// Put registers a PUT handler.
func Put[T, O any](reg Registrar, pattern string, h Handler[T, O], ex Extractor[T], opts ...AdapterOption) {
	Handle(reg, http.MethodPut, pattern, h, ex, opts...)
}

// Patch registers a PATCH handler.
func Patch[T, O any](reg Registrar, pattern string, h Handler[T, O], ex Extractor[T], opts ...AdapterOption) {
	Handle(reg, http.MethodPatch, pattern, h, ex, opts...)
}

// Delete registers a DELETE handler.
func Delete[T, O any](reg Registrar, pattern string, h Handler[T, O], ex Extractor[T], opts ...AdapterOption) {
	Handle(reg, http.MethodDelete, pattern, h, ex, opts...)
}

// Raw registers a plain http.Handler. It bypasses the router's transforms
// and error renderer.
func Raw(reg Registrar, method, pattern string, h http.Handler) {
	reg.addRoute(&route{method: method, pattern: pattern, raw: h})
}
