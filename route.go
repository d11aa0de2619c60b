package web

import "net/http"

// RouteInfo describes a registered route.
type RouteInfo struct {
	Method  string
	Pattern string
}

// route is a registered service together with the group transforms that
// apply to it alone, or a raw http.Handler.
type route struct {
	method     string
	pattern    string
	svc        Service
	transforms []Transform
	raw        http.Handler
}

// muxPattern is the http.ServeMux pattern; an empty method matches any.
func (rt *route) muxPattern() string {
	if rt.method == "" {
		return rt.pattern
	}
	return rt.method + " " + rt.pattern
}

func (rt *route) info() RouteInfo {
	return RouteInfo{Method: rt.method, Pattern: rt.pattern}
}

// clone copies the route, replicating the handler when the service supports it.
func (rt *route) clone() *route {
	c := *rt
	if hs, ok := rt.svc.(HandlerService); ok {
		c.svc = hs.CloneHandler()
	}
	c.transforms = append([]Transform(nil), rt.transforms...)
	return &c
}
