package web

// Group is a collection of routes under a shared prefix with shared transforms.
type Group struct {
	parent     Registrar
	prefix     string
	transforms []Transform
}

// Group creates a route group with the given prefix. The transforms apply
// to the group's routes only, inside the router's own transforms.
func (r *Router) Group(prefix string, transforms ...Transform) *Group {
	return &Group{parent: r, prefix: prefix, transforms: transforms}
}

// Group creates a nested group. Its prefix and transforms extend g's.
func (g *Group) Group(prefix string, transforms ...Transform) *Group {
	return &Group{parent: g, prefix: prefix, transforms: transforms}
}

// Use adds transforms to the group, for routes registered afterwards.
func (g *Group) Use(t ...Transform) {
	g.transforms = append(g.transforms, t...)
}

// addRoute implements Registrar for Group.
func (g *Group) addRoute(rt *route) {
	rt.pattern = g.prefix + rt.pattern
	rt.transforms = append(append([]Transform(nil), g.transforms...), rt.transforms...)
	g.parent.addRoute(rt)
}

func (g *Group) errorRenderer() ErrorRenderer { return g.parent.errorRenderer() }
