// Package web adapts typed handler functions into composable HTTP services.
// Handler parameters and results are plain Go values: extractors produce the
// parameters from the request, and responders turn the result into a response.
//
// A handler is paired with one extractor per parameter:
//
//	web.Get(r, "/items/{id}", web.Func2(getItem),
//	    web.Extract2(web.Path[int]("id"), web.OrDefault(web.Query[bool]("full"), false)))
//
//	func getItem(ctx context.Context, id int, full bool) (*Item, error)
//
// Each request runs through three phases in order: extraction, the handler
// call, and conversion of the result into a response. Extraction and
// conversion failures are rendered by the route's ErrorRenderer (RFC 9457
// problem details by default); the handler is never called when extraction
// fails. A handler error is rendered the same way.
//
// Work is expressed as a Future that is polled, never blocked on, so a
// dispatch can be driven from any executor. Serve and Router drive them on
// the net/http serving goroutine with Block.
//
// Services compose with transforms, func(Service) Service:
//
//	r := web.New()
//	r.Use(web.RequestID(), web.Recovery(nil), web.Logger(nil), web.Timeout(5*time.Second))
package web
