package web

// BodyLimit returns a transform that limits the request body size.
// Extractors reading past maxBytes fail with a 413 Payload Too Large.
func BodyLimit(maxBytes int64) Transform {
	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			req.Payload().Limit(maxBytes)
			return next.Call(req)
		})
	}
}
