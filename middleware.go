package web

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery returns a transform that turns a panic in the wrapped service,
// whether raised by Call or while polling its future, into a 500 response.
func Recovery(logger *slog.Logger) Transform {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			recovered := func(rec any) *Response {
				logger.ErrorContext(head.Context(), "panic recovered",
					"panic", rec,
					"stack", string(debug.Stack()),
					"method", head.Method(),
					"path", head.Path(),
				)
				return renderError(rendererFrom(head.Context()), &HTTPError{
					Status:  http.StatusInternalServerError,
					Message: http.StatusText(http.StatusInternalServerError),
				}, head)
			}

			inner, resp := callRecovered(next, req, recovered)
			if inner == nil {
				return Ready(resp)
			}
			return FutureFunc[*Response](func(w *Waker) (resp *Response, ok bool, err error) {
				defer func() {
					if rec := recover(); rec != nil {
						resp, ok, err = recovered(rec), true, nil
					}
				}()
				return inner.Poll(w)
			})
		})
	}
}

func callRecovered(next Service, req *Request, recovered func(any) *Response) (f Future[*Response], resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			f, resp = nil, recovered(rec)
		}
	}()
	return next.Call(req), nil
}
