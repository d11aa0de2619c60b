package web

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// ETagConfig configures the ETag transform.
type ETagConfig struct {
	Weak bool // use weak ETags
}

// ETag returns a transform that tags successful GET and HEAD responses with
// a content hash and answers conditional requests: a matching If-None-Match
// yields 304 Not Modified, a mismatching If-Match 412 Precondition Failed.
// Streamed responses are passed through untouched.
func ETag(cfg ...ETagConfig) Transform {
	c := ETagConfig{}
	if len(cfg) > 0 {
		c = cfg[0]
	}

	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			if head.Method() != http.MethodGet && head.Method() != http.MethodHead {
				return next.Call(req)
			}
			return mapResponse(next.Call(req), func(resp *Response) *Response {
				if resp.Stream != nil || resp.Status < 200 || resp.Status >= 300 {
					return resp
				}

				hash := sha256.Sum256(resp.Data)
				etag := `"` + hex.EncodeToString(hash[:8]) + `"`
				if c.Weak {
					etag = "W/" + etag
				}
				resp.Header.Set("ETag", etag)

				if match := head.Header().Get("If-None-Match"); match != "" && strings.Contains(match, etag) {
					resp.Status = http.StatusNotModified
					resp.Data = nil
					return resp
				}
				if match := head.Header().Get("If-Match"); match != "" && match != "*" && !strings.Contains(match, etag) {
					return renderError(rendererFrom(head.Context()), Error(http.StatusPreconditionFailed, "etag mismatch"), head)
				}
				return resp
			})
		})
	}
}
