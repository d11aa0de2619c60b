package web

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS transform.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int // seconds
}

// CORS returns a transform that handles Cross-Origin Resource Sharing.
// If no config is provided, permissive defaults are used.
//
// Preflight OPTIONS requests are answered with 204 without calling the
// wrapped service; they reach the transform only on routes registered for
// OPTIONS or for any method.
func CORS(cfg ...CORSConfig) Transform {
	c := CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(cfg) > 0 {
		c = cfg[0]
	}

	set := func(h http.Header) {
		h.Set("Access-Control-Allow-Origin", strings.Join(c.AllowOrigins, ", "))
		h.Set("Access-Control-Allow-Methods", strings.Join(c.AllowMethods, ", "))
		h.Set("Access-Control-Allow-Headers", strings.Join(c.AllowHeaders, ", "))
		if len(c.ExposeHeaders) > 0 {
			h.Set("Access-Control-Expose-Headers", strings.Join(c.ExposeHeaders, ", "))
		}
		if c.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		if c.MaxAge > 0 {
			h.Set("Access-Control-Max-Age", strconv.Itoa(c.MaxAge))
		}
		h.Add("Vary", "Origin")
	}

	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			if req.Head().Method() == http.MethodOptions {
				resp := NewResponse(req.Head(), Body{Status: http.StatusNoContent})
				set(resp.Header)
				return Ready(resp)
			}
			return mapResponse(next.Call(req), func(resp *Response) *Response {
				set(resp.Header)
				return resp
			})
		})
	}
}
