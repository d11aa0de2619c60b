package web

import (
	"net/http"
	"strings"
)

// HTTPSRedirect returns a transform that redirects plain HTTP requests to HTTPS.
func HTTPSRedirect() Transform {
	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			if head.Raw().TLS == nil && head.Header().Get("X-Forwarded-Proto") != "https" {
				return redirectTo(head, "https://"+head.Host()+head.URL().RequestURI())
			}
			return next.Call(req)
		})
	}
}

// NonWWWRedirect returns a transform that redirects the www subdomain to the bare host.
func NonWWWRedirect() Transform {
	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			if host, ok := strings.CutPrefix(head.Host(), "www."); ok {
				scheme := "http"
				if head.Raw().TLS != nil {
					scheme = "https"
				}
				return redirectTo(head, scheme+"://"+host+head.URL().RequestURI())
			}
			return next.Call(req)
		})
	}
}

func redirectTo(head *Head, target string) Future[*Response] {
	h := make(http.Header)
	h.Set("Location", target)
	return Ready(NewResponse(head, Body{Status: http.StatusMovedPermanently, Header: h}))
}
