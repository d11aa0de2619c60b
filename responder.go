package web

import (
	"encoding/json"
	"net/http"
	"reflect"
)

// Responder converts a handler output into a response body. Conversion may
// fail; the adapter renders such failures through its ErrorRenderer.
type Responder interface {
	Respond(head *Head) Future[Body]
}

// ResponderFunc adapts a function into a Responder.
type ResponderFunc func(head *Head) Future[Body]

// Respond calls f(head).
func (f ResponderFunc) Respond(head *Head) Future[Body] { return f(head) }

// Text responds with a plain-text body.
func Text(status int, s string) Responder {
	h := make(http.Header)
	h.Set("Content-Type", "text/plain; charset=utf-8")
	return Body{Status: status, Header: h, Data: []byte(s)}
}

// JSON responds with v encoded as JSON regardless of the Accept header.
func JSON(status int, v any) Responder {
	return ResponderFunc(func(*Head) Future[Body] {
		data, err := json.Marshal(v)
		if err != nil {
			return Fail[Body](err)
		}
		h := make(http.Header)
		h.Set("Content-Type", "application/json")
		return Ready(Body{Status: status, Header: h, Data: append(data, '\n')})
	})
}

// NoContent responds with 204 and no body.
func NoContent() Responder {
	return Body{Status: http.StatusNoContent}
}

// Redirect is returned from a handler to issue an HTTP redirect.
type Redirect struct {
	URL    string
	Status int
}

// Respond implements Responder. The status defaults to 302 Found.
func (rd *Redirect) Respond(*Head) Future[Body] {
	status := rd.Status
	if status == 0 {
		status = http.StatusFound
	}
	h := make(http.Header)
	h.Set("Location", rd.URL)
	return Ready(Body{Status: status, Header: h})
}

// responderFor converts a handler output into a Responder. Values that are
// not Responders are encoded with the negotiated codec; nil and Void
// outputs produce an empty body.
func responderFor(v any, defaultStatus int) Responder {
	if r, ok := v.(Responder); ok && !isNil(v) {
		return r
	}
	if v == nil || isNil(v) {
		return Body{Status: defaultStatus}
	}
	switch v.(type) {
	case Void, *Void:
		return Body{Status: defaultStatus}
	}
	return encoded{value: v, status: defaultStatus}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	//exhaustive:ignore
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// encoded is the default Responder: it negotiates an encoder from the Accept
// header and honours StatusCoder, HeaderSetter and CookieSetter.
type encoded struct {
	value  any
	status int
}

func (e encoded) Respond(head *Head) Future[Body] {
	h := make(http.Header)
	if cs, ok := e.value.(CookieSetter); ok {
		for _, c := range cs.Cookies() {
			h.Add("Set-Cookie", c.String())
		}
	}
	if hs, ok := e.value.(HeaderSetter); ok {
		hs.SetHeaders(h)
	}

	status := e.status
	// Let the response override the status dynamically.
	if sc, ok := e.value.(StatusCoder); ok {
		status = sc.StatusCode()
	}

	data, contentType, err := encodeResponseBody(head, e.value)
	if err != nil {
		return Fail[Body](err)
	}
	h.Set("Content-Type", contentType)
	return Ready(Body{Status: status, Header: h, Data: data})
}
