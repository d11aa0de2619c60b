package web

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
)

// Extractor produces a typed value from a request head and payload.
//
// Extract is called once per request. It may take the payload; the body is
// handed to exactly one extractor. Failures resolve the returned future with
// an error, which the adapter renders instead of calling the handler.
type Extractor[T any] interface {
	Extract(head *Head, payload *Payload) Future[T]
}

// ExtractorFunc adapts a function into an Extractor.
type ExtractorFunc[T any] func(head *Head, payload *Payload) Future[T]

// Extract calls f(head, payload).
func (f ExtractorFunc[T]) Extract(head *Head, payload *Payload) Future[T] { return f(head, payload) }

// Param is the set of types path, query, header and cookie values parse into.
type Param interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// parseParam parses s into a T. time.Duration values use time.ParseDuration.
func parseParam[T Param](s string) (T, error) {
	var v T
	err := setFieldValue(reflect.ValueOf(&v).Elem(), s)
	return v, err
}

// scalar builds an extractor reading a single named value from the head.
func scalar[T Param](kind error, name string, lookup func(*Head, string) (string, bool)) Extractor[T] {
	return ExtractorFunc[T](func(head *Head, _ *Payload) Future[T] {
		raw, ok := lookup(head, name)
		if !ok {
			return Fail[T](&BindError{Kind: kind, Name: name, Err: ErrMissing})
		}
		v, err := parseParam[T](raw)
		if err != nil {
			return Fail[T](&BindError{Kind: kind, Name: name, Err: err})
		}
		return Ready(v)
	})
}

// None extracts nothing. It pairs with Func0 handlers.
func None() Extractor[Void] {
	return ExtractorFunc[Void](func(*Head, *Payload) Future[Void] {
		return Ready(Void{})
	})
}

// Path extracts the named path wildcard, e.g. {id} in "/items/{id}".
func Path[T Param](name string) Extractor[T] {
	return scalar[T](ErrBindPath, name, func(h *Head, name string) (string, bool) {
		v := h.PathValue(name)
		return v, v != ""
	})
}

// Query extracts the named query parameter. A missing parameter fails
// extraction; wrap with OrDefault to make it optional.
func Query[T Param](name string) Extractor[T] {
	return scalar[T](ErrBindQuery, name, func(h *Head, name string) (string, bool) {
		vs, ok := h.URL().Query()[name]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	})
}

// Header extracts the named request header.
func Header[T Param](name string) Extractor[T] {
	return scalar[T](ErrBindHeader, name, func(h *Head, name string) (string, bool) {
		vs := h.Header().Values(name)
		if len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	})
}

// Cookie extracts the value of the named cookie.
func Cookie[T Param](name string) Extractor[T] {
	return scalar[T](ErrBindCookie, name, func(h *Head, name string) (string, bool) {
		c, err := h.Cookie(name)
		if err != nil {
			return "", false
		}
		return c.Value, true
	})
}

// OrDefault resolves to def whenever ex fails.
func OrDefault[T any](ex Extractor[T], def T) Extractor[T] {
	return ExtractorFunc[T](func(head *Head, payload *Payload) Future[T] {
		inner := ex.Extract(head, payload)
		return FutureFunc[T](func(w *Waker) (T, bool, error) {
			v, ok, err := inner.Poll(w)
			if !ok {
				return v, false, nil
			}
			if err != nil {
				return def, true, nil
			}
			return v, true, nil
		})
	})
}

// takeBody takes the payload for a body-reading extractor.
func takeBody(payload *Payload) (io.ReadCloser, error) {
	body, err := payload.Take()
	if err != nil {
		return nil, &BindError{Kind: ErrBindBody, Err: err, Status: http.StatusInternalServerError}
	}
	return body, nil
}

// DecodeBody decodes the request body into a T with the decoder matching the
// request Content-Type (JSON when absent). An empty body yields the zero T.
func DecodeBody[T any]() Extractor[T] {
	return ExtractorFunc[T](func(head *Head, payload *Payload) Future[T] {
		body, err := takeBody(payload)
		if err != nil {
			return Fail[T](err)
		}
		return Lazy(func() (T, error) {
			defer body.Close() //nolint:errcheck // request bodies are closed by the server too
			var v T
			err := decodeRequestBody(head, body, &v)
			return v, err
		})
	})
}

// Bytes reads the whole request body.
func Bytes() Extractor[[]byte] {
	return ExtractorFunc[[]byte](func(_ *Head, payload *Payload) Future[[]byte] {
		body, err := takeBody(payload)
		if err != nil {
			return Fail[[]byte](err)
		}
		return Lazy(func() ([]byte, error) {
			defer body.Close() //nolint:errcheck // request bodies are closed by the server too
			data, err := io.ReadAll(body)
			if err != nil {
				return nil, &BindError{Kind: ErrBindBody, Err: err}
			}
			return data, nil
		})
	})
}

// Bind populates a T from struct tags: path, query, header and cookie tags
// bind parameters (with a "default" tag as fallback), a Body field (or the
// whole struct, when it has no parameter tags) is decoded from the body, and
// an embedded RawRequest receives the request. The result is then checked
// against constraint tags, SelfValidator and each validator.
func Bind[T any](validators ...Validator) Extractor[T] {
	return ExtractorFunc[T](func(head *Head, payload *Payload) Future[T] {
		var body io.ReadCloser
		if needsBody[T]() {
			b, err := takeBody(payload)
			if err != nil {
				return Fail[T](err)
			}
			body = b
		}
		return Lazy(func() (T, error) {
			if body != nil {
				defer body.Close() //nolint:errcheck // request bodies are closed by the server too
			}
			v, err := bindRequest[T](head, body)
			if err != nil {
				return v, err
			}
			if err := validate(&v, validators); err != nil {
				return v, err
			}
			return v, nil
		})
	})
}

// HeadOf extracts the request head itself.
func HeadOf() Extractor[*Head] {
	return ExtractorFunc[*Head](func(head *Head, _ *Payload) Future[*Head] {
		return Ready(head)
	})
}

// ContextValue extracts a value stored in the request context with SetValue.
// A missing value is a server-side wiring fault and renders as 500.
func ContextValue[T any]() Extractor[T] {
	return ExtractorFunc[T](func(head *Head, _ *Payload) Future[T] {
		v, ok := GetValue[T](head.Context())
		if !ok {
			err := fmt.Errorf("%T: %w", v, ErrMissing)
			return Fail[T](&BindError{Kind: ErrBindValue, Err: err, Status: http.StatusInternalServerError})
		}
		return Ready(v)
	})
}

// pollSlot polls one position of a composite extraction and stores its value.
type pollSlot func(w *Waker) (bool, error)

func slot[T any](f Future[T], dst *T) pollSlot {
	return func(w *Waker) (bool, error) {
		v, ok, err := f.Poll(w)
		if ok && err == nil {
			*dst = v
		}
		return ok, err
	}
}

// join resolves once every slot has resolved, yielding *t. The first failing
// slot, in positional order among those ready, fails the whole extraction.
func join[T any](t *T, slots ...pollSlot) Future[T] {
	done := make([]bool, len(slots))
	return FutureFunc[T](func(w *Waker) (T, bool, error) {
		pending := false
		for i, s := range slots {
			if done[i] {
				continue
			}
			ok, err := s(w)
			if !ok {
				pending = true
				continue
			}
			if err != nil {
				var zero T
				return zero, true, err
			}
			done[i] = true
		}
		if pending {
			var zero T
			return zero, false, nil
		}
		return *t, true, nil
	})
}
