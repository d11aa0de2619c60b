package web

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"
)

// bindCategory describes how a Bind target type is populated.
type bindCategory int

const (
	catVoid     bindCategory = iota // Void: nothing to bind
	catBodyOnly                     // entire struct is the body (no param tags, no Body field)
	catParams                       // has param tags but no Body field
	catMixed                        // has Body field (params from tagged fields, body from Body)
)

// classifyBind determines how a Bind target type should be decoded.
func classifyBind(t reflect.Type) bindCategory {
	if t == reflect.TypeFor[Void]() {
		return catVoid
	}
	if hasBodyField(t) {
		return catMixed
	}
	if hasParamTags(t) || hasRawRequest(t) {
		return catParams
	}
	return catBodyOnly
}

// bindParams binds path, query, header, and cookie values to struct fields.
func bindParams(target any, head *Head) error {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Body" {
			continue
		}

		field := v.Field(i)

		for _, src := range paramSources {
			name := f.Tag.Get(src.tag)
			if name == "" {
				continue
			}
			val := src.lookup(head, name)
			if val == "" && src.tag != "path" {
				val = f.Tag.Get("default")
			}
			if val == "" {
				continue
			}
			if err := setFieldValue(field, val); err != nil {
				return &BindError{Kind: src.kind, Name: name, Err: err}
			}
		}

		// Embed RawRequest: inject the underlying *http.Request.
		if f.Type == reflect.TypeFor[RawRequest]() {
			field.Set(reflect.ValueOf(RawRequest{Request: head.Raw()}))
		}
	}

	return nil
}

// paramSource binds one struct tag to one part of the request head.
type paramSource struct {
	tag    string
	kind   error
	lookup func(head *Head, name string) string
}

var paramSources = []paramSource{
	{tag: "path", kind: ErrBindPath, lookup: (*Head).PathValue},
	{tag: "query", kind: ErrBindQuery, lookup: func(h *Head, name string) string {
		return h.URL().Query().Get(name)
	}},
	{tag: "header", kind: ErrBindHeader, lookup: func(h *Head, name string) string {
		return h.Header().Get(name)
	}},
	{tag: "cookie", kind: ErrBindCookie, lookup: func(h *Head, name string) string {
		if c, err := h.Cookie(name); err == nil {
			return c.Value
		}
		return ""
	}},
}

// setFieldValue sets a reflect.Value from a string, supporting common scalar types.
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeFor[time.Duration]() {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}

// bindRequest populates a new T from head and, when T needs one, the body.
func bindRequest[T any](head *Head, body io.Reader) (T, error) {
	var req T
	cat := classifyBind(reflect.TypeFor[T]())
	if cat == catVoid {
		return req, nil
	}

	// Always bind params; handles path/query/header/cookie and RawRequest injection.
	if reflect.TypeFor[T]().Kind() == reflect.Struct {
		if err := bindParams(&req, head); err != nil {
			return req, err
		}
	}

	var target any
	switch cat {
	case catBodyOnly:
		target = &req
	case catMixed:
		target = reflect.ValueOf(&req).Elem().FieldByName("Body").Addr().Interface()
	default:
		return req, nil
	}

	if body == nil {
		return req, nil
	}
	if err := decodeRequestBody(head, body, target); err != nil {
		return req, err
	}
	return req, nil
}

// statusOf returns the status carried by err, or 0 when err carries none.
func statusOf(err error) int {
	if s := ErrorStatus(err); s != http.StatusInternalServerError {
		return s
	}
	return 0
}

// needsBody reports whether binding T reads the request body.
func needsBody[T any]() bool {
	cat := classifyBind(reflect.TypeFor[T]())
	return cat == catBodyOnly || cat == catMixed
}
