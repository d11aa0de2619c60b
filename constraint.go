package web

import (
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// validateConstraints checks all constraint tags on the struct fields and returns
// a ProblemDetail with all violations if any are found.
func validateConstraints(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var errs []ValidationError
	collectConstraintErrors(rv, "", &errs)

	if len(errs) > 0 {
		return &ProblemDetail{
			Type:   "about:blank",
			Title:  "Validation Failed",
			Status: http.StatusBadRequest,
			Detail: fmt.Sprintf("%d constraint violation(s)", len(errs)),
			Errors: errs,
		}
	}

	return nil
}

func collectConstraintErrors(rv reflect.Value, prefix string, errs *[]ValidationError) {
	t := rv.Type()

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Type == reflect.TypeFor[RawRequest]() {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		fv := rv.Field(i)

		// The Body field is reported under "body".
		if f.Name == "Body" && f.Type.Kind() == reflect.Struct {
			collectConstraintErrors(fv, "body", errs)
			continue
		}

		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		checkFieldConstraints(f, fv, path, errs)

		if fv.Kind() == reflect.Struct && !isParamField(f) {
			collectConstraintErrors(fv, path, errs)
		}
	}
}

// intTag parses an integer constraint tag; ok is false when absent or malformed.
func intTag(f reflect.StructField, name string) (int, bool) {
	tag := f.Tag.Get(name)
	if tag == "" {
		return 0, false
	}
	n, err := strconv.Atoi(tag)
	return n, err == nil
}

func floatTag(f reflect.StructField, name string) (float64, bool) {
	tag := f.Tag.Get(name)
	if tag == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(tag, 64)
	return n, err == nil
}

func checkFieldConstraints(f reflect.StructField, fv reflect.Value, path string, errs *[]ValidationError) {
	violate := func(value any, format string, args ...any) {
		*errs = append(*errs, ValidationError{Field: path, Message: fmt.Sprintf(format, args...), Value: value})
	}

	switch {
	case fv.Kind() == reflect.String:
		val := fv.String()
		if n, ok := intTag(f, "minLength"); ok && len(val) < n {
			violate(val, "must be at least %d characters", n)
		}
		if n, ok := intTag(f, "maxLength"); ok && len(val) > n {
			violate(val, "must be at most %d characters", n)
		}
		if tag := f.Tag.Get("pattern"); tag != "" {
			if matched, err := regexp.MatchString(tag, val); err == nil && !matched {
				violate(val, "must match pattern %s", tag)
			}
		}
		if tag := f.Tag.Get("enum"); tag != "" && !slices.Contains(strings.Split(tag, ","), val) {
			violate(val, "must be one of [%s]", tag)
		}

	case isNumericKind(fv.Kind()):
		val := toFloat64(fv)
		if lower, ok := floatTag(f, "minimum"); ok && val < lower {
			violate(val, "must be at least %s", f.Tag.Get("minimum"))
		}
		if upper, ok := floatTag(f, "maximum"); ok && val > upper {
			violate(val, "must be at most %s", f.Tag.Get("maximum"))
		}

	case fv.Kind() == reflect.Slice:
		length := fv.Len()
		if n, ok := intTag(f, "minItems"); ok && length < n {
			violate(length, "must have at least %d items", n)
		}
		if n, ok := intTag(f, "maxItems"); ok && length > n {
			violate(length, "must have at most %d items", n)
		}
	}
}

func isNumericKind(k reflect.Kind) bool {
	//exhaustive:ignore
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func toFloat64(v reflect.Value) float64 {
	//exhaustive:ignore
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default: // float32, float64
		return v.Float()
	}
}
