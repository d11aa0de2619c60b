// Command genarity writes the fixed-arity handler family: TupleN, FuncN
// and ExtractN for N in 2..maxArity, plus their tests.
//
// Ten is the ceiling, matching the widest handler signature worth writing
// by hand; raise maxArity and re-run go generate to extend it.
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"log"
	"os"
	"strings"
	"text/template"
)

const maxArity = 10

const letters = "ABCDEFGHIJ"

// arity describes one member of the family.
type arity struct {
	N      int
	Params []param
}

type param struct {
	Index int
	Type  string // type parameter name, e.g. "A"
	Arg   string // argument name, e.g. "a"
	Lit   string // literal used by the generated test
	Kind  string // Go type of Lit
}

func (a arity) TypeList() string { return a.join(func(p param) string { return p.Type }) }

func (a arity) Tuple() string { return fmt.Sprintf("Tuple%d[%s]", a.N, a.TypeList()) }

func (a arity) join(f func(param) string) string {
	parts := make([]string, len(a.Params))
	for i, p := range a.Params {
		parts[i] = f(p)
	}
	return strings.Join(parts, ", ")
}

func (a arity) Args() string {
	return a.join(func(p param) string { return p.Arg + " " + p.Type })
}

func (a arity) Fields() string {
	return a.join(func(p param) string { return fmt.Sprintf("p.V%d", p.Index) })
}

func (a arity) TestArgs() string {
	return a.join(func(p param) string { return p.Arg + " " + p.Kind })
}

func (a arity) TestNames() string { return a.join(func(p param) string { return p.Arg }) }

func (a arity) TestLits() string {
	return a.join(func(p param) string { return "lit(" + p.Lit + ")" })
}

func (a arity) TestWant() string { return a.join(func(p param) string { return p.Lit }) }

func newArity(n int) arity {
	a := arity{N: n}
	for i := range n {
		p := param{
			Index: i,
			Type:  string(letters[i]),
			Arg:   strings.ToLower(string(letters[i])),
		}
		// Alternate types so a swapped position cannot go unnoticed.
		if i%2 == 0 {
			p.Lit, p.Kind = fmt.Sprintf("%d", i), "int"
		} else {
			p.Lit, p.Kind = fmt.Sprintf("%q", fmt.Sprint(i)), "string"
		}
		a.Params = append(a.Params, p)
	}
	return a
}

var srcTmpl = template.Must(template.New("src").Parse(`// Code generated by genarity; DO NOT EDIT.

package web

import "context"
{{range .}}
// Tuple{{.N}} holds the extracted parameters of a {{.N}}-parameter handler, in declared order.
type Tuple{{.N}}[{{.TypeList}} any] struct {
{{- range .Params}}
	V{{.Index}} {{.Type}}
{{- end}}
}

// Func{{.N}} adapts a function with {{.N}} parameters. The tuple produced by
// Extract{{.N}} is unpacked into its arguments in declared order.
func Func{{.N}}[{{.TypeList}}, O any](fn func(ctx context.Context, {{.Args}}) (O, error)) Handler[{{.Tuple}}, O] {
	return HandlerFunc[{{.Tuple}}, O](func(ctx context.Context, p {{.Tuple}}) Future[O] {
		return Lazy(func() (O, error) { return fn(ctx, {{.Fields}}) })
	})
}

// Extract{{.N}} composes one extractor per position into a single extraction of a Tuple{{.N}}.
func Extract{{.N}}[{{.TypeList}} any]({{range $i, $p := .Params}}{{if $i}}, {{end}}e{{$p.Arg}} Extractor[{{$p.Type}}]{{end}}) Extractor[{{.Tuple}}] {
	return ExtractorFunc[{{.Tuple}}](func(head *Head, payload *Payload) Future[{{.Tuple}}] {
		t := new({{.Tuple}})
		return join(t,
{{- range .Params}}
			slot(e{{.Arg}}.Extract(head, payload), &t.V{{.Index}}),
{{- end}}
		)
	})
}
{{end}}`))

var testTmpl = template.Must(template.New("test").Parse(`// Code generated by genarity; DO NOT EDIT.

package web_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/web"
)
{{range .}}
func TestFunc{{.N}}_declared_order(t *testing.T) {
	t.Parallel()

	var got []any
	h := web.Func{{.N}}(func(_ context.Context, {{.TestArgs}}) (string, error) {
		got = []any{ {{- .TestNames -}} }
		return "ok", nil
	})

	resp := call(t, web.Adapt(h, web.Extract{{.N}}({{.TestLits}})), newRequest(http.MethodGet, "/"))

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, []any{ {{- .TestWant -}} }, got)
}
{{end}}`))

func render(tmpl *template.Template, arities []arity, path string) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, arities); err != nil {
		log.Fatalf("genarity: execute %s: %v", path, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatalf("genarity: format %s: %v\n%s", path, err, buf.Bytes())
	}
	if err := os.WriteFile(path, src, 0o644); err != nil { //nolint:gosec // generated source is world-readable
		log.Fatalf("genarity: write %s: %v", path, err)
	}
}

func main() {
	arities := make([]arity, 0, maxArity-1)
	for n := 2; n <= maxArity; n++ {
		arities = append(arities, newArity(n))
	}
	render(srcTmpl, arities, "handler_arity.go")
	render(testTmpl, arities, "handler_arity_test.go")
}
