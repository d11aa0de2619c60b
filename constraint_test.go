package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/web"
	"github.com/bjaus/web/webtest"
)

// accepting answers 204 for any T that Bind accepts, so the response shows
// whether constraint checks let the request through.
func accepting[T any]() web.Service {
	return web.Adapt(web.Func1(func(context.Context, T) (web.Responder, error) {
		return web.NoContent(), nil
	}), web.Bind[T]())
}

// violations decodes a rendered validation problem into field → message.
func violations(t *testing.T, resp *web.Response) map[string]string {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, resp.Status)
	require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var pd web.ProblemDetail
	require.NoError(t, json.Unmarshal(resp.Data, &pd))
	assert.Equal(t, "Validation Failed", pd.Title)
	assert.Equal(t, http.StatusBadRequest, pd.Status)

	got := make(map[string]string, len(pd.Errors))
	for _, e := range pd.Errors {
		got[e.Field] = e.Message
	}
	return got
}

type signup struct {
	Name   string   `json:"name" minLength:"3" maxLength:"8"`
	Email  string   `json:"email" pattern:"^[^@]+@[^@]+$"`
	Role   string   `json:"role" enum:"admin,user"`
	Age    int      `json:"age" minimum:"18" maximum:"120"`
	Seats  uint     `json:"seats" minimum:"1"`
	Budget float64  `json:"budget" maximum:"99.99"`
	Tags   []string `json:"tags" minItems:"1" maxItems:"3"`
}

func TestBind_constraints(t *testing.T) {
	t.Parallel()

	valid := func() signup {
		return signup{Name: "alice", Email: "a@b.c", Role: "user", Age: 30, Seats: 2, Budget: 10, Tags: []string{"go"}}
	}

	tests := map[string]struct {
		mutate func(*signup)
		want   map[string]string
	}{
		"valid":                {mutate: func(*signup) {}},
		"bounds are inclusive": {mutate: func(s *signup) { s.Name, s.Age, s.Budget = "abc", 18, 99.99 }},
		"name too short": {
			mutate: func(s *signup) { s.Name = "al" },
			want:   map[string]string{"name": "must be at least 3 characters"},
		},
		"name too long": {
			mutate: func(s *signup) { s.Name = "alexandria" },
			want:   map[string]string{"name": "must be at most 8 characters"},
		},
		"email pattern": {
			mutate: func(s *signup) { s.Email = "nobody" },
			want:   map[string]string{"email": "must match pattern ^[^@]+@[^@]+$"},
		},
		"role enum": {
			mutate: func(s *signup) { s.Role = "root" },
			want:   map[string]string{"role": "must be one of [admin,user]"},
		},
		"int below minimum": {
			mutate: func(s *signup) { s.Age = 17 },
			want:   map[string]string{"age": "must be at least 18"},
		},
		"int above maximum": {
			mutate: func(s *signup) { s.Age = 121 },
			want:   map[string]string{"age": "must be at most 120"},
		},
		"uint below minimum": {
			mutate: func(s *signup) { s.Seats = 0 },
			want:   map[string]string{"seats": "must be at least 1"},
		},
		"float above maximum": {
			mutate: func(s *signup) { s.Budget = 100 },
			want:   map[string]string{"budget": "must be at most 99.99"},
		},
		"too few items": {
			mutate: func(s *signup) { s.Tags = nil },
			want:   map[string]string{"tags": "must have at least 1 items"},
		},
		"too many items": {
			mutate: func(s *signup) { s.Tags = []string{"a", "b", "c", "d"} },
			want:   map[string]string{"tags": "must have at most 3 items"},
		},
		"all violations are reported": {
			mutate: func(s *signup) { s.Name, s.Role, s.Age, s.Tags = "a", "root", 5, nil },
			want: map[string]string{
				"name": "must be at least 3 characters",
				"role": "must be one of [admin,user]",
				"age":  "must be at least 18",
				"tags": "must have at least 1 items",
			},
		},
	}

	svc := accepting[signup]()
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			in := valid()
			tc.mutate(&in)
			resp := call(t, svc, webtest.NewRequest(http.MethodPost, "/signup").JSON(t, in).Build())

			if tc.want == nil {
				assert.Equal(t, http.StatusNoContent, resp.Status)
				return
			}
			assert.Equal(t, tc.want, violations(t, resp))
		})
	}
}

func TestBind_constraints_detail_counts_violations(t *testing.T) {
	t.Parallel()

	resp := call(t, accepting[signup](), webtest.NewRequest(http.MethodPost, "/").JSON(t, signup{}).Build())
	require.Equal(t, http.StatusBadRequest, resp.Status)

	var pd web.ProblemDetail
	require.NoError(t, json.Unmarshal(resp.Data, &pd))
	assert.Equal(t, "6 constraint violation(s)", pd.Detail)
}

type address struct {
	City string `json:"city" minLength:"2"`
}

type withAddress struct {
	Address address `json:"address"`
}

type orderUpdate struct {
	ID   string `path:"id" minLength:"3"`
	Body struct {
		Note string `json:"note" maxLength:"4"`
	}
}

type withHidden struct {
	Skipped string `json:"-" minLength:"100"`
	hidden  string `minLength:"100"` //nolint:unused
	Name    string `json:"name"`
}

type withRaw struct {
	web.RawRequest
	Page int `query:"page" minimum:"1"`
}

func TestBind_constraint_structure(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		svc  web.Service
		req  *web.Request
		want map[string]string
	}{
		"nested struct reported with its path": {
			svc:  accepting[withAddress](),
			req:  webtest.NewRequest(http.MethodPost, "/").Body("application/json", []byte(`{"address":{"city":"x"}}`)).Build(),
			want: map[string]string{"address.city": "must be at least 2 characters"},
		},
		"nested struct valid": {
			svc: accepting[withAddress](),
			req: webtest.NewRequest(http.MethodPost, "/").Body("application/json", []byte(`{"address":{"city":"NYC"}}`)).Build(),
		},
		"Body field reported under body": {
			svc:  accepting[orderUpdate](),
			req:  webtest.NewRequest(http.MethodPatch, "/orders/ord1").PathValue("id", "ord1").Body("application/json", []byte(`{"note":"too long"}`)).Build(),
			want: map[string]string{"body.note": "must be at most 4 characters"},
		},
		"path parameter checked": {
			svc:  accepting[orderUpdate](),
			req:  webtest.NewRequest(http.MethodPatch, "/orders/o1").PathValue("id", "o1").Body("application/json", []byte(`{"note":"ok"}`)).Build(),
			want: map[string]string{"ID": "must be at least 3 characters"},
		},
		"json dash and unexported fields skipped": {
			svc: accepting[withHidden](),
			req: webtest.NewRequest(http.MethodPost, "/").Body("application/json", []byte(`{"name":"n"}`)).Build(),
		},
		"raw request skipped, query checked": {
			svc:  accepting[withRaw](),
			req:  newRequest(http.MethodGet, "/list?page=0"),
			want: map[string]string{"Page": "must be at least 1"},
		},
		"raw request with valid query": {
			svc: accepting[withRaw](),
			req: newRequest(http.MethodGet, "/list?page=2"),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := call(t, tc.svc, tc.req)
			if tc.want == nil {
				assert.Equal(t, http.StatusNoContent, resp.Status)
				return
			}
			assert.Equal(t, tc.want, violations(t, resp))
		})
	}
}

func TestValidateConstraints_non_struct(t *testing.T) {
	t.Parallel()

	require.NoError(t, web.ValidateConstraints("not a struct"))
	require.NoError(t, web.ValidateConstraints(new(int)))
}
