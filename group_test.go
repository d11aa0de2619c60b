package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/web"
)

func TestGroup_prefix(t *testing.T) {
	t.Parallel()

	r := web.New()
	web.HandleService(r.Group("/v1"), http.MethodGet, "/health", respond(http.StatusOK, "v1"))
	web.HandleService(r.Group("/v1").Group("/admin"), http.MethodGet, "/stats", respond(http.StatusOK, "admin"))

	tests := map[string]struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		"prefixed":       {path: "/v1/health", wantStatus: http.StatusOK, wantBody: "v1"},
		"nested":         {path: "/v1/admin/stats", wantStatus: http.StatusOK, wantBody: "admin"},
		"unprefixed":     {path: "/health", wantStatus: http.StatusNotFound},
		"nested partial": {path: "/admin/stats", wantStatus: http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := serveRecorded(r, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
			}
		})
	}

	assert.Equal(t, []web.RouteInfo{
		{Method: http.MethodGet, Pattern: "/v1/health"},
		{Method: http.MethodGet, Pattern: "/v1/admin/stats"},
	}, r.Routes())
}

func TestGroup_transforms(t *testing.T) {
	t.Parallel()

	r := web.New()
	r.Use(tag("router"))

	admin := r.Group("/admin", tag("admin"))
	web.HandleService(admin, http.MethodGet, "/early", ok())
	admin.Use(tag("late"))
	web.HandleService(admin, http.MethodGet, "/dashboard", ok())
	web.HandleService(admin.Group("/deep", tag("deep")), http.MethodGet, "/x", ok())
	web.HandleService(r, http.MethodGet, "/public", ok())

	tests := map[string]struct {
		path      string
		wantOrder []string
	}{
		"router only": {
			path:      "/public",
			wantOrder: []string{"router"},
		},
		"group inside router": {
			path:      "/admin/early",
			wantOrder: []string{"admin", "router"},
		},
		"group Use applies to later routes": {
			path:      "/admin/dashboard",
			wantOrder: []string{"late", "admin", "router"},
		},
		"nested group": {
			path:      "/admin/deep/x",
			wantOrder: []string{"deep", "late", "admin", "router"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := serveRecorded(r, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.wantOrder, rec.Header().Values("X-Order"))
		})
	}
}
