package web_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/web"
	"github.com/bjaus/web/webtest"
)

// typed answers with data under the given content type.
func typed(contentType, data string) web.Service {
	return serviceFunc(func(req *web.Request) web.Future[*web.Response] {
		h := make(http.Header)
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		return web.Ready(web.NewResponse(req.Head(), web.Body{Header: h, Data: []byte(data)}))
	})
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

func TestCompress(t *testing.T) {
	t.Parallel()

	large := strings.Repeat(`{"k":"value"}`, 200)

	tests := map[string]struct {
		svc            web.Service
		cfg            []web.CompressConfig
		acceptEncoding string
		wantGzip       bool
		wantVary       bool
	}{
		"no accept-encoding": {
			svc: typed("application/json", large),
		},
		"large json": {
			svc:            typed("application/json", large),
			acceptEncoding: "gzip, deflate",
			wantGzip:       true,
			wantVary:       true,
		},
		"text content type": {
			svc:            typed("text/plain; charset=utf-8", large),
			acceptEncoding: "gzip",
			wantGzip:       true,
			wantVary:       true,
		},
		"small response": {
			svc:            typed("application/json", `{"k":1}`),
			acceptEncoding: "gzip",
			wantVary:       true,
		},
		"non-matching type": {
			svc:            typed("image/png", large),
			acceptEncoding: "gzip",
			wantVary:       true,
		},
		"custom min size and types": {
			svc:            typed("application/xml", "<a>tiny</a>"),
			cfg:            []web.CompressConfig{{Level: 9, MinSize: 1, Types: []string{"application/xml"}}},
			acceptEncoding: "gzip",
			wantGzip:       true,
			wantVary:       true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := webtest.NewRequest(http.MethodGet, "/")
			if tc.acceptEncoding != "" {
				b.Header("Accept-Encoding", tc.acceptEncoding)
			}
			orig := call(t, tc.svc, newRequest(http.MethodGet, "/"))
			resp := call(t, web.Chain(tc.svc, web.Compress(tc.cfg...)), b.Build())

			assert.Equal(t, tc.wantVary, resp.Header.Get("Vary") == "Accept-Encoding")
			if !tc.wantGzip {
				assert.Empty(t, resp.Header.Get("Content-Encoding"))
				assert.Equal(t, orig.Data, resp.Data)
				return
			}
			assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
			assert.Equal(t, string(orig.Data), gunzip(t, resp.Data))
		})
	}
}

func TestCompress_already_encoded(t *testing.T) {
	t.Parallel()

	inner := serviceFunc(func(req *web.Request) web.Future[*web.Response] {
		h := make(http.Header)
		h.Set("Content-Type", "application/json")
		h.Set("Content-Encoding", "br")
		return web.Ready(web.NewResponse(req.Head(), web.Body{Header: h, Data: bytes.Repeat([]byte("x"), 4096)}))
	})
	resp := call(t, web.Chain(inner, web.Compress()), webtest.NewRequest(http.MethodGet, "/").Header("Accept-Encoding", "gzip").Build())

	assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))
	assert.Len(t, resp.Data, 4096)
}

func TestCompress_stream_passes_through(t *testing.T) {
	t.Parallel()

	inner := serviceFunc(func(req *web.Request) web.Future[*web.Response] {
		h := make(http.Header)
		h.Set("Content-Type", "text/plain")
		return web.Ready(web.NewResponse(req.Head(), web.Body{Header: h, Stream: strings.NewReader(strings.Repeat("x", 4096))}))
	})
	resp := call(t, web.Chain(inner, web.Compress()), webtest.NewRequest(http.MethodGet, "/").Header("Accept-Encoding", "gzip").Build())

	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	assert.NotNil(t, resp.Stream)
}

func TestCompress_end_to_end(t *testing.T) {
	t.Parallel()

	r := web.New()
	r.Use(web.Compress(web.CompressConfig{MinSize: 1}))
	web.HandleService(r, http.MethodGet, "/big", typed("text/plain", strings.Repeat("abc", 1000)))

	req := httptest.NewRequest(http.MethodGet, "/big", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serveRecorded(r, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assert.Equal(t, strings.Repeat("abc", 1000), gunzip(t, rec.Body.Bytes()))
}
