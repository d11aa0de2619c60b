package web

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"sync"
)

// CompressConfig configures the Compress transform.
type CompressConfig struct {
	Level   int      // gzip level (1-9, default: 5)
	MinSize int      // minimum response size to compress (default: 1024)
	Types   []string // content types to compress (default: application/json, text/*)
}

// Compress returns a transform that gzip-compresses response bodies for
// clients that accept it. Streamed responses are passed through untouched.
func Compress(cfg ...CompressConfig) Transform {
	c := CompressConfig{
		Level:   5,
		MinSize: 1024,
		Types:   []string{"application/json", "text/"},
	}
	if len(cfg) > 0 {
		if cfg[0].Level > 0 {
			c.Level = cfg[0].Level
		}
		if cfg[0].MinSize > 0 {
			c.MinSize = cfg[0].MinSize
		}
		if len(cfg[0].Types) > 0 {
			c.Types = cfg[0].Types
		}
	}

	pool := &sync.Pool{
		New: func() any {
			gz, _ := gzip.NewWriterLevel(io.Discard, c.Level) //nolint:errcheck // level is pre-validated
			return gz
		},
	}

	compress := func(data []byte) ([]byte, error) {
		gz := pool.Get().(*gzip.Writer) //nolint:errcheck,forcetypeassert // pool.New always returns *gzip.Writer
		defer pool.Put(gz)

		var buf bytes.Buffer
		gz.Reset(&buf)
		if _, err := gz.Write(data); err != nil {
			return nil, err
		}
		if err := gz.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			if !strings.Contains(req.Head().Header().Get("Accept-Encoding"), "gzip") {
				return next.Call(req)
			}
			return mapResponse(next.Call(req), func(resp *Response) *Response {
				resp.Header.Add("Vary", "Accept-Encoding")
				if resp.Stream != nil || len(resp.Data) < c.MinSize || !shouldCompress(resp, c.Types) {
					return resp
				}
				data, err := compress(resp.Data)
				if err != nil {
					return resp
				}
				resp.Data = data
				resp.Header.Set("Content-Encoding", "gzip")
				return resp
			})
		})
	}
}

func shouldCompress(resp *Response, types []string) bool {
	if resp.Header.Get("Content-Encoding") != "" {
		return false
	}
	ct := resp.Header.Get("Content-Type")
	for _, t := range types {
		if strings.Contains(ct, t) {
			return true
		}
	}
	return false
}
