package web

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultAccessLogFormat is a common-log style value for AccessLogConfig.Format.
const DefaultAccessLogFormat = `%a "%r" %s %b "%{Referer}i" "%{User-Agent}i" %T`

// AccessLogConfig configures the AccessLog transform.
//
// Format directives:
//
//	%%        a percent sign
//	%a        remote address
//	%t        time the request started (RFC 3339)
//	%r        request line, e.g. "GET /items?q=x HTTP/1.1"
//	%s        response status code
//	%b        response body size in bytes
//	%P        process id
//	%T        time taken, in seconds with six decimals
//	%D        time taken, in milliseconds with six decimals
//	%U        request URL path
//	%{NAME}i  request header NAME
//	%{NAME}o  response header NAME
//	%{NAME}e  environment variable NAME
type AccessLogConfig struct {
	Logger  *slog.Logger // default: slog.Default()
	Level   slog.Level   // default: slog.LevelInfo
	Format  string       // empty: log structured attributes instead of a line
	Exclude []string     // request paths that are not logged
}

// Logger returns a transform that logs each request as structured attributes.
func Logger(logger *slog.Logger) Transform {
	return AccessLog(AccessLogConfig{Logger: logger})
}

// AccessLog returns a transform that logs each request once its response is
// ready. A streamed response is logged when its stream has been read to the
// end or closed, with the bytes actually sent as its size.
func AccessLog(cfg AccessLogConfig) Transform {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	exclude := make(map[string]struct{}, len(cfg.Exclude))
	for _, p := range cfg.Exclude {
		exclude[p] = struct{}{}
	}
	var format []formatUnit
	if cfg.Format != "" {
		format = parseLogFormat(cfg.Format)
	}

	return func(next Service) Service {
		return wrap(next, func(req *Request) Future[*Response] {
			head := req.Head()
			if _, skip := exclude[head.Path()]; skip {
				return next.Call(req)
			}
			start := time.Now()
			return mapResponse(next.Call(req), func(resp *Response) *Response {
				log := func(size int) {
					ctx := head.Context()
					if format == nil {
						cfg.Logger.LogAttrs(ctx, cfg.Level, "request", accessAttrs(head, resp, size, start)...)
					} else {
						cfg.Logger.Log(ctx, cfg.Level, renderLogFormat(format, head, resp, size, start))
					}
				}
				if resp.Stream == nil {
					log(resp.Size())
					return resp
				}
				resp.Stream = &loggedStream{r: resp.Stream, n: len(resp.Data), done: log}
				return resp
			})
		})
	}
}

// loggedStream counts the bytes read from a streamed body and reports the
// total once, at end of stream or on Close.
type loggedStream struct {
	r    io.Reader
	n    int
	once sync.Once
	done func(size int)
}

func (s *loggedStream) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.n += n
	if err != nil {
		s.finish()
	}
	return n, err
}

func (s *loggedStream) Close() error {
	var err error
	if c, ok := s.r.(io.Closer); ok {
		err = c.Close()
	}
	s.finish()
	return err
}

func (s *loggedStream) finish() {
	s.once.Do(func() { s.done(s.n) })
}

func accessAttrs(head *Head, resp *Response, size int, start time.Time) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", head.Method()),
		slog.String("path", head.Path()),
		slog.Int("status", resp.Status),
		slog.Duration("latency", time.Since(start)),
		slog.Int("size", size),
		slog.String("remote", head.RemoteAddr()),
	}
	if id := GetRequestID(head.Context()); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	return attrs
}

// formatUnit is one piece of a parsed access log format: literal text, or a
// directive with an optional header or variable name.
type formatUnit struct {
	directive byte // 0 for literal text
	text      string
}

var logFormatRe = regexp.MustCompile(`%(\{([A-Za-z0-9\-_]+)\}([ioe])|[atrsbPTDU%]?)`)

func parseLogFormat(s string) []formatUnit {
	var units []formatUnit
	idx := 0
	for _, m := range logFormatRe.FindAllStringSubmatchIndex(s, -1) {
		if m[0] != idx {
			units = append(units, formatUnit{text: s[idx:m[0]]})
		}
		idx = m[1]

		switch {
		case m[4] >= 0: // %{NAME}x
			units = append(units, formatUnit{directive: s[m[6]], text: s[m[4]:m[5]]})
		case m[3]-m[2] == 1 && s[m[2]] == '%':
			units = append(units, formatUnit{text: "%"})
		case m[3]-m[2] == 1:
			units = append(units, formatUnit{directive: s[m[2]]})
		default: // a lone '%'
			units = append(units, formatUnit{text: s[m[0]:m[1]]})
		}
	}
	if idx != len(s) {
		units = append(units, formatUnit{text: s[idx:]})
	}
	return units
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderLogFormat(units []formatUnit, head *Head, resp *Response, size int, start time.Time) string {
	var b strings.Builder
	elapsed := time.Since(start)
	for _, u := range units {
		switch u.directive {
		case 0:
			b.WriteString(u.text)
		case 'a':
			b.WriteString(orDash(head.RemoteAddr()))
		case 't':
			b.WriteString(start.Format(time.RFC3339))
		case 'r':
			fmt.Fprintf(&b, "%s %s %s", head.Method(), head.URL().RequestURI(), head.Proto())
		case 's':
			b.WriteString(strconv.Itoa(resp.Status))
		case 'b':
			if size >= 0 {
				b.WriteString(strconv.Itoa(size))
			} else {
				b.WriteString("-")
			}
		case 'P':
			b.WriteString(strconv.Itoa(os.Getpid()))
		case 'T':
			fmt.Fprintf(&b, "%.6f", elapsed.Seconds())
		case 'D':
			fmt.Fprintf(&b, "%.6f", float64(elapsed.Nanoseconds())/1e6)
		case 'U':
			b.WriteString(head.Path())
		case 'i':
			b.WriteString(orDash(head.Header().Get(u.text)))
		case 'o':
			b.WriteString(orDash(resp.Header.Get(u.text)))
		case 'e':
			b.WriteString(orDash(os.Getenv(u.text)))
		}
	}
	return b.String()
}
