package web

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Encoder encodes response values to a wire format.
type Encoder interface {
	ContentType() string
	Encode(w io.Writer, v any) error
}

// Decoder decodes request bodies from a wire format.
type Decoder interface {
	ContentType() string
	Decode(r io.Reader, v any) error
}

// streamCodec is an Encoder and Decoder for one media type, built from a
// codec package's streaming encode and decode functions.
type streamCodec struct {
	mediaType string
	prolog    string
	encode    func(w io.Writer, v any) error
	decode    func(r io.Reader, v any) error
}

func (c streamCodec) ContentType() string { return c.mediaType }

func (c streamCodec) Encode(w io.Writer, v any) error {
	if c.prolog != "" {
		if _, err := io.WriteString(w, c.prolog); err != nil {
			return err
		}
	}
	return c.encode(w, v)
}

// Decode leaves v untouched for an empty body.
func (c streamCodec) Decode(r io.Reader, v any) error {
	if err := c.decode(r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var (
	jsonCodec = streamCodec{
		mediaType: "application/json",
		encode:    func(w io.Writer, v any) error { return json.NewEncoder(w).Encode(v) },
		decode:    func(r io.Reader, v any) error { return json.NewDecoder(r).Decode(v) },
	}
	xmlCodec = streamCodec{
		mediaType: "application/xml",
		prolog:    xml.Header,
		encode:    func(w io.Writer, v any) error { return xml.NewEncoder(w).Encode(v) },
		decode:    func(r io.Reader, v any) error { return xml.NewDecoder(r).Decode(v) },
	}
)

// codecSet is what a router serves with. JSON is the default in both
// directions; user codecs follow the built-in ones.
type codecSet struct {
	encoders []Encoder
	decoders map[string]Decoder
}

func newCodecSet(encoders []Encoder, decoders []Decoder) *codecSet {
	cs := &codecSet{
		encoders: append([]Encoder{jsonCodec, xmlCodec}, encoders...),
		decoders: make(map[string]Decoder, 2+len(decoders)),
	}
	for _, d := range append([]Decoder{jsonCodec, xmlCodec}, decoders...) {
		// The first decoder registered for a media type wins.
		if _, dup := cs.decoders[baseMediaType(d.ContentType())]; !dup {
			cs.decoders[baseMediaType(d.ContentType())] = d
		}
	}
	return cs
}

// encoderFor picks the encoder for an Accept header value. An absent header
// selects JSON.
func (cs *codecSet) encoderFor(accept string) (Encoder, error) {
	if strings.TrimSpace(accept) == "" {
		return cs.encoders[0], nil
	}
	ranges := parseAccept(accept)
	var (
		best     Encoder
		bestRank mediaRange
	)
	for _, enc := range cs.encoders {
		r, ok := preferredRange(ranges, baseMediaType(enc.ContentType()))
		if !ok || r.q <= 0 {
			continue
		}
		if best == nil || r.q > bestRank.q || (r.q == bestRank.q && r.specificity() > bestRank.specificity()) {
			best, bestRank = enc, r
		}
	}
	if best == nil {
		return nil, Errorf(http.StatusNotAcceptable, "no encoder for %q", accept)
	}
	return best, nil
}

// preferredRange returns the most specific range matching mediaType. Among
// equally specific ranges the first listed wins.
func preferredRange(ranges []mediaRange, mediaType string) (mediaRange, bool) {
	var (
		found mediaRange
		ok    bool
	)
	for _, r := range ranges {
		if r.matches(mediaType) && (!ok || r.specificity() > found.specificity()) {
			found, ok = r, true
		}
	}
	return found, ok
}

// decoderFor picks the decoder for a Content-Type header value. An absent
// header selects JSON.
func (cs *codecSet) decoderFor(contentType string) (Decoder, error) {
	if contentType == "" {
		return cs.decoders[jsonCodec.mediaType], nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		if d, ok := cs.decoders[mt]; ok {
			return d, nil
		}
	}
	return nil, Errorf(http.StatusUnsupportedMediaType, "unsupported content type %q", contentType)
}

// mediaRange is one element of an Accept header.
type mediaRange struct {
	typ, sub string
	q        float64
}

func (m mediaRange) matches(mediaType string) bool {
	if m.typ == "*" {
		return true
	}
	typ, sub, _ := strings.Cut(mediaType, "/")
	return m.typ == typ && (m.sub == "*" || m.sub == sub)
}

// specificity ranks exact types above type/* and type/* above */*.
func (m mediaRange) specificity() int {
	switch {
	case m.typ == "*":
		return 0
	case m.sub == "*":
		return 1
	default:
		return 2
	}
}

// parseAccept returns the media ranges of an Accept header in the order
// listed. Malformed elements are skipped; a malformed q counts as 1.
func parseAccept(accept string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		typ, sub, ok := strings.Cut(mt, "/")
		if !ok {
			continue
		}
		q := 1.0
		if v, err := strconv.ParseFloat(params["q"], 64); err == nil {
			q = v
		}
		ranges = append(ranges, mediaRange{typ: typ, sub: sub, q: q})
	}
	return ranges
}

func baseMediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// decodeRequestBody decodes body into target with the decoder for the
// request Content-Type. Failures are body BindErrors carrying the codec's
// status (415 for an unknown type, 400 otherwise).
func decodeRequestBody(head *Head, body io.Reader, target any) error {
	dec, err := codecsFrom(head.Context()).decoderFor(head.Header().Get("Content-Type"))
	if err == nil {
		err = dec.Decode(body, target)
	}
	if err != nil {
		return &BindError{Kind: ErrBindBody, Err: err, Status: statusOf(err)}
	}
	return nil
}

// encodeResponseBody encodes v with the encoder negotiated from the request
// Accept header, returning the bytes and their content type.
func encodeResponseBody(head *Head, v any) ([]byte, string, error) {
	enc, err := codecsFrom(head.Context()).encoderFor(head.Header().Get("Accept"))
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, v); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), enc.ContentType(), nil
}

var defaultCodecs = newCodecSet(nil, nil)

type codecsKey struct{}

func withCodecs(ctx context.Context, cs *codecSet) context.Context {
	return context.WithValue(ctx, codecsKey{}, cs)
}

// codecsFrom returns the codecs of the serving router, or the JSON and XML
// defaults outside one.
func codecsFrom(ctx context.Context) *codecSet {
	if cs, ok := ctx.Value(codecsKey{}).(*codecSet); ok {
		return cs
	}
	return defaultCodecs
}
