package demo

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// Transport serves API requests from the demo backend in-process instead
// of dialing a network. Install it on the client with
// apiclient.WithHTTPTransport; everything above the transport (bearer
// attachment, 401 interception) behaves exactly as against the real
// backend.
type Transport struct {
	handler http.Handler
	prefix  string
}

// NewTransport wraps the backend. prefix is the API base path the client
// was configured with (typically "/api"); it is stripped before routing.
func NewTransport(backend *Backend, prefix string) *Transport {
	return &Transport{handler: backend.Handler(), prefix: strings.TrimRight(prefix, "/")}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	inner := req.Clone(req.Context())
	if t.prefix != "" {
		inner.URL.Path = strings.TrimPrefix(inner.URL.Path, t.prefix)
		if inner.URL.Path == "" {
			inner.URL.Path = "/"
		}
	}

	rec := &responseRecorder{header: make(http.Header), status: http.StatusOK}
	t.handler.ServeHTTP(rec, inner)

	return &http.Response{
		Status:     http.StatusText(rec.status),
		StatusCode: rec.status,
		Proto:      req.Proto,
		ProtoMajor: req.ProtoMajor,
		ProtoMinor: req.ProtoMinor,
		Header:     rec.header,
		Body:       io.NopCloser(bytes.NewReader(rec.body.Bytes())),
		Request:    req,
	}, nil
}

// responseRecorder is the minimal http.ResponseWriter needed to capture
// the handler's output.
type responseRecorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (r *responseRecorder) Header() http.Header { return r.header }

func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }

func (r *responseRecorder) WriteHeader(status int) { r.status = status }
