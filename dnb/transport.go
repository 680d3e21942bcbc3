package dnb

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptrace"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/s0up4200/dnburn/dnb"

// NewTracingTransport wraps transport so that every request gets a client
// span, with child spans for DNS, connect and TLS.
func NewTracingTransport(transport http.RoundTripper) http.RoundTripper {
	return &traceTransport{
		transport: transport,
		tracer:    otel.Tracer(tracerName),
	}
}

type traceTransport struct {
	transport http.RoundTripper
	tracer    trace.Tracer
}

func (t *traceTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(r.Context(), "http.request", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.request.method", r.Method),
		attribute.String("url.full", r.URL.String()),
		attribute.String("server.address", r.URL.Hostname()),
	)

	ctx = httptrace.WithClientTrace(ctx, newClientTrace(ctx, t.tracer))
	r = r.WithContext(ctx)

	resp, err := t.transport.RoundTrip(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func newClientTrace(ctx context.Context, tracer trace.Tracer) *httptrace.ClientTrace {
	ct := &connTracer{
		ctx:    ctx,
		tracer: tracer,
	}
	return &httptrace.ClientTrace{
		GetConn:           ct.GetConn,
		GotConn:           ct.GotConn,
		DNSStart:          ct.DNSStart,
		DNSDone:           ct.DNSDone,
		TLSHandshakeStart: ct.TLSHandshakeStart,
		TLSHandshakeDone:  ct.TLSHandshakeDone,
	}
}

// connTracer implements a subset of the *httptrace.ClientTrace callbacks and
// keeps the spans that are open between them.
type connTracer struct {
	ctx         context.Context
	tracer      trace.Tracer
	connectSpan trace.Span
	dnsSpan     trace.Span
	tlsSpan     trace.Span
}

// GetConn is called before a connection is created or retrieved from an idle
// pool.
func (t *connTracer) GetConn(hostPort string) {
	_, t.connectSpan = t.tracer.Start(t.ctx, "net.connect")
	if host, port, err := net.SplitHostPort(hostPort); err == nil {
		t.connectSpan.SetAttributes(
			attribute.String("server.address", host),
			attribute.String("server.port", port),
		)
	}
}

// GotConn is called after a successful connection is obtained.
func (t *connTracer) GotConn(info httptrace.GotConnInfo) {
	if t.connectSpan == nil {
		return
	}
	t.connectSpan.SetAttributes(
		attribute.Bool("net.conn.reused", info.Reused),
		attribute.Bool("net.conn.was_idle", info.WasIdle),
	)
	t.connectSpan.End()
}

// DNSStart is called when a DNS lookup begins.
func (t *connTracer) DNSStart(info httptrace.DNSStartInfo) {
	_, t.dnsSpan = t.tracer.Start(t.ctx, "net.dns_lookup")
	t.dnsSpan.SetAttributes(attribute.String("server.address", info.Host))
}

// DNSDone is called when a DNS lookup ends.
func (t *connTracer) DNSDone(info httptrace.DNSDoneInfo) {
	if t.dnsSpan == nil {
		return
	}
	if info.Err != nil {
		t.dnsSpan.RecordError(info.Err)
	}
	t.dnsSpan.End()
}

// TLSHandshakeStart is called when the TLS handshake is started.
func (t *connTracer) TLSHandshakeStart() {
	_, t.tlsSpan = t.tracer.Start(t.ctx, "net.tls_handshake")
}

// TLSHandshakeDone is called after the TLS handshake.
func (t *connTracer) TLSHandshakeDone(state tls.ConnectionState, err error) {
	if t.tlsSpan == nil {
		return
	}
	t.tlsSpan.SetAttributes(attribute.Bool("net.conn.tls_did_resume", state.DidResume))
	if err != nil {
		t.tlsSpan.RecordError(err)
	}
	t.tlsSpan.End()
}
