package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("attribute-table/assets")

const TraceAttributeSource string = "asset-source"

// LoadOption configures how an export is loaded.
type LoadOption func(*loader)

type loader struct {
	headers    map[string]string
	httpClient *http.Client
}

// Header adds a request header used when the export is fetched over http.
func Header(key, value string) LoadOption {
	return func(l *loader) {
		l.headers[key] = value
	}
}

// HTTPClient replaces the default, otel instrumented, http client.
func HTTPClient(c *http.Client) LoadOption {
	return func(l *loader) {
		l.httpClient = c
	}
}

// Load reads an export from a local file or, if source is an http(s) URL,
// fetches it with a GET request.
func Load(ctx context.Context, source string, options ...LoadOption) (*Export, error) {
	var err error

	ctx, span := tracer.Start(ctx, "load-export",
		trace.WithAttributes(attribute.String(TraceAttributeSource, source)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	l := &loader{
		headers: map[string]string{},
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(l)
	}

	var export *Export

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		export, err = l.fetch(ctx, source)
	} else {
		export, err = l.read(ctx, source)
	}

	return export, err
}

func (l *loader) read(ctx context.Context, path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset export: %w", err)
	}
	defer f.Close()

	logging.GetFromContext(ctx).Debug("reading asset export from file", "path", path)

	return Decode(f)
}

func (l *loader) fetch(ctx context.Context, url string) (*Export, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	for k, v := range l.headers {
		req.Header.Set(k, v)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("asset source returned status code %d (content-type: %s, body: %s)", resp.StatusCode, resp.Header.Get("Content-Type"), string(body))
	}

	logging.GetFromContext(ctx).Debug("fetched asset export", "url", url)

	return Decode(resp.Body)
}
