package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
	"github.com/cameron-webmatter/pulsar/pkg/store"
)

type ForceType string

const (
	TypeNone ForceType = ""
	TypeJSON ForceType = "json"
	TypeText ForceType = "text"
)

func New(client *http.Client, b backend.Backend, url string, force ForceType, opts ...store.AsyncOption[any]) (*store.Async[any], error) {
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}

	opts = append([]store.AsyncOption[any]{
		store.WithStoreOptions(store.WithCodec[any](envelopeCodec{})),
	}, opts...)

	return store.NewAsync(b, url, Producer(client, url, force), opts...)
}

func NewJSON[T any](client *http.Client, b backend.Backend, url string, opts ...store.AsyncOption[T]) (*store.Async[T], error) {
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}
	return store.NewAsync(b, url, JSONProducer[T](client, url), opts...)
}

func Producer(client *http.Client, url string, force ForceType) store.Producer[any] {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context) (any, error) {
		body, contentType, err := get(ctx, client, url)
		if err != nil {
			return nil, err
		}
		return decodeBody(body, resolveType(force, contentType))
	}
}

func JSONProducer[T any](client *http.Client, url string) store.Producer[T] {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context) (T, error) {
		var value T

		body, _, err := get(ctx, client, url)
		if err != nil {
			return value, err
		}
		if err := json.Unmarshal(body, &value); err != nil {
			var zero T
			return zero, fmt.Errorf("parse json body: %w", err)
		}
		return value, nil
	}
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	ctx, span := otel.Tracer("pulsar/fetch").Start(ctx, "fetch.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", url)),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

func resolveType(force ForceType, contentType string) ForceType {
	kind := string(force)
	if kind == "" {
		kind = contentType
	}
	if strings.Contains(kind, "json") {
		return TypeJSON
	}
	if strings.Contains(kind, "text") {
		return TypeText
	}
	return TypeNone
}

func decodeBody(body []byte, kind ForceType) (any, error) {
	switch kind {
	case TypeJSON:
		var value any
		if err := json.Unmarshal(body, &value); err != nil {
			return nil, fmt.Errorf("parse json body: %w", err)
		}
		return value, nil
	case TypeText:
		return string(body), nil
	default:
		return body, nil
	}
}
