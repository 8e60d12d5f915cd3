/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package hooks

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.opentelemetry.io/otel/trace"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

// Tracing opens a client span per request and ends it when the response comes back.
// Register its listener on both channels, last on the before channel so the injected
// headers and the span see the final request. Wrap the transport too: the wrapped transport
// ends the span for every outcome, without it a failing dispatch or an after listener that
// fails before the tracing one leaves the span open.
type Tracing struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// NewTracing uses the global propagator to inject the span context into request headers.
func NewTracing(tracer trace.Tracer) *Tracing {
	return &Tracing{tracer: tracer, propagator: otel.GetTextMapPropagator()}
}

func (t *Tracing) Listener() *httpclient.Listener {
	return httpclient.NewListener(t)
}

func (t *Tracing) BeforeRequest(req *http.Request) (*http.Request, error) {
	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	ctx, span := t.tracer.Start(req.Context(), req.Method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPMethodKey.String(req.Method),
			semconv.HTTPURLKey.String(req.URL.String()),
			semconv.NetPeerNameKey.String(req.URL.Hostname()),
		))
	// 未采样的span也要透传，下游依赖采样标记
	t.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))
	if !span.IsRecording() {
		return req, nil
	}
	return req.WithContext(context.WithValue(ctx, spanKey, span)), nil
}

// AfterRequest ends the span unless the wrapped transport already did.
func (t *Tracing) AfterRequest(req *http.Request, resp *http.Response) (*http.Response, error) {
	if span, ok := requestSpan(req); ok {
		endSpan(span, resp)
	}
	return resp, nil
}

// Wrap ends the span as soon as next returns, with the status code or the error.
func (t *Tracing) Wrap(next httpclient.Transport) httpclient.Transport {
	return httpclient.TransportFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.Do(req)
		span, ok := requestSpan(req)
		if !ok {
			return resp, err
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
		} else if resp != nil {
			endSpan(span, resp)
		}
		return resp, err
	})
}

func endSpan(span trace.Span, resp *http.Response) {
	defer span.End()

	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
}

// requestSpan returns the span BeforeRequest opened for req, never a span of the caller.
func requestSpan(req *http.Request) (trace.Span, bool) {
	if req == nil {
		return nil, false
	}
	span, ok := req.Context().Value(spanKey).(trace.Span)
	return span, ok && span.IsRecording()
}
