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
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

var durationBuckets = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000}

// Metrics counts responses and observes their latency in milliseconds, labelled by client name.
// Transport failures never reach the after channel and are not counted.
// Register the handle on both channels.
func Metrics(reg prometheus.Registerer, client string) (*httpclient.Listener, error) {
	h, err := newMetricsHook(reg, client)
	if err != nil {
		return nil, err
	}
	return httpclient.NewListener(h), nil
}

type metricsHook struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetricsHook(reg prometheus.Registerer, client string) (*metricsHook, error) {
	constLabels := prometheus.Labels{"client": client}
	h := &metricsHook{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_client_request_total",
			Help:        "http_client_request_total counter",
			ConstLabels: constLabels,
		}, []string{"code", "method", "host"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_client_request_duration_ms",
			Help:        "http_client_request_duration_ms histogram",
			Buckets:     durationBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "host"}),
	}

	var err error
	if h.requestTotal, err = register(reg, h.requestTotal); err != nil {
		return nil, err
	}
	if h.requestDuration, err = register(reg, h.requestDuration); err != nil {
		return nil, err
	}
	return h, nil
}

// register reuses the collector already registered under the same descriptor.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (h *metricsHook) BeforeRequest(req *http.Request) (*http.Request, error) {
	return withStart(req, metricStartKey), nil
}

func (h *metricsHook) AfterRequest(req *http.Request, resp *http.Response) (*http.Response, error) {
	method, host := "", ""
	if req != nil {
		method, host = req.Method, req.URL.Host
	}

	h.requestTotal.WithLabelValues(strconv.Itoa(resp.StatusCode), method, host).Inc()
	if cost, ok := elapsed(req, metricStartKey); ok {
		h.requestDuration.WithLabelValues(method, host).Observe(float64(cost.Milliseconds()))
	}
	return resp, nil
}
