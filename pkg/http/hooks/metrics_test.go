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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := newMetricsHook(reg, "items-api")
	require.NoError(t, err)

	status := http.StatusOK
	c, _ := newStubClient(t, func(req *http.Request) (*http.Response, error) {
		return stubResponse(req, status, ""), nil
	})
	onBoth(c, httpclient.NewListener(h))

	for i := 0; i < 3; i++ {
		_, err = c.Get(context.Background(), "items", nil)
		require.NoError(t, err)
	}
	status = http.StatusServiceUnavailable
	_, err = c.Post(context.Background(), "items", nil)
	require.NoError(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(h.requestTotal.WithLabelValues("200", http.MethodGet, "api.example.com")))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.requestTotal.WithLabelValues("503", http.MethodPost, "api.example.com")))
	assert.Equal(t, 2, testutil.CollectAndCount(h.requestDuration))
}

func TestMetrics_TransportErrorNotCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := newMetricsHook(reg, "items-api")
	require.NoError(t, err)

	c, _ := newStubClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, assert.AnError
	})
	onBoth(c, httpclient.NewListener(h))

	_, err = c.Get(context.Background(), "items", nil)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, testutil.CollectAndCount(h.requestTotal))
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newMetricsHook(reg, "items-api")
	require.NoError(t, err)
	second, err := newMetricsHook(reg, "items-api")
	require.NoError(t, err)

	assert.Same(t, first.requestTotal, second.requestTotal)
	assert.Same(t, first.requestDuration, second.requestDuration)

	l, err := Metrics(reg, "users-api")
	require.NoError(t, err)
	assert.NotNil(t, l)
}
