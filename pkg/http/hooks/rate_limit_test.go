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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

func TestRateLimit(t *testing.T) {
	c, transport := newStubClient(t, nil)
	c.On(httpclient.ChannelBefore, RateLimit(rate.NewLimiter(rate.Every(time.Hour), 1)))

	_, err := c.Get(context.Background(), "items", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Get(ctx, "items", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Len(t, transport.requests, 1, "limited request is never dispatched")
}
