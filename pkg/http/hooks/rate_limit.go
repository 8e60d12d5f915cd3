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
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

// RateLimit blocks each request until limiter grants it or the request context ends.
func RateLimit(limiter *rate.Limiter) *httpclient.Listener {
	return httpclient.BeforeListener(func(req *http.Request) (*http.Request, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, errors.Wrap(err, "rate limit")
		}
		return req, nil
	})
}
