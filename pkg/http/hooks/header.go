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

	"golang.org/x/exp/slices"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

// Header sets key on every request, replacing earlier values.
func Header(key, value string) *httpclient.Listener {
	return httpclient.BeforeListener(func(req *http.Request) (*http.Request, error) {
		req.Header.Set(key, value)
		return req, nil
	})
}

// Headers adds defaults for keys the request does not carry yet.
func Headers(defaults http.Header) *httpclient.Listener {
	defaults = defaults.Clone()
	return httpclient.BeforeListener(func(req *http.Request) (*http.Request, error) {
		for k, values := range defaults {
			if len(req.Header.Values(k)) == 0 {
				req.Header[http.CanonicalHeaderKey(k)] = slices.Clone(values)
			}
		}
		return req, nil
	})
}
