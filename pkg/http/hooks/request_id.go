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

	httpclient "github.com/caiflower/rest-client/pkg/http"
	"github.com/caiflower/rest-client/pkg/tools"
)

const RequestIDHeader = "X-Request-ID"

// RequestID sets a random id on requests that do not carry one. An empty header means RequestIDHeader.
func RequestID(header string) *httpclient.Listener {
	if header == "" {
		header = RequestIDHeader
	}
	return httpclient.BeforeListener(func(req *http.Request) (*http.Request, error) {
		if req.Header.Get(header) == "" {
			req.Header.Set(header, tools.UUID())
		}
		return req, nil
	})
}
