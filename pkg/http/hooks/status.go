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
	"fmt"
	"io"
	"net/http"
	"strconv"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 4096

type StatusError struct {
	Code   int
	Status string
	Method string
	URL    string
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
}

// RaiseForStatus fails responses with a status code >= min with a *StatusError.
// The error keeps the head of the body, the response body is closed.
func RaiseForStatus(min int) *httpclient.Listener {
	return httpclient.AfterListener(func(req *http.Request, resp *http.Response) (*http.Response, error) {
		if resp.StatusCode < min {
			return resp, nil
		}

		e := &StatusError{Code: resp.StatusCode, Status: resp.Status}
		if e.Status == "" {
			e.Status = strconv.Itoa(resp.StatusCode) + " " + http.StatusText(resp.StatusCode)
		}
		if req != nil {
			e.Method = req.Method
			e.URL = req.URL.String()
		}
		if resp.Body != nil {
			e.Body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			_ = resp.Body.Close()
		}
		return nil, e
	})
}
