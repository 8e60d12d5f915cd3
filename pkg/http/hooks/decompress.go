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
	"strings"

	"github.com/pkg/errors"

	httpclient "github.com/caiflower/rest-client/pkg/http"
	"github.com/caiflower/rest-client/pkg/tools"
)

// Decompress asks for gzip or brotli bodies and decodes them transparently.
// Register the handle on both channels.
func Decompress() *httpclient.Listener {
	return httpclient.NewListener(decompressHook{})
}

type decompressHook struct{}

func (decompressHook) BeforeRequest(req *http.Request) (*http.Request, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br")
	}
	return req, nil
}

func (decompressHook) AfterRequest(_ *http.Request, resp *http.Response) (*http.Response, error) {
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	switch encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))); encoding {
	case "gzip", "x-gzip":
		body, err := tools.GunzipReader(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "ungzip response")
		}
		resp.Body = body
	case "br":
		resp.Body = tools.UnBrotliReader(resp.Body)
	default:
		return resp, nil
	}

	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}
