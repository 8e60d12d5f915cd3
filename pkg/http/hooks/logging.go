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
	"github.com/caiflower/rest-client/pkg/logger"
	"github.com/caiflower/rest-client/pkg/tools"
)

// Logging writes one line per request and one per response to log.
// Register the handle on both channels, after RequestID if ids should show up.
func Logging(log logger.ILog) *httpclient.Listener {
	return httpclient.NewListener(&loggingHook{log: log})
}

type loggingHook struct {
	log logger.ILog
}

func (h *loggingHook) BeforeRequest(req *http.Request) (*http.Request, error) {
	h.log.Info("%s %s URL=%s Header=%s", req.Header.Get(RequestIDHeader), req.Method, req.URL, tools.ToJson(redact(req.Header)))
	return withStart(req, logStartKey), nil
}

func (h *loggingHook) AfterRequest(req *http.Request, resp *http.Response) (*http.Response, error) {
	var requestID, method, url string
	if req != nil {
		requestID, method, url = req.Header.Get(RequestIDHeader), req.Method, req.URL.String()
	}

	if cost, ok := elapsed(req, logStartKey); ok {
		h.log.Info("%s %s URL=%s Status=%d Elapsed: %v", requestID, method, url, resp.StatusCode, cost)
	} else {
		h.log.Info("%s %s URL=%s Status=%d", requestID, method, url, resp.StatusCode)
	}
	return resp, nil
}

func redact(header http.Header) http.Header {
	if header.Get("Authorization") == "" {
		return header
	}
	header = header.Clone()
	header.Set("Authorization", "***")
	return header
}
