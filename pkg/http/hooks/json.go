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
	"bytes"
	"io"
	"net/http"

	"github.com/pkg/errors"

	httpclient "github.com/caiflower/rest-client/pkg/http"
	"github.com/caiflower/rest-client/pkg/tools"
)

const ContentTypeJson = "application/json;charset=UTF-8"

// EncodeJSON marshals v into a reader usable as RequestOptions.Body. The transport can rewind it for retries.
func EncodeJSON(v interface{}) (*bytes.Reader, error) {
	data, err := tools.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}
	return bytes.NewReader(data), nil
}

// DecodeJSON reads resp.Body into v and closes it.
func DecodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()

	if err := tools.Decode(resp.Body, v); err != nil && err != io.EOF {
		return errors.Wrap(err, "unmarshal response")
	}
	return nil
}

// JSON sets Accept on every request and Content-Type on requests with a body, unless already set.
func JSON() *httpclient.Listener {
	return httpclient.BeforeListener(func(req *http.Request) (*http.Request, error) {
		if req.Header.Get("Accept") == "" {
			req.Header.Set("Accept", "application/json")
		}
		if req.Body != nil && req.Body != http.NoBody && req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", ContentTypeJson)
		}
		return req, nil
	})
}
