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
package http

import (
	"context"
	"net/http"
)

// RestClient is the request surface of *Client, for callers that only issue requests.
type RestClient interface {
	Request(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error)
	Get(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error)
	Post(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error)
	Put(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error)
	Patch(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error)
	Delete(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error)
}

var _ RestClient = (*Client)(nil)
