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
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var (
	ErrInvalidBaseURL   = fmt.Errorf("base url must be absolute")
	ErrNilRequest       = fmt.Errorf("hook returned a nil request")
	ErrNilResponse      = fmt.Errorf("hook returned a nil response")
	ErrListenerMismatch = fmt.Errorf("listener has no function for this channel")
)

// RequestOptions is handed to the transport as is, only Method is forced by the verb helpers.
type RequestOptions struct {
	Method string // 默认GET
	Header http.Header
	Query  url.Values // 追加到解析后的url上
	Body   io.Reader
}

type Option func(*Client)

// WithHook sets the built-in hook. The default is NopHook.
func WithHook(hook Hook) Option {
	return func(c *Client) {
		c.hook = hook
	}
}

// WithTransport replaces the transport built from a default Config.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// Client issues requests against a fixed base url.
//
// Every request runs the same linear pipeline:
// built-in BeforeRequest, before listeners, transport, built-in AfterRequest, after listeners.
// Listeners run in registration order and each one receives the output of the previous stage.
// The first error aborts the pipeline and is returned unchanged. Responses are returned whatever
// their status code, turning a status into an error is a listener's job.
type Client struct {
	baseURL     *url.URL
	hook        Hook
	transport   Transport
	beforeHooks *Registry
	afterHooks  *Registry
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:     u,
		beforeHooks: NewRegistry(),
		afterHooks:  NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hook == nil {
		c.hook = NopHook{}
	}
	if c.transport == nil {
		c.transport = NewTransport(Config{})
	}

	return c, nil
}

func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// On registers l on channel ch. Unknown channels are ignored.
func (c *Client) On(ch Channel, l *Listener) *Client {
	if r := c.registry(ch); r != nil {
		r.Add(l)
	}
	return c
}

// Off removes l from channel ch. Requests that already passed the channel's snapshot still run l.
func (c *Client) Off(ch Channel, l *Listener) *Client {
	if r := c.registry(ch); r != nil {
		r.Remove(l)
	}
	return c
}

func (c *Client) registry(ch Channel) *Registry {
	switch ch {
	case ChannelBefore:
		return c.beforeHooks
	case ChannelAfter:
		return c.afterHooks
	default:
		return nil
	}
}

// Request resolves path against the base url and runs the pipeline.
// ctx travels on the request to the transport, the pipeline itself never checks it.
func (c *Client) Request(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error) {
	req, err := c.newRequest(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	if req, err = before(c.hook.BeforeRequest, req); err != nil {
		return nil, err
	}
	for _, l := range c.beforeHooks.Snapshot() {
		if req, err = before(l.beforeRequest, req); err != nil {
			return nil, err
		}
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNilResponse
	}

	if resp, err = after(c.hook.AfterRequest, req, resp); err != nil {
		return nil, err
	}
	for _, l := range c.afterHooks.Snapshot() {
		if resp, err = after(l.afterRequest, req, resp); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Request(ctx, path, withMethod(opts, http.MethodGet))
}

func (c *Client) Post(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Request(ctx, path, withMethod(opts, http.MethodPost))
}

func (c *Client) Put(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Request(ctx, path, withMethod(opts, http.MethodPut))
}

func (c *Client) Patch(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Request(ctx, path, withMethod(opts, http.MethodPatch))
}

func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (*http.Response, error) {
	return c.Request(ctx, path, withMethod(opts, http.MethodDelete))
}

func withMethod(opts *RequestOptions, method string) *RequestOptions {
	o := RequestOptions{}
	if opts != nil {
		o = *opts
	}
	o.Method = method
	return &o
}

func (c *Client) newRequest(ctx context.Context, path string, opts *RequestOptions) (*http.Request, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	target := c.baseURL.ResolveReference(ref)
	if extra := opts.Query.Encode(); extra != "" {
		// 保留path中原始的query，只追加
		if target.RawQuery == "" {
			target.RawQuery = extra
		} else {
			target.RawQuery += "&" + extra
		}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), opts.Body)
	if err != nil {
		return nil, err
	}
	for k, values := range opts.Header {
		key := http.CanonicalHeaderKey(k)
		req.Header[key] = append(req.Header[key], values...)
	}

	return req, nil
}

func before(fn BeforeFunc, req *http.Request) (*http.Request, error) {
	out, err := fn(req)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNilRequest
	}
	return out, nil
}

// after closes the bodies it was given when the stage fails, the caller never sees that response.
func after(fn AfterFunc, req *http.Request, resp *http.Response) (*http.Response, error) {
	out, err := fn(req, resp)
	if err == nil && out != nil {
		return out, nil
	}

	closeBody(resp)
	if out != resp {
		closeBody(out)
	}
	if err == nil {
		err = ErrNilResponse
	}
	return nil, err
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
