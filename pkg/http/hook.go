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
	"net/http"
)

type Channel string

const (
	ChannelBefore Channel = "before"
	ChannelAfter  Channel = "after"
)

// BeforeFunc transforms a request before it is dispatched.
type BeforeFunc func(*http.Request) (*http.Request, error)

// AfterFunc transforms a response. req is the request that was dispatched and is only context.
type AfterFunc func(req *http.Request, resp *http.Response) (*http.Response, error)

// Hook is the built-in hook pair of a Client. It runs before every registered listener of the same channel.
type Hook interface {
	BeforeRequest(*http.Request) (*http.Request, error)
	AfterRequest(*http.Request, *http.Response) (*http.Response, error)
}

// NopHook passes requests and responses through unchanged.
// Embed it to override only one side of Hook.
type NopHook struct{}

func (NopHook) BeforeRequest(req *http.Request) (*http.Request, error) {
	return req, nil
}

func (NopHook) AfterRequest(_ *http.Request, resp *http.Response) (*http.Response, error) {
	return resp, nil
}

// Listener is the handle registered with Client.On. Registries compare listeners by pointer:
// adding the same handle twice stores it once, two handles wrapping the same function are two entries.
type Listener struct {
	before BeforeFunc
	after  AfterFunc
}

// NewListener wraps both sides of hook, so the handle can be registered on either channel.
func NewListener(hook Hook) *Listener {
	return &Listener{before: hook.BeforeRequest, after: hook.AfterRequest}
}

func BeforeListener(fn BeforeFunc) *Listener {
	return &Listener{before: fn}
}

func AfterListener(fn AfterFunc) *Listener {
	return &Listener{after: fn}
}

func (l *Listener) beforeRequest(req *http.Request) (*http.Request, error) {
	if l.before == nil {
		return nil, ErrListenerMismatch
	}
	return l.before(req)
}

func (l *Listener) afterRequest(req *http.Request, resp *http.Response) (*http.Response, error) {
	if l.after == nil {
		return nil, ErrListenerMismatch
	}
	return l.after(req, resp)
}
