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
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// TokenSource fetches a bearer token for host. A ttl <= 0 caches the token until Invalidate.
type TokenSource func(ctx context.Context, host string) (token string, ttl time.Duration, err error)

// BearerAuth sets "Authorization: Bearer <token>" with tokens cached per host.
// It implements httpclient.Hook, so it can be the built-in hook or a listener via NewListener.
// On a 401 response the cached token of that host is dropped; the response itself is returned unchanged.
type BearerAuth struct {
	source TokenSource
	tokens *cache.Cache
	lock   sync.Mutex
}

func NewBearerAuth(source TokenSource) *BearerAuth {
	return &BearerAuth{
		source: source,
		tokens: cache.New(cache.NoExpiration, time.Minute),
	}
}

func (a *BearerAuth) BeforeRequest(req *http.Request) (*http.Request, error) {
	token, err := a.token(req.Context(), req.URL.Host)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (a *BearerAuth) AfterRequest(req *http.Request, resp *http.Response) (*http.Response, error) {
	if resp.StatusCode == http.StatusUnauthorized && req != nil {
		a.Invalidate(req.URL.Host)
	}
	return resp, nil
}

func (a *BearerAuth) Invalidate(host string) {
	a.tokens.Delete(host)
}

func (a *BearerAuth) token(ctx context.Context, host string) (string, error) {
	if v, ok := a.tokens.Get(host); ok {
		return v.(string), nil
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	if v, ok := a.tokens.Get(host); ok {
		return v.(string), nil
	}

	token, ttl, err := a.source(ctx, host)
	if err != nil {
		return "", errors.Wrapf(err, "fetch bearer token for %s", host)
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	a.tokens.Set(host, token, ttl)
	return token, nil
}
