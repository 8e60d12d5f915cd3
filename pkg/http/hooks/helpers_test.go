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
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

type stubTransport struct {
	lock     sync.Mutex
	requests []*http.Request
	respond  func(*http.Request) (*http.Response, error)
}

func (s *stubTransport) Do(req *http.Request) (*http.Response, error) {
	s.lock.Lock()
	s.requests = append(s.requests, req)
	s.lock.Unlock()

	if s.respond == nil {
		return stubResponse(req, http.StatusOK, ""), nil
	}
	return s.respond(req)
}

func (s *stubTransport) last() *http.Request {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.requests[len(s.requests)-1]
}

func stubResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func newStubClient(t *testing.T, respond func(*http.Request) (*http.Response, error)) (*httpclient.Client, *stubTransport) {
	transport := &stubTransport{respond: respond}
	c, err := httpclient.New("https://api.example.com/v1/", httpclient.WithTransport(transport))
	require.NoError(t, err)
	return c, transport
}

func onBoth(c *httpclient.Client, l *httpclient.Listener) {
	c.On(httpclient.ChannelBefore, l).On(httpclient.ChannelAfter, l)
}

type memLog struct {
	lock  sync.Mutex
	lines []string
}

func (m *memLog) add(level, text string, v ...interface{}) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.lines = append(m.lines, level+" "+fmt.Sprintf(text, v...))
}

func (m *memLog) Trace(text string, v ...interface{}) { m.add("TRACE", text, v...) }
func (m *memLog) Debug(text string, v ...interface{}) { m.add("DEBUG", text, v...) }
func (m *memLog) Info(text string, v ...interface{})  { m.add("INFO", text, v...) }
func (m *memLog) Warn(text string, v ...interface{})  { m.add("WARN", text, v...) }
func (m *memLog) Error(text string, v ...interface{}) { m.add("ERROR", text, v...) }
func (m *memLog) Fatal(text string, v ...interface{}) { m.add("FATAL", text, v...) }
