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
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/caiflower/rest-client/pkg/http"
)

const plainText = "hello hello hello hello"

func gzipped(t *testing.T, s string) []byte {
	buf := &bytes.Buffer{}
	w := gzip.NewWriter(buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func brotlied(t *testing.T, s string) []byte {
	buf := &bytes.Buffer{}
	w := brotli.NewWriter(buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecompress(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "gzip", encoding: "gzip", body: gzipped(t, plainText)},
		{name: "x-gzip", encoding: "X-Gzip", body: gzipped(t, plainText)},
		{name: "brotli", encoding: "br", body: brotlied(t, plainText)},
		{name: "identity", encoding: "", body: []byte(plainText)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, transport := newStubClient(t, func(req *http.Request) (*http.Response, error) {
				resp := stubResponse(req, http.StatusOK, string(tt.body))
				if tt.encoding != "" {
					resp.Header.Set("Content-Encoding", tt.encoding)
				}
				resp.Header.Set("Content-Length", "12")
				return resp, nil
			})
			onBoth(c, Decompress())

			resp, err := c.Get(context.Background(), "items", nil)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, "gzip, br", transport.last().Header.Get("Accept-Encoding"))
			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, plainText, string(data))
			assert.Empty(t, resp.Header.Get("Content-Encoding"))
			if tt.encoding != "" {
				assert.True(t, resp.Uncompressed)
				assert.Equal(t, int64(-1), resp.ContentLength)
				assert.Empty(t, resp.Header.Get("Content-Length"))
			}
		})
	}
}

func TestDecompress_KeepsAcceptEncoding(t *testing.T) {
	c, transport := newStubClient(t, nil)
	onBoth(c, Decompress())

	_, err := c.Get(context.Background(), "items", &httpclient.RequestOptions{
		Header: http.Header{"Accept-Encoding": []string{"identity"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "identity", transport.last().Header.Get("Accept-Encoding"))
}

func TestDecompress_BrokenGzip(t *testing.T) {
	c, _ := newStubClient(t, func(req *http.Request) (*http.Response, error) {
		resp := stubResponse(req, http.StatusOK, "not gzip at all")
		resp.Header.Set("Content-Encoding", "gzip")
		return resp, nil
	})
	onBoth(c, Decompress())

	resp, err := c.Get(context.Background(), "items", nil)
	assert.Nil(t, resp)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ungzip response")
}
