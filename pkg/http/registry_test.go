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
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestListener() *Listener {
	return BeforeListener(func(req *http.Request) (*http.Request, error) { return req, nil })
}

func TestRegistry_AddRemove(t *testing.T) {
	r := NewRegistry()
	l1, l2, l3 := newTestListener(), newTestListener(), newTestListener()

	assert.True(t, r.Add(l1))
	assert.True(t, r.Add(l2))
	assert.True(t, r.Add(l3))
	assert.False(t, r.Add(l2), "same reference is registered once")
	assert.False(t, r.Add(nil))
	assert.Equal(t, []*Listener{l1, l2, l3}, r.Snapshot())

	assert.True(t, r.Remove(l2))
	assert.False(t, r.Remove(l2), "removing twice is a no-op")
	assert.False(t, r.Remove(newTestListener()))
	assert.Equal(t, []*Listener{l1, l3}, r.Snapshot())

	// 重新注册排到末尾
	r.Add(l2)
	assert.Equal(t, []*Listener{l1, l3, l2}, r.Snapshot())
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_SameFunctionDistinctHandles(t *testing.T) {
	fn := func(req *http.Request) (*http.Request, error) { return req, nil }
	r := NewRegistry()
	a, b := BeforeListener(fn), BeforeListener(fn)

	assert.True(t, r.Add(a))
	assert.True(t, r.Add(b))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SnapshotIsolation(t *testing.T) {
	r := NewRegistry()
	l1, l2 := newTestListener(), newTestListener()
	r.Add(l1)

	snapshot := r.Snapshot()
	r.Add(l2)
	r.Remove(l1)

	assert.Equal(t, []*Listener{l1}, snapshot)
	assert.Equal(t, []*Listener{l2}, r.Snapshot())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	group := sync.WaitGroup{}

	for i := 0; i < 50; i++ {
		group.Add(2)
		go func() {
			defer group.Done()
			l := newTestListener()
			r.Add(l)
			r.Remove(l)
			r.Add(l)
		}()
		go func(i int) {
			defer group.Done()
			for _, l := range r.Snapshot() {
				assert.NotNil(t, l, strconv.Itoa(i))
			}
		}(i)
	}

	group.Wait()
	assert.Equal(t, 50, r.Len())
}
