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
	"sync"

	"github.com/caiflower/rest-client/pkg/basic"
)

// Registry is the ordered set of listeners of one channel. It is safe for concurrent use.
type Registry struct {
	lock      sync.RWMutex
	listeners *basic.LinkedHashMap[*Listener, struct{}]
}

func NewRegistry() *Registry {
	return &Registry{
		listeners: basic.NewLinkedHashMap[*Listener, struct{}](),
	}
}

// Add appends l and reports whether it was not registered yet. Nil is ignored.
func (r *Registry) Add(l *Listener) bool {
	if l == nil {
		return false
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	return r.listeners.PutIfAbsent(l, struct{}{})
}

// Remove reports whether l was registered.
func (r *Registry) Remove(l *Listener) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.listeners.Remove(l)
}

// Snapshot returns the registered listeners in insertion order.
// The slice is a copy: later Add and Remove calls do not change it.
func (r *Registry) Snapshot() []*Listener {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.listeners.Keys()
}

func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.listeners.Size()
}
