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

package basic

// LinkedHashMap keeps entries in insertion order. Updating an existing key keeps its position.
// It is not safe for concurrent use.
type LinkedHashMap[K comparable, V any] struct {
	itemMap map[K]*linkedHashMapNode[K, V]
	head    *linkedHashMapNode[K, V]
	tail    *linkedHashMapNode[K, V]
}

type linkedHashMapNode[K comparable, V any] struct {
	key   K
	value V
	prev  *linkedHashMapNode[K, V]
	next  *linkedHashMapNode[K, V]
}

func NewLinkedHashMap[K comparable, V any]() *LinkedHashMap[K, V] {
	return &LinkedHashMap[K, V]{
		itemMap: make(map[K]*linkedHashMapNode[K, V]),
	}
}

// Put inserts k at the tail, or replaces the value in place if k exists.
func (m *LinkedHashMap[K, V]) Put(k K, v V) {
	if n, ok := m.itemMap[k]; ok {
		n.value = v
		return
	}
	m.append(k, v)
}

// PutIfAbsent inserts k at the tail and reports true, or does nothing if k exists.
func (m *LinkedHashMap[K, V]) PutIfAbsent(k K, v V) bool {
	if _, ok := m.itemMap[k]; ok {
		return false
	}
	m.append(k, v)
	return true
}

func (m *LinkedHashMap[K, V]) Get(k K) (V, bool) {
	if n, ok := m.itemMap[k]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

func (m *LinkedHashMap[K, V]) Remove(k K) bool {
	n, ok := m.itemMap[k]
	if !ok {
		return false
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		m.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		m.tail = n.prev
	}
	n.prev, n.next = nil, nil

	delete(m.itemMap, k)
	return true
}

func (m *LinkedHashMap[K, V]) RemoveFirst() (K, bool) {
	if m.head == nil {
		var zero K
		return zero, false
	}
	key := m.head.key
	m.Remove(key)
	return key, true
}

func (m *LinkedHashMap[K, V]) RemoveLast() (K, bool) {
	if m.tail == nil {
		var zero K
		return zero, false
	}
	key := m.tail.key
	m.Remove(key)
	return key, true
}

func (m *LinkedHashMap[K, V]) Size() int {
	return len(m.itemMap)
}

func (m *LinkedHashMap[K, V]) Contains(k K) bool {
	_, ok := m.itemMap[k]
	return ok
}

// Keys returns a new slice, oldest first.
func (m *LinkedHashMap[K, V]) Keys() []K {
	res := make([]K, 0, len(m.itemMap))
	for p := m.head; p != nil; p = p.next {
		res = append(res, p.key)
	}
	return res
}

// Values returns a new slice, oldest first.
func (m *LinkedHashMap[K, V]) Values() []V {
	res := make([]V, 0, len(m.itemMap))
	for p := m.head; p != nil; p = p.next {
		res = append(res, p.value)
	}
	return res
}

func (m *LinkedHashMap[K, V]) append(k K, v V) {
	n := &linkedHashMapNode[K, V]{key: k, value: v}
	m.itemMap[k] = n

	if m.tail == nil { // first node
		m.head = n
		m.tail = n
		return
	}

	n.prev = m.tail
	m.tail.next = n
	m.tail = n
}
