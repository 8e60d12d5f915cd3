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
	"time"
)

type ctxKey int

const (
	logStartKey ctxKey = iota
	metricStartKey
	spanKey
)

func withStart(req *http.Request, key ctxKey) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), key, time.Now()))
}

func elapsed(req *http.Request, key ctxKey) (time.Duration, bool) {
	if req == nil {
		return 0, false
	}
	start, ok := req.Context().Value(key).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}
