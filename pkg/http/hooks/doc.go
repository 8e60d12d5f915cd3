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
// Package hooks holds ready-made listeners for the rest client: headers, request ids, auth,
// rate limiting, body codecs, status checks, logging, metrics and tracing.
//
// None of them is installed by default. Listeners built with NewListener carry both sides and
// are meant to be registered on both channels with the same handle:
//
//	l := hooks.Logging(logger.DefaultLogger())
//	client.On(httpclient.ChannelBefore, l).On(httpclient.ChannelAfter, l)
package hooks
