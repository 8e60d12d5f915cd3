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
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

type logAppender struct {
	timeFormat  string
	enableColor bool

	bufPool   sync.Pool
	writeLock sync.Mutex
	out       io.Writer
}

func newLogAppender(out io.Writer, timeFormat string, enableColor bool) *logAppender {
	return &logAppender{
		timeFormat:  timeFormat,
		enableColor: enableColor,
		out:         out,
		bufPool: sync.Pool{New: func() interface{} {
			return &strings.Builder{}
		}},
	}
}

func (appender *logAppender) write(data data) {
	level := data.level
	if appender.enableColor {
		level = getLevelColor(level)
	}

	buf := appender.bufPool.Get().(*strings.Builder)
	buf.Reset()
	buf.WriteString(data.timestamp.Format(appender.timeFormat))
	buf.WriteString(" [")
	buf.WriteString(level)
	buf.WriteString("] ")
	buf.WriteString(data.position)
	buf.WriteString(" - ")
	buf.WriteString(data.content)
	buf.WriteByte('\n')

	appender.writeLock.Lock()
	defer func() {
		appender.writeLock.Unlock()
		buf.Reset()
		appender.bufPool.Put(buf)
	}()

	if _, err := io.WriteString(appender.out, buf.String()); err != nil {
		fmt.Printf("[ERROR] - output err %s\n", err.Error())
	}
}
