/*
 * Copyright 2018 The Trickster Authors
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

package request

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/proxy/headers"
)

// DefaultMaxBytes is the default upper bound of a buffered request
const DefaultMaxBytes = 1 << 20

const readChunk = 2048

var (
	crlfcrlf = []byte("\r\n\r\n")
	lflf     = []byte("\n\n")
)

// Read reads a single request from r. It returns once the header block and any
// Content-Length body have arrived, or when r reaches EOF. A request larger
// than maxBytes returns errors.ErrRequestTooLarge; maxBytes <= 0 uses
// DefaultMaxBytes.
func Read(r io.Reader, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	buf := make([]byte, 0, readChunk)
	chunk := make([]byte, readChunk)
	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if len(buf) > maxBytes {
			return buf[:maxBytes], errors.ErrRequestTooLarge
		}
		if isComplete(buf) {
			return buf, nil
		}
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return buf, err
		}
	}
}

func isComplete(b []byte) bool {
	i := headerEnd(b)
	if i < 0 {
		return false
	}
	return len(b)-i >= contentLength(b[:i])
}

// headerEnd returns the offset of the first byte after the header block
// terminator, or -1 when the terminator has not been read yet
func headerEnd(b []byte) int {
	i := bytes.Index(b, crlfcrlf)
	j := bytes.Index(b, lflf)
	switch {
	case i < 0 && j < 0:
		return -1
	case j < 0 || (i >= 0 && i < j):
		return i + len(crlfcrlf)
	default:
		return j + len(lflf)
	}
}

func contentLength(head []byte) int {
	for _, line := range strings.Split(string(head), "\n") {
		k, v, ok := strings.Cut(strings.TrimSuffix(line, "\r"), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), headers.NameContentLength) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return 0
}
