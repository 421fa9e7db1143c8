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

// Package request parses raw HTTP/1.x request bytes into a Request
package request

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/trickstercache/blueprint/pkg/errors"
	"github.com/trickstercache/blueprint/pkg/proxy/methods"
)

// Request is a parsed HTTP request
type Request struct {
	Method methods.Method
	// Path is the request target up to the first '?'
	Path string
	// Args holds the query string key=value pairs
	Args    map[string]string
	Headers map[string]string
	Body    string
}

// Parse parses the raw request bytes into a Request
func Parse(b []byte) (*Request, error) {
	return ParseString(string(b))
}

// ParseString parses the raw request string into a Request. All returned
// errors wrap errors.ErrMalformedRequest.
func ParseString(s string) (*Request, error) {
	if strings.TrimSpace(s) == "" {
		return nil, malformed(errors.ErrEmptyRequest)
	}

	line, rest, _ := cutLine(s)
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, malformed(errors.ErrMissingMethod)
	}
	m, err := methods.Parse(parts[0])
	if err != nil {
		return nil, malformed(err)
	}
	if len(parts) < 2 {
		return nil, malformed(errors.ErrMissingPath)
	}

	r := &Request{
		Method:  m,
		Args:    make(map[string]string),
		Headers: make(map[string]string),
	}

	var query string
	r.Path, query, _ = strings.Cut(parts[1], "?")
	if query != "" {
		for _, kv := range strings.Split(query, "&") {
			if k, v, ok := strings.Cut(kv, "="); ok {
				r.Args[k] = v
			}
		}
	}

	for rest != "" {
		line, rest, _ = cutLine(rest)
		if line == "" {
			r.Body = strings.TrimRightFunc(rest, unicode.IsSpace)
			break
		}
		if k, v, ok := strings.Cut(line, ": "); ok {
			r.Headers[k] = v
		}
	}

	return r, nil
}

// Header returns the value of the named header, matched case-insensitively
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func cutLine(s string) (string, string, bool) {
	line, rest, found := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, found
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", errors.ErrMalformedRequest, err)
}
