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

// Package methods provides the closed set of HTTP methods the router serves
package methods

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/trickstercache/blueprint/pkg/errors"
)

// Method is an HTTP Method. The zero value is not a valid Method.
type Method uint16

const (
	GET Method = 1 << iota
	POST
	PUT
	DELETE
	PATCH
	HEAD
	OPTIONS
)

const bodyMethods = POST | PUT | PATCH

var all = []Method{GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS}

var names = map[Method]string{
	GET:     http.MethodGet,
	POST:    http.MethodPost,
	PUT:     http.MethodPut,
	DELETE:  http.MethodDelete,
	PATCH:   http.MethodPatch,
	HEAD:    http.MethodHead,
	OPTIONS: http.MethodOptions,
}

// All returns every supported Method, in a stable order
func All() []Method {
	out := make([]Method, len(all))
	copy(out, all)
	return out
}

// String returns the canonical uppercase name of the Method
func (m Method) String() string {
	if s, ok := names[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", uint16(m))
}

// IsValid returns true if m is exactly one of the supported Methods
func (m Method) IsValid() bool {
	_, ok := names[m]
	return ok
}

// HasBody returns true if the method is POST, PUT or PATCH
func (m Method) HasBody() bool {
	return m.IsValid() && bodyMethods&m != 0
}

// Parse returns the Method for the provided name. Matching is case-insensitive.
func Parse(name string) (Method, error) {
	switch strings.ToUpper(name) {
	case http.MethodGet:
		return GET, nil
	case http.MethodPost:
		return POST, nil
	case http.MethodPut:
		return PUT, nil
	case http.MethodDelete:
		return DELETE, nil
	case http.MethodPatch:
		return PATCH, nil
	case http.MethodHead:
		return HEAD, nil
	case http.MethodOptions:
		return OPTIONS, nil
	}
	return 0, fmt.Errorf("%w: %s", errors.ErrUnsupportedMethod, name)
}
