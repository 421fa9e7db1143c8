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

// Package response renders handler results into HTTP/1.1 response bytes
package response

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/trickstercache/blueprint/pkg/proxy/headers"
)

// ContentType is the type of a Response body
type ContentType int

const (
	ContentTypeText ContentType = iota
	ContentTypeHTML
	ContentTypeJSON
)

const (
	protocol = "HTTP/1.1"
	crlf     = "\r\n"
)

// MIME returns the MIME type of the ContentType
func (c ContentType) MIME() string {
	switch c {
	case ContentTypeHTML:
		return headers.ValueTextHTML
	case ContentTypeJSON:
		return headers.ValueApplicationJSON
	}
	return headers.ValueTextPlain
}

func (c ContentType) String() string {
	switch c {
	case ContentTypeHTML:
		return "HTML"
	case ContentTypeJSON:
		return "JSON"
	}
	return "TEXT"
}

// Response is an HTTP response produced by a handler
type Response struct {
	StatusCode  int
	Status      string
	ContentType ContentType
	Body        string
}

// New returns the default Response handed to a handler: 200 OK, TEXT, no body
func New() *Response {
	return Text(http.StatusOK, http.StatusText(http.StatusOK), "")
}

// Text returns a text/plain Response
func Text(code int, status, body string) *Response {
	return &Response{StatusCode: code, Status: status, ContentType: ContentTypeText, Body: body}
}

// HTML returns a text/html Response
func HTML(code int, status, body string) *Response {
	return &Response{StatusCode: code, Status: status, ContentType: ContentTypeHTML, Body: body}
}

// JSON returns an application/json Response with v marshaled as the body. If
// v can't be marshaled, a 500 TEXT Response is returned instead.
func JSON(code int, status string, v any) *Response {
	b, err := json.Marshal(v)
	if err != nil {
		return InternalServerError()
	}
	return &Response{StatusCode: code, Status: status, ContentType: ContentTypeJSON, Body: string(b)}
}

// BadRequest returns the fixed 400 Response sent for unparseable requests
func BadRequest() *Response {
	return fixed(http.StatusBadRequest)
}

// NotFound returns the fixed 404 Response sent for unmatched routes
func NotFound() *Response {
	return fixed(http.StatusNotFound)
}

// InternalServerError returns the fixed 500 Response
func InternalServerError() *Response {
	return fixed(http.StatusInternalServerError)
}

func fixed(code int) *Response {
	s := http.StatusText(code)
	return Text(code, s, s)
}

// Bytes renders the Response in HTTP/1.1 wire format
func (r *Response) Bytes() []byte {
	ct := headers.ContentType(r.ContentType.MIME())
	code := strconv.Itoa(r.StatusCode)
	cl := strconv.Itoa(len(r.Body))
	b := make([]byte, 0, len(protocol)+len(code)+len(r.Status)+len(ct)+
		len(cl)+len(r.Body)+64)
	b = append(b, protocol+" "+code+" "+r.Status+crlf...)
	b = append(b, headers.NameContentType+": "+ct+crlf...)
	b = append(b, headers.NameContentLength+": "+cl+crlf+crlf...)
	b = append(b, r.Body...)
	return b
}

func (r *Response) String() string {
	return string(r.Bytes())
}

// WriteTo writes the rendered Response to w
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}
