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

// Package headers provides the HTTP header names and values used when
// reading requests and rendering responses
package headers

const (
	// Common HTTP Header Values

	// ValueTextPlain represents the HTTP Header Value of "text/plain"
	ValueTextPlain = "text/plain"
	// ValueTextHTML represents the HTTP Header Value of "text/html"
	ValueTextHTML = "text/html"
	// ValueApplicationJSON represents the HTTP Header Value of "application/json"
	ValueApplicationJSON = "application/json"
	// ValueCharsetUTF8 is the charset parameter appended to every Content-Type
	ValueCharsetUTF8 = "charset=utf-8"

	// Common HTTP Header Names

	// NameContentType represents the HTTP Header Name of "Content-Type"
	NameContentType = "Content-Type"
	// NameContentLength represents the HTTP Header Name of "Content-Length"
	NameContentLength = "Content-Length"
	// NameHost represents the HTTP Header Name of "Host"
	NameHost = "Host"
	// NameUserAgent represents the HTTP Header Name of "User-Agent"
	NameUserAgent = "User-Agent"
)

// ContentType returns the Content-Type header value for mime with the
// utf-8 charset parameter
func ContentType(mime string) string {
	return mime + "; " + ValueCharsetUTF8
}
