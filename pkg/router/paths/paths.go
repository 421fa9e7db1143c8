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

// Package paths joins route prefixes and sub-paths into canonical route keys
package paths

import "strings"

const (
	separator       = "/"
	doubleSeparator = "//"
)

// Join concatenates prefix and subpath into a route key. subpath is anchored
// with a leading '/' when it lacks one, and every run of '/' in the result is
// collapsed to a single '/'. Join never fails; callers validate prefixes.
func Join(prefix, subpath string) string {
	if !strings.HasPrefix(subpath, separator) {
		subpath = separator + subpath
	}
	key := prefix + subpath
	for strings.Contains(key, doubleSeparator) {
		key = strings.ReplaceAll(key, doubleSeparator, separator)
	}
	return key
}
