/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package search

import (
	"sync"

	"github.com/coregx/coregex"
)

// lineNumber matches one ":12" group. The groups that trail a path are
// found by chaining the matches back from the end: an anchored, repeated
// group is not matched reliably by coregex.
var lineNumber = sync.OnceValue(func() *coregex.Regex {
	return coregex.MustCompile(`:[0-9]+`)
})

// StripLineNumbers splits the URL m of text into the link proper and the
// line numbers that trail its path, so that "http://a.com/app.js:12:34" links
// to "http://a.com/app.js". A port is never taken for a line number, since
// only the path is searched. When there is nothing to strip suffix is empty.
func StripLineNumbers(text string, m Match) (link, suffix string) {
	link = m.Text(text)
	if m.PathStart < 0 {
		return link, ""
	}
	path := text[m.PathStart:m.End]
	cut := len(path)
	hits := lineNumber().FindAllStringIndex(path, -1)
	for i := len(hits) - 1; i >= 0 && hits[i][1] == cut; i-- {
		cut = hits[i][0]
	}
	if cut == len(path) {
		return link, ""
	}
	cut += m.PathStart
	return text[m.Start:cut], text[cut:m.End]
}
