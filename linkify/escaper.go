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

package linkify

import (
	"html/template"

	"golang.org/x/net/html"
)

// Escaper turns text into safe markup. Implementations must escape
// everything they are given, since the href and the text of an anchor come
// from user input.
type Escaper interface {
	// EscapeText escapes s for inclusion as HTML text.
	EscapeText(s string) template.HTML
	// Anchor returns an "a" element linking to href with text as its content.
	Anchor(href, text string) template.HTML
}

// HTMLEscaper is the default Escaper. It escapes the five characters
// significant in HTML text and attribute values: '<', '>', '&', '\'' and '"'.
type HTMLEscaper struct{}

// EscapeText implements Escaper.
func (HTMLEscaper) EscapeText(s string) template.HTML {
	return template.HTML(html.EscapeString(s)) //nolint:gosec // s is escaped.
}

// Anchor implements Escaper.
func (HTMLEscaper) Anchor(href, text string) template.HTML {
	return template.HTML(`<a href="` + html.EscapeString(href) + `">` + html.EscapeString(text) + `</a>`) //nolint:gosec // Both parts are escaped.
}
