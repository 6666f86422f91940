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

// Package linkify turns the URLs found in plain text into HTML links.
//
// Every URL found is linked to its encoded form and displayed in its decoded
// form; the rest of the text is escaped. Line numbers that trail a path, as
// in "http://example.com/app.js:12", are kept out of the link.
package linkify

import (
	"html/template"
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/jplu/urikit/internal/log"
	"github.com/jplu/urikit/search"
	"github.com/jplu/urikit/uri"
)

// Linkifier turns URLs into links. It is immutable and safe for concurrent
// use.
type Linkifier struct {
	escaper         Escaper
	recognizer      *search.URLRecognizer
	logger          *slog.Logger
	skipMalformed   bool
	keepLineNumbers bool
}

// Option configures a Linkifier.
type Option func(*Linkifier)

// WithEscaper sets the markup collaborator. The default is HTMLEscaper.
func WithEscaper(e Escaper) Option {
	return func(l *Linkifier) { l.escaper = e }
}

// WithRecognizer sets the URL recognizer. The default is search.CommonURLs,
// which ignores dotted names such as "main.py".
func WithRecognizer(r *search.URLRecognizer) Option {
	return func(l *Linkifier) { l.recognizer = r }
}

// WithLogger sets the logger that reports skipped URLs. By default nothing
// is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linkifier) { l.logger = logger }
}

// SkipMalformed leaves URLs that cannot be encoded as plain text instead of
// failing the whole call.
func SkipMalformed() Option {
	return func(l *Linkifier) { l.skipMalformed = true }
}

// KeepLineNumbers links trailing line numbers together with the URL.
func KeepLineNumbers() Option {
	return func(l *Linkifier) { l.keepLineNumbers = true }
}

// New returns a Linkifier configured with opts.
func New(opts ...Option) *Linkifier {
	l := &Linkifier{
		escaper: HTMLEscaper{},
		logger:  log.Noop,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.recognizer == nil {
		l.recognizer = search.CommonURLs()
	}
	return l
}

// Linkify escapes text and turns the URLs it contains into links. It fails
// with a *uri.MalformedURLError when a URL cannot be encoded, unless the
// Linkifier skips malformed URLs.
func (l *Linkifier) Linkify(text string) (template.HTML, error) {
	var b strings.Builder
	prev := 0
	for _, m := range l.recognizer.FindAll(text, -1) {
		link, suffix := m.Text(text), ""
		if !l.keepLineNumbers {
			link, suffix = search.StripLineNumbers(text, m)
		}
		anchor, err := l.anchor(link)
		if err != nil {
			if !l.skipMalformed {
				return "", errtrace.Wrap(err)
			}
			l.logger.Debug("leaving malformed URL as text", slog.Any("url", log.StringValue(link)), slog.Any("error", err))
			continue
		}
		b.WriteString(string(l.escaper.EscapeText(text[prev:m.Start])))
		b.WriteString(string(anchor))
		b.WriteString(string(l.escaper.EscapeText(suffix)))
		prev = m.End
	}
	b.WriteString(string(l.escaper.EscapeText(text[prev:])))
	return template.HTML(b.String()), nil //nolint:gosec // Built from escaped parts.
}

// anchor links to the encoded form of link and displays its decoded form.
// Links without an http or https scheme get "http://".
func (l *Linkifier) anchor(link string) (template.HTML, error) {
	text, err := uri.Decode(link)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	href, err := uri.Encode(link)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		href = "http://" + href
	}
	return l.escaper.Anchor(href, text), nil
}

// Linkify escapes text with e and links its URLs, using the default
// settings. A nil e means HTMLEscaper.
func Linkify(text string, e Escaper) (template.HTML, error) {
	if e == nil {
		e = HTMLEscaper{}
	}
	return errtrace.Wrap2(New(WithEscaper(e)).Linkify(text))
}
