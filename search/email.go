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
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jplu/urikit/charclass"
)

// EmailMatch is the position of an email address in a text, split into its
// local part and its domain. Offsets are byte offsets.
type EmailMatch struct {
	Start       int
	End         int
	LocalEnd    int
	DomainStart int
}

// Text returns the whole address.
func (m EmailMatch) Text(text string) string { return text[m.Start:m.End] }

// Local returns the part of the address before the '@'.
func (m EmailMatch) Local(text string) string { return text[m.Start:m.LocalEnd] }

// Domain returns the part of the address after the '@'.
func (m EmailMatch) Domain(text string) string { return text[m.DomainStart:m.End] }

// EmailRecognizer finds email addresses in text. It is immutable and safe
// for concurrent use.
type EmailRecognizer struct {
	userinfo charclass.Class
	regname  charclass.Class
}

// NewEmailRecognizer builds an email recognizer from the character classes
// of table. The local part may hold any userinfo character but '%', which
// some mail systems use for routing; the domain is two or more labels and the
// last one has at least two characters.
func NewEmailRecognizer(table *charclass.Table) *EmailRecognizer {
	return &EmailRecognizer{
		userinfo: table.Userinfo(),
		regname:  table.Regname(),
	}
}

// Emails returns the recognizer built from the default character classes.
var Emails = sync.OnceValue(func() *EmailRecognizer {
	return NewEmailRecognizer(charclass.Default())
})

// Find returns the leftmost email address of text.
func (r *EmailRecognizer) Find(text string) (EmailMatch, bool) {
	return r.findFrom(text, 0)
}

// FindAll returns successive non-overlapping email addresses of text. When
// n >= 0 at most n matches are returned.
func (r *EmailRecognizer) FindAll(text string, n int) []EmailMatch {
	var matches []EmailMatch
	for pos := 0; n < 0 || len(matches) < n; {
		m, ok := r.findFrom(text, pos)
		if !ok {
			break
		}
		matches = append(matches, m)
		pos = m.End
	}
	return matches
}

// findFrom scans text[pos:] run by run. Every start inside a run of
// local-part characters reaches the same '@' and the same domain, so the
// domain is matched once per run and the match starts at the first position
// of the run that does not sit in the middle of something.
func (r *EmailRecognizer) findFrom(text string, pos int) (EmailMatch, bool) {
	for pos < len(text) {
		c, size := utf8.DecodeRuneInString(text[pos:])
		if !r.isLocalRune(c) {
			pos += size
			continue
		}
		at := runEnd(text, pos, r.isLocalRune)
		if at < len(text) && text[at] == '@' {
			if end, ok := r.domainEnd(text, at+1); ok {
				for start := pos; start < at; {
					if startsToken(text, start) || strings.HasSuffix(text[:start], "mailto://") {
						return EmailMatch{Start: start, End: end, LocalEnd: at, DomainStart: at + 1}, true
					}
					_, n := utf8.DecodeRuneInString(text[start:])
					start += n
				}
			}
		}
		pos = at
	}
	return EmailMatch{}, false
}

// domainEnd returns the end of the longest domain starting at pos: one or
// more labels each followed by a dot, then a last label of at least two
// runes. The last label may be one that a further dot follows, when what
// comes after that dot is too short.
func (r *EmailRecognizer) domainEnd(text string, pos int) (int, bool) {
	end, dots := -1, 0
	for {
		e := runEnd(text, pos, r.isLabelRune)
		if dots > 0 && utf8.RuneCountInString(text[pos:e]) >= 2 {
			end = e
		}
		if e == pos || e == len(text) || text[e] != '.' {
			break
		}
		dots++
		pos = e + 1
	}
	return end, end >= 0
}

func (r *EmailRecognizer) isLocalRune(c rune) bool {
	return c != '%' && r.userinfo.Allows(c)
}

func (r *EmailRecognizer) isLabelRune(c rune) bool {
	return c != '.' && r.regname.Allows(c)
}
