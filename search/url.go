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

// Package search finds URIs and email addresses in free-form text.
//
// A URL is either introduced by "http://", "https://" or "www." and followed
// by any dotted hostname, or is a bare dotted hostname whose last label is a
// known top-level domain. An optional path, query or fragment follows; it may
// not end in punctuation that more likely belongs to the surrounding prose,
// and it may only end in ')' when it contains a '('.
//
// Matches never start in the middle of a word, a dotted name, an email
// address or a path, and never after "mailto:".
package search

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/jplu/urikit/charclass"
)

// Match is the position of a URL in a text. Offsets are byte offsets.
type Match struct {
	Start int
	End   int
	// AuthorityEnd is the end of the hostname and optional port.
	AuthorityEnd int
	// PathStart is the offset of the '/', '?' or '#' that starts the path,
	// query or fragment, or -1 when the URL ends with its authority.
	PathStart int
}

// Text returns the matched part of text.
func (m Match) Text(text string) string { return text[m.Start:m.End] }

// URLRecognizer finds URLs in text. It is immutable and safe for concurrent
// use.
type URLRecognizer struct {
	regname  charclass.Class
	userinfo charclass.Class
	url      charclass.Class
	badEnd   charclass.Class
	tlds     *TLDSet
}

// NewURLRecognizer returns a recognizer using the character classes of table
// and accepting the members of tlds as the last label of a bare hostname.
func NewURLRecognizer(table *charclass.Table, tlds *TLDSet) *URLRecognizer {
	return &URLRecognizer{
		regname:  table.Regname(),
		userinfo: table.Userinfo(),
		url:      table.URL(),
		badEnd:   table.BadEnd(),
		tlds:     tlds,
	}
}

var (
	// URLs returns the recognizer that accepts every IANA top-level domain.
	URLs = sync.OnceValue(func() *URLRecognizer {
		return NewURLRecognizer(charclass.Default(), TLDs())
	})
	// CommonURLs returns the recognizer restricted to CommonTLDs, which gives
	// fewer false positives on prose that mentions code.
	CommonURLs = sync.OnceValue(func() *URLRecognizer {
		return NewURLRecognizer(charclass.Default(), CommonTLDs())
	})
)

// Find returns the leftmost URL of text.
func (r *URLRecognizer) Find(text string) (Match, bool) {
	return r.findFrom(text, 0)
}

// FindAll returns successive non-overlapping URLs of text. When n >= 0 at
// most n matches are returned.
func (r *URLRecognizer) FindAll(text string, n int) []Match {
	var matches []Match
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

func (r *URLRecognizer) findFrom(text string, pos int) (Match, bool) {
	for pos <= len(text) {
		if m, ok := r.MatchAt(text, pos); ok {
			return m, true
		}
		if pos == len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return Match{}, false
}

// MatchAt reports whether a URL starts exactly at byte offset pos of text.
// The text before pos is only used to check that the URL does not start in
// the middle of something.
func (r *URLRecognizer) MatchAt(text string, pos int) (Match, bool) {
	if pos < 0 || pos > len(text) || !startsToken(text, pos) || hasPrefixFold(text[pos:], "mailto:") {
		return Match{}, false
	}
	if m, ok := r.matchPrefixed(text, pos); ok {
		return m, true
	}
	return r.matchBare(text, pos)
}

// startsToken reports whether the rune before pos, if any, lets a match
// start at pos: it must not be a word character, nor one of ".@/:-".
func startsToken(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !charclass.IsWord(prev) && !strings.ContainsRune(".@/:-", prev)
}

// matchPrefixed matches a known prefix, an optional "user@", then any dotted
// hostname whose last label has at least two characters.
func (r *URLRecognizer) matchPrefixed(text string, start int) (Match, bool) {
	var prefix int
	switch rest := text[start:]; {
	case hasPrefixFold(rest, "https://"):
		prefix = len("https://")
	case hasPrefixFold(rest, "http://"):
		prefix = len("http://")
	case hasPrefixFold(rest, "www."):
		prefix = len("www.")
	default:
		return Match{}, false
	}
	pos := start + prefix

	if u := runEnd(text, pos, r.userinfo.Allows); u > pos && u < len(text) && text[u] == '@' {
		if m, ok := r.matchHost(text, start, u+1); ok {
			return m, true
		}
	}
	return r.matchHost(text, start, pos)
}

func (r *URLRecognizer) matchHost(text string, start, host int) (Match, bool) {
	end := runEnd(text, host, r.regname.Allows)
	for dot := end - 1; dot > host; dot-- {
		if text[dot] != '.' {
			continue
		}
		last := runEnd(text, dot+1, r.isLabelRune)
		for _, e := range runeEnds(text, dot+1, last, 2) {
			if m, ok := r.matchTail(text, start, e); ok {
				return m, true
			}
		}
	}
	return Match{}, false
}

// matchBare matches one or more labels, each followed by a dot, then a known
// top-level domain.
func (r *URLRecognizer) matchBare(text string, start int) (Match, bool) {
	var tldStarts []int
	for pos := start; ; {
		e := runEnd(text, pos, r.isLabelRune)
		if e == pos || e == len(text) || text[e] != '.' {
			break
		}
		pos = e + 1
		tldStarts = append(tldStarts, pos)
	}
	for _, tld := range slices.Backward(tldStarts) {
		for _, e := range r.tlds.prefixEnds(text, tld) {
			if m, ok := r.matchTail(text, start, e); ok {
				return m, true
			}
		}
	}
	return Match{}, false
}

// matchTail matches an optional port after the hostname ending at host, then
// the optional path.
func (r *URLRecognizer) matchTail(text string, start, host int) (Match, bool) {
	if host < len(text) && text[host] == ':' {
		digits := runEnd(text, host+1, unicode.IsDigit)
		for _, e := range runeEnds(text, host+1, digits, 1) {
			if m, ok := r.matchPath(text, start, e); ok {
				return m, true
			}
		}
	}
	return r.matchPath(text, start, host)
}

// matchPath matches the optional path, query or fragment starting at auth,
// longest first, and checks that the URL ends nicely.
func (r *URLRecognizer) matchPath(text string, start, auth int) (Match, bool) {
	if auth < len(text) && strings.IndexByte("/?#", text[auth]) >= 0 {
		body := auth + 1
		parens := r.hasParens(text, body)
		end := runEnd(text, body, func(c rune) bool {
			return r.url.Allows(c) && (parens || c != ')')
		})
		for _, j := range runeEnds(text, body, end, 0) {
			if j == len(text) {
				continue
			}
			c, size := utf8.DecodeRuneInString(text[j:])
			if r.badEnd.Matches(c) || (c == ')' && !parens) {
				continue
			}
			if r.endsNicely(text, j+size) {
				return Match{Start: start, End: j + size, AuthorityEnd: auth, PathStart: auth}, true
			}
		}
		if r.endsNicely(text, body) {
			return Match{Start: start, End: body, AuthorityEnd: auth, PathStart: auth}, true
		}
	}
	if r.endsNicely(text, auth) {
		return Match{Start: start, End: auth, AuthorityEnd: auth, PathStart: -1}, true
	}
	return Match{}, false
}

// hasParens reports whether a '(' shows up in text[pos:] before the first
// ':' or character that cannot be part of a URL.
func (r *URLRecognizer) hasParens(text string, pos int) bool {
	for _, c := range text[pos:] {
		switch {
		case c == '(':
			return true
		case c == ':' || !r.url.Allows(c):
			return false
		}
	}
	return false
}

// endsNicely reports whether a URL may end at pos: at the end of the text, or
// before ')' or a bad ending character.
func (r *URLRecognizer) endsNicely(text string, pos int) bool {
	if pos == len(text) {
		return true
	}
	c, _ := utf8.DecodeRuneInString(text[pos:])
	return c == ')' || r.badEnd.Matches(c)
}

func (r *URLRecognizer) isLabelRune(c rune) bool {
	return c != '.' && r.regname.Allows(c)
}

// runEnd returns the end of the run of runes of text[pos:] accepted by ok.
func runEnd(text string, pos int, ok func(rune) bool) int {
	for i, c := range text[pos:] {
		if !ok(c) {
			return pos + i
		}
	}
	return len(text)
}

// runeEnds returns, longest first, the offsets at which a prefix of
// text[from:to] of at least minRunes runes ends. The empty prefix ends at
// from.
func runeEnds(text string, from, to, minRunes int) []int {
	var ends []int
	if minRunes == 0 {
		ends = append(ends, from)
	}
	n := 0
	for i := from; i < to; {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		n++
		if n >= minRunes {
			ends = append(ends, i)
		}
	}
	slices.Reverse(ends)
	return ends
}

// hasPrefixFold reports whether s starts with the ASCII string prefix,
// ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := range len(prefix) {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
