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

// Package charclass derives the RFC 3986 character classes used to encode URI
// components and to recognize URIs in free text.
//
// Every class is a subset of printable ASCII. When a class is used as a
// pattern class it follows the usual regular-expression conventions: a class
// that spells out the whole whitespace group also matches any Unicode white
// space, and a class that spells out every alphanumeric plus '_' also matches
// any Unicode letter or number. See Class.Matches and Class.Allows.
package charclass

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	digits     = "0123456789"
	letters    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphanum   = digits + letters
	punct      = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	whitespace = " \t\n\r\v\f"
	// printable is the universe every class and complement is drawn from.
	printable = digits + letters + punct + whitespace
)

// Class is an immutable set of printable ASCII characters.
type Class struct {
	name  string
	set   [utf8.RuneSelf]bool
	space bool
	word  bool
	// Flags of the complement, kept so that Allows needs no allocation.
	notSpace bool
	notWord  bool
}

// newClass builds a class named name from the printable characters of chars.
// Characters outside printable ASCII are ignored.
func newClass(name, chars string) Class {
	c := Class{name: name}
	for i := range len(chars) {
		if b := chars[i]; b < utf8.RuneSelf && strings.IndexByte(printable, b) >= 0 {
			c.set[b] = true
		}
	}
	c.space, c.word = c.flags(false)
	c.notSpace, c.notWord = c.flags(true)
	return c
}

// flags reports whether the class (or its complement when negate is set)
// contains the whole whitespace group and the whole word group.
func (c *Class) flags(negate bool) (bool, bool) {
	has := func(s string) bool {
		for i := range len(s) {
			if c.set[s[i]] == negate {
				return false
			}
		}
		return true
	}
	return has(whitespace), has(alphanum + "_")
}

// Name returns the name of the class, e.g. "pchar" or "not_pchar".
func (c Class) Name() string { return c.name }

// Contains reports whether the ASCII byte b is a member of the class.
func (c Class) Contains(b byte) bool {
	return b < utf8.RuneSelf && c.set[b]
}

// Matches reports whether r matches the class used as a positive pattern
// class, "[X]".
func (c Class) Matches(r rune) bool {
	if isPrintable(r) {
		return c.set[r]
	}
	return (c.space && IsSpace(r)) || (c.word && IsWord(r))
}

// Allows reports whether r matches the pattern class "[^not_X]", that is
// anything the complement of X does not match. Unlike Matches it accepts
// non-ASCII characters that are neither white space nor, for classes whose
// complement contains the word group, word characters.
func (c Class) Allows(r rune) bool {
	if isPrintable(r) {
		return c.set[r]
	}
	return !(c.notSpace && IsSpace(r)) && !(c.notWord && IsWord(r))
}

// Not returns the complement of the class within printable ASCII.
func (c Class) Not() Class {
	var b strings.Builder
	for i := range len(printable) {
		if !c.set[printable[i]] {
			b.WriteByte(printable[i])
		}
	}
	name := "not_" + c.name
	if n, ok := strings.CutPrefix(c.name, "not_"); ok {
		name = n
	}
	return newClass(name, b.String())
}

// Union returns a new class holding the members of c and the printable
// characters of extra.
func (c Class) Union(name, extra string) Class {
	return newClass(name, c.String()+extra)
}

// Without returns a new class holding the members of c minus the characters
// of drop.
func (c Class) Without(name, drop string) Class {
	var b strings.Builder
	for i := range len(printable) {
		if ch := printable[i]; c.set[ch] && strings.IndexByte(drop, ch) < 0 {
			b.WriteByte(ch)
		}
	}
	return newClass(name, b.String())
}

// String returns the members of the class in printable order.
func (c Class) String() string {
	var b strings.Builder
	for i := range len(printable) {
		if c.set[printable[i]] {
			b.WriteByte(printable[i])
		}
	}
	return b.String()
}

// ClassBody returns the class as the body of a regular-expression character
// class, suitable for both "[...]" and "[^...]". White space and word groups
// are written as their Unicode counterparts so that the compiled class
// behaves like Matches.
func (c Class) ClassBody() string {
	var b strings.Builder
	if c.word {
		b.WriteString(`\p{L}\p{N}_`)
	}
	if c.space {
		b.WriteString(`\t-\r\x{1c}-\x{20}\x{85}\p{Z}`)
	}
	for i := range len(printable) {
		ch := printable[i]
		switch {
		case !c.set[ch]:
		case c.word && (ch == '_' || strings.IndexByte(alphanum, ch) >= 0):
		case c.space && strings.IndexByte(whitespace, ch) >= 0:
		case strings.IndexByte(punct, ch) >= 0:
			b.WriteByte('\\')
			b.WriteByte(ch)
		case ch == '\t':
			b.WriteString(`\t`)
		case ch == '\n':
			b.WriteString(`\n`)
		case ch == '\r':
			b.WriteString(`\r`)
		case ch == '\v':
			b.WriteString(`\v`)
		case ch == '\f':
			b.WriteString(`\f`)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func isPrintable(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(printable, byte(r)) >= 0
}

// IsSpace reports whether r is white space in the sense of a Unicode-aware
// "\s": Unicode white space plus the ASCII information separators
// U+001C..U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// IsWord reports whether r is a word character in the sense of a
// Unicode-aware "\w": a letter, a number or '_'.
func IsWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
