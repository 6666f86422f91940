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
	"bufio"
	"bytes"
	_ "embed" // Note the blank import for go:embed
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"braces.dev/errtrace"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

//go:generate go run ../cmd/gentlds -o tlds-alpha-by-domain.txt

//go:embed tlds-alpha-by-domain.txt
var embeddedTLDData []byte

// ErrInvalidTLDList is returned by ParseTLDs for data that is not a TLD list
// in the IANA format.
var ErrInvalidTLDList = errors.New("invalid TLD list")

// TLDSet is an immutable, case-insensitive set of top-level domain labels.
// Entries are stored in lower case; every punycoded entry is also stored in
// its Unicode form, so that both "xn--fiqs8s" and "中国" are members.
type TLDSet struct {
	version string
	names   map[string]struct{}
	// maxRunes is the length of the longest entry, in runes.
	maxRunes int
}

// ParseTLDs reads a TLD list in the format of
// https://data.iana.org/TLD/tlds-alpha-by-domain.txt: an optional
// "# Version ..." comment line followed by one label per line. Other
// comments and blank lines are ignored.
func ParseTLDs(r io.Reader) (*TLDSet, error) {
	scanner := bufio.NewScanner(r)
	set := &TLDSet{names: make(map[string]struct{})}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if comment, ok := strings.CutPrefix(line, "#"); ok {
			if version, ok := strings.CutPrefix(strings.TrimSpace(comment), "Version "); ok && set.version == "" {
				set.version = version
			}
			continue
		}
		if err := set.add(line); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: line %d: %w", ErrInvalidTLDList, lineNo, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if len(set.names) == 0 {
		return nil, errtrace.Wrap(fmt.Errorf("%w: no entries", ErrInvalidTLDList))
	}
	return set, nil
}

// add inserts an ASCII label and, when it is punycoded, its Unicode form.
func (s *TLDSet) add(label string) error {
	for i := range len(label) {
		c := label[i]
		if !('a' <= c && c <= 'z') && !('A' <= c && c <= 'Z') && !('0' <= c && c <= '9') && c != '-' {
			return errtrace.Wrap(fmt.Errorf("unexpected character %q in %q", c, label))
		}
	}
	label = strings.ToLower(label)
	s.insert(label)
	if strings.HasPrefix(label, "xn--") {
		u, err := idna.Punycode.ToUnicode(label)
		if err != nil {
			return errtrace.Wrap(fmt.Errorf("cannot decode %q: %w", label, err))
		}
		s.insert(norm.NFC.String(u))
	}
	return nil
}

func (s *TLDSet) insert(label string) {
	s.names[label] = struct{}{}
	s.maxRunes = max(s.maxRunes, utf8.RuneCountInString(label))
}

// Contains reports whether label is in the set, ignoring case.
func (s *TLDSet) Contains(label string) bool {
	_, ok := s.names[strings.ToLower(label)]
	return ok
}

// Len returns the number of entries, Unicode forms included.
func (s *TLDSet) Len() int { return len(s.names) }

// Version returns the version line of the source list, or "".
func (s *TLDSet) Version() string { return s.version }

// All returns the entries in lexical order.
func (s *TLDSet) All() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(s.names)))
}

// Filter returns the subset of entries for which keep returns true.
func (s *TLDSet) Filter(keep func(label string) bool) *TLDSet {
	sub := &TLDSet{version: s.version, names: make(map[string]struct{})}
	for label := range s.names {
		if keep(label) {
			sub.insert(label)
		}
	}
	return sub
}

// prefixEnds returns, longest first, the offsets at which a member of the set
// starting at text[pos:] ends.
func (s *TLDSet) prefixEnds(text string, pos int) []int {
	var ends []int
	n := 0
	for i := pos; i < len(text) && n < s.maxRunes; {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		n++
		if s.Contains(text[pos:i]) {
			ends = append(ends, i)
		}
	}
	slices.Reverse(ends)
	return ends
}

// TLDs returns the set of every top-level domain of the embedded IANA list.
var TLDs = sync.OnceValue(func() *TLDSet {
	set, err := ParseTLDs(bytes.NewReader(embeddedTLDData))
	if err != nil {
		panic(err)
	}
	return set
})

// CommonTLDs returns the subset of TLDs that rarely show up as the last part
// of a dotted name that is not a domain: the pre-2013 generic TLDs,
// internationalized TLDs, and the two-letter country codes that do not double
// as file extensions or identifiers (os.name, main.py, x.js).
var CommonTLDs = sync.OnceValue(func() *TLDSet {
	return TLDs().Filter(isCommonTLD)
})

// genericTLDs are the generic TLDs that predate the 2013 expansion, less
// "name", which is a common identifier.
var genericTLDs = map[string]bool{
	"aero": true, "arpa": true, "asia": true, "biz": true, "cat": true,
	"com": true, "coop": true, "edu": true, "gov": true, "info": true,
	"int": true, "jobs": true, "mil": true, "mobi": true, "museum": true,
	"net": true, "org": true, "post": true, "pro": true, "tel": true,
	"travel": true, "xxx": true,
}

// codeLikeTLDs are country codes that are also file extensions, language
// names or common words in code.
var codeLikeTLDs = map[string]bool{
	"as": true, "at": true, "be": true, "by": true, "cc": true, "do": true,
	"go": true, "id": true, "in": true, "is": true, "it": true, "md": true,
	"me": true, "ml": true, "no": true, "pl": true, "pm": true, "py": true,
	"rs": true, "sh": true, "so": true, "to": true,
}

func isCommonTLD(label string) bool {
	switch {
	case genericTLDs[label]:
		return true
	case strings.HasPrefix(label, "xn--") || !isASCII(label):
		return true
	case len(label) == 2:
		return !codeLikeTLDs[label]
	default:
		return false
	}
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
