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

package uri

import (
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/jplu/urikit/charclass"
)

const upperhex = "0123456789ABCDEF"

// isAlwaysSafe reports whether c is never percent-encoded: ALPHA / DIGIT /
// "_" / "." / "-" / "~".
func isAlwaysSafe(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '_' || c == '.' || c == '-' || c == '~'
}

// quote percent-encodes, with upper-case hex digits, every byte of the UTF-8
// string s that is neither always safe nor accepted by safe. With plus set, a
// space becomes '+'.
func quote(s string, safe func(byte) bool, plus bool) string {
	n := 0
	for i := range len(s) {
		if c := s[i]; !isAlwaysSafe(c) && !safe(c) && !(plus && c == ' ') {
			n++
		}
	}
	if n == 0 && !(plus && strings.IndexByte(s, ' ') >= 0) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := range len(s) {
		switch c := s[i]; {
		case isAlwaysSafe(c) || safe(c):
			b.WriteByte(c)
		case plus && c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

// quoteClass percent-encodes s, keeping the members of class.
func quoteClass(s string, class charclass.Class) string {
	return quote(s, class.Contains, false)
}

// safeBytes returns a predicate accepting the bytes of safe.
func safeBytes(safe string) func(byte) bool {
	return func(c byte) bool { return strings.IndexByte(safe, c) >= 0 }
}

// Quote percent-encodes the UTF-8 bytes of s, keeping alphanumerics, "_.-~"
// and the characters of safe. It matches urllib's quote applied to the UTF-8
// encoding of s; the conventional safe set for paths is "/".
func Quote(s, safe string) string {
	return quote(decodeLenient(s), safeBytes(safe), false)
}

// QuotePlus is like Quote but writes spaces as '+', as form encoding does.
// A literal '+' is escaped unless it is in safe.
func QuotePlus(s, safe string) string {
	return quote(decodeLenient(s), safeBytes(safe), true)
}

// Unquote decodes every "%XX" triplet of s and decodes the resulting bytes
// leniently. Malformed triplets are kept.
func Unquote(s string) string {
	return decodeLenient(unquoteAll(s, false))
}

// UnquotePlus is like Unquote but also reads '+' as a space.
func UnquotePlus(s string) string {
	return decodeLenient(unquoteAll(s, true))
}

// EncodeQuery renders v as "k=v&k=v" with QuotePlus applied to keys and
// values. Keys are sorted; values keep their order.
func EncodeQuery(v url.Values) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(v)) {
		key := QuotePlus(k, "")
		for _, val := range v[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(QuotePlus(val, ""))
		}
	}
	return b.String()
}

// ParseQuery parses a form-encoded query string. Pairs are separated by '&';
// names and values are decoded with UnquotePlus. Pairs without '=' and pairs
// with an empty value are dropped unless keepBlank is set.
func ParseQuery(q string, keepBlank bool) url.Values {
	v := url.Values{}
	for pair := range strings.SplitSeq(q, "&") {
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if (!ok || value == "") && !keepBlank {
			continue
		}
		name = UnquotePlus(name)
		v[name] = append(v[name], UnquotePlus(value))
	}
	return v
}
