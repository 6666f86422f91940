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
	"strings"
	"unicode/utf8"

	"github.com/jplu/urikit/charclass"
)

// unquoteSelective unescapes the "%XX" triplets of s that stand for a
// non-ASCII byte or for a plaintext character (alphanumerics, '_' and '-').
// Every other triplet, including the structural ones such as %2F, %3F, %26
// and %25, is kept with its original spelling, and a '%' that does not start
// a triplet is kept as is. The result is raw bytes: decoding them is left to
// the caller.
//
// Unescaping only what can never carry structure is what makes Recode safe on
// input that is already escaped, or escaped twice.
func unquoteSelective(s string, plaintext charclass.Class) []byte {
	if strings.IndexByte(s, '%') < 0 {
		return []byte(s)
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b := unhex(s[i+1])<<4 | unhex(s[i+2])
			if b >= utf8.RuneSelf || plaintext.Contains(b) {
				out = append(out, b)
				i += 2
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// unquoteAll unescapes every well-formed "%XX" triplet of s. When plus is set
// '+' is read as a space, as in form-encoded queries.
func unquoteAll(s string, plus bool) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		case c == '+' && plus:
			out = append(out, ' ')
		default:
			out = append(out, c)
		}
	}
	return out
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
