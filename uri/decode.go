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

	"golang.org/x/text/encoding/charmap"

	"github.com/jplu/urikit/internal/constraints"
)

// decodeLenient turns bytes of unknown encoding into text without ever
// failing. Valid UTF-8 sequences are kept as they are; every byte that is not
// part of one is decoded as Windows-1252. The five positions Windows-1252
// leaves unassigned (0x81, 0x8D, 0x8F, 0x90 and 0x9D) are read as Latin-1,
// that is as the C1 control character of the same value, so no byte is lost.
func decodeLenient[T constraints.Byteseq](b T) string {
	s := string(b)
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/2)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			c := charmap.Windows1252.DecodeByte(s[i])
			if c == utf8.RuneError {
				c = rune(s[i])
			}
			sb.WriteRune(c)
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	return sb.String()
}
