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

	"braces.dev/errtrace"
	"github.com/xdg-go/stringprep"
	"golang.org/x/net/idna"

	"github.com/jplu/urikit/charclass"
)

const (
	// acePrefix marks a punycoded label (RFC 3490, Section 5).
	acePrefix = "xn--"
	// maxLabelLength is the longest label DNS allows, in octets.
	maxLabelLength = 63
)

// nameprep is the Nameprep profile of stringprep (RFC 3491): map table B.1
// to nothing, case-fold with table B.2, normalize with NFKC, prohibit tables
// C.1.2 and C.2.2 through C.9 and check the bidi rules. Unassigned code
// points are allowed, as they are for queries.
var nameprep = stringprep.Profile{
	Mappings:  []stringprep.Mapping{stringprep.TableB1, stringprep.TableB2},
	Normalize: true,
	Prohibits: []stringprep.Set{
		stringprep.TableC1_2,
		stringprep.TableC2_2,
		stringprep.TableC3,
		stringprep.TableC4,
		stringprep.TableC5,
		stringprep.TableC6,
		stringprep.TableC7,
		stringprep.TableC8,
		stringprep.TableC9,
	},
	CheckBiDi: true,
}

// encodeHostname applies the IDNA ToASCII operation to a hostname after
// removing leading and trailing dots and collapsing runs of dots, the way
// browsers fix up such hostnames.
func encodeHostname(host string) (string, error) {
	host = collapseDots(strings.Trim(host, "."))
	ascii, err := toASCII(host)
	if err != nil {
		return "", &MalformedURLError{Kind: HostnameInvalid, Fragment: host, Err: err}
	}
	return ascii, nil
}

func collapseDots(s string) string {
	if !strings.Contains(s, "..") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := range len(s) {
		if s[i] == '.' && i > 0 && s[i-1] == '.' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// toASCII converts a domain name to its ASCII form (RFC 3490, Section 4.1).
// An all-ASCII name is returned unchanged, case included, once its label
// lengths are checked. Otherwise every label is converted on its own; the
// label separators are FULL STOP and its ideographic, fullwidth and halfwidth
// variants, and a trailing separator is kept as a dot.
func toASCII(domain string) (string, error) {
	if domain == "" {
		return "", nil
	}
	if isASCII(domain) {
		labels := strings.Split(domain, ".")
		for _, label := range labels[:len(labels)-1] {
			if label == "" || len(label) > maxLabelLength {
				return "", ErrLabelEmptyOrTooLong.with(label, nil)
			}
		}
		if last := labels[len(labels)-1]; len(last) > maxLabelLength {
			return "", ErrLabelTooLong.with(last, nil)
		}
		return domain, nil
	}

	parts := splitLabels(domain)
	trailingDot := false
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		trailingDot = true
		parts = parts[:len(parts)-1]
	}
	var b strings.Builder
	for i, label := range parts {
		ascii, err := labelToASCII(label)
		if err != nil {
			return "", errtrace.Wrap(err)
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(ascii)
	}
	if trailingDot {
		b.WriteByte('.')
	}
	return b.String(), nil
}

// splitLabels splits a domain name on every IDNA label separator.
func splitLabels(domain string) []string {
	var labels []string
	start := 0
	for i, r := range domain {
		switch r {
		case '.', '。', '．', '｡':
			labels = append(labels, domain[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(labels, domain[start:])
}

// labelToASCII is ToASCII for a single label with AllowUnassigned set and
// UseSTD3ASCIIRules unset.
func labelToASCII(label string) (string, error) {
	if isASCII(label) {
		return checkLabel(label)
	}
	prepared, err := nameprep.Prepare(label)
	if err != nil {
		return "", ErrNameprep.with(label, err)
	}
	if isASCII(prepared) {
		return checkLabel(prepared)
	}
	if strings.HasPrefix(prepared, acePrefix) {
		return "", ErrACEPrefix.with(label, nil)
	}
	ascii, err := idna.Punycode.ToASCII(prepared)
	if err != nil {
		return "", ErrPunycode.with(label, err)
	}
	return checkLabel(ascii)
}

func checkLabel(label string) (string, error) {
	if label == "" || len(label) > maxLabelLength {
		return "", ErrLabelEmptyOrTooLong.with(label, nil)
	}
	return label, nil
}

// decodeHostname selectively unquotes a hostname and decodes it for display.
// When a label carries the ACE prefix the hostname is IDNA-decoded label by
// label; otherwise it is decoded leniently. IDNA decoding is not idempotent,
// so it is only applied to names that look punycoded.
func decodeHostname(host string, plaintext charclass.Class) (string, error) {
	raw := string(unquoteSelective(host, plaintext))
	labels := strings.Split(raw, ".")
	punycoded := false
	for _, label := range labels {
		if strings.HasPrefix(label, acePrefix) {
			punycoded = true
			break
		}
	}
	if !punycoded {
		return decodeLenient(raw), nil
	}

	trailingDot := false
	if labels[len(labels)-1] == "" {
		trailingDot = true
		labels = labels[:len(labels)-1]
	}
	for i, label := range labels {
		if !strings.HasPrefix(label, acePrefix) {
			labels[i] = decodeLenient(label)
			continue
		}
		u, err := labelToUnicode(label)
		if err != nil {
			return "", &MalformedURLError{Kind: CodecFailure, Fragment: host, Err: err}
		}
		labels[i] = u
	}
	decoded := strings.Join(labels, ".")
	if trailingDot {
		decoded += "."
	}
	return decoded, nil
}

// labelToUnicode decodes a punycoded label and checks that it converts back
// to the same label (RFC 3490, Section 4.2, steps 5 to 7).
func labelToUnicode(label string) (string, error) {
	if !isASCII(label) {
		return "", ErrPunycode.with(label, nil)
	}
	u, err := idna.Punycode.ToUnicode(label)
	if err != nil {
		return "", ErrPunycode.with(label, err)
	}
	back, err := labelToASCII(u)
	if err != nil {
		return "", ErrNoRoundTrip.with(label, err)
	}
	if back != strings.ToLower(label) {
		return "", ErrNoRoundTrip.with(label, nil)
	}
	return u, nil
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
