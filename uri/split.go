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

// Package uri splits, joins, encodes, decodes and recodes URIs and email
// addresses.
//
// Each component is encoded the way it travels on the wire: the scheme, path,
// query and fragment are percent-encoded UTF-8 (RFC 3986, Section 2.1), user
// names and passwords are percent-encoded against the userinfo class, and
// hostnames are IDNA-encoded (RFC 3490) and never percent-encoded.
//
// Recode canonicalizes a URI whose encoding state is unknown (partially
// escaped, double escaped, raw bytes in a legacy charset) into the form Encode
// produces, and is idempotent.
package uri

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/jplu/urikit/internal/constraints"
)

// SplitURI is a URI broken into its components, with the authority further
// broken into user name, password, hostname and port. It is a value type:
// the With methods return modified copies and never touch the receiver.
//
// Query and fragment remember whether their delimiter was present, so that
// "http://a/?" and "http://a/" split and join back to themselves.
type SplitURI struct {
	scheme    string
	authority bool
	netloc    Netloc
	path      string
	query     optional[string]
	fragment  optional[string]
}

// Split parses uri into its components. Raw bytes and strings that are not
// valid UTF-8 are first decoded leniently: valid UTF-8 sequences are kept and
// every other byte is read as Windows-1252. The only failure is an invalid
// port.
func Split[T constraints.Byteseq](uri T) (SplitURI, error) {
	s := decodeLenient(uri)
	var u SplitURI

	if i := strings.IndexByte(s, ':'); i > 0 && isASCIILetter(s[0]) && isScheme(s[:i]) {
		u.scheme = strings.ToLower(s[:i])
		s = s[i+1:]
	}

	if strings.HasPrefix(s, "//") {
		s = s[2:]
		end := strings.IndexAny(s, "/?#")
		if end < 0 {
			end = len(s)
		}
		netloc, err := SplitNetloc(s[:end])
		if err != nil {
			return SplitURI{}, errtrace.Wrap(err)
		}
		u.authority = true
		u.netloc = netloc
		s = s[end:]
	}

	if before, fragment, ok := strings.Cut(s, "#"); ok {
		u.fragment = some(fragment)
		s = before
	}
	if before, query, ok := strings.Cut(s, "?"); ok {
		u.query = some(query)
		s = before
	}
	u.path = s
	return u, nil
}

// isScheme reports whether s only holds scheme characters,
// ALPHA / DIGIT / "+" / "-" / "." (RFC 3986, Section 3.1).
func isScheme(s string) bool {
	for i := range len(s) {
		c := s[i]
		if !isASCIILetter(c) && !isASCIIDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isASCIIDigit(c byte) bool { return '0' <= c && c <= '9' }

// String joins the components back into a URI. "//" is written when the
// source had an authority or when the netloc is not empty. In the latter case
// a relative path gets a leading '/' so that it cannot merge into the host.
func (u SplitURI) String() string {
	var b strings.Builder
	if u.scheme != "" {
		b.WriteString(u.scheme)
		b.WriteByte(':')
	}
	path := u.path
	netloc := u.netloc.String()
	switch {
	case u.authority || netloc != "":
		b.WriteString("//")
		b.WriteString(netloc)
		if path != "" && path[0] != '/' {
			b.WriteByte('/')
		}
	case strings.HasPrefix(path, "//"):
		// An empty authority keeps the path from being read as one.
		b.WriteString("//")
	}
	b.WriteString(path)
	if q, ok := u.query.get(); ok {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if f, ok := u.fragment.get(); ok {
		b.WriteByte('#')
		b.WriteString(f)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (u SplitURI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *SplitURI) UnmarshalText(text []byte) error {
	v, err := Split(text)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*u = v
	return nil
}

// Scheme returns the lower-cased scheme, or "" when there is none.
func (u SplitURI) Scheme() string { return u.scheme }

// HasAuthority reports whether the URI had a "//" authority, possibly empty.
func (u SplitURI) HasAuthority() bool { return u.authority }

// Netloc returns the structured authority.
func (u SplitURI) Netloc() Netloc { return u.netloc }

// Username is shorthand for u.Netloc().Username().
func (u SplitURI) Username() (string, bool) { return u.netloc.Username() }

// Password is shorthand for u.Netloc().Password().
func (u SplitURI) Password() (string, bool) { return u.netloc.Password() }

// Hostname is shorthand for u.Netloc().Hostname().
func (u SplitURI) Hostname() (string, bool) { return u.netloc.Hostname() }

// Port is shorthand for u.Netloc().Port().
func (u SplitURI) Port() (uint16, bool) { return u.netloc.Port() }

// Path returns the path, which is always present but may be empty.
func (u SplitURI) Path() string { return u.path }

// Query returns the query without its '?' and whether it was present.
func (u SplitURI) Query() (string, bool) { return u.query.get() }

// Fragment returns the fragment without its '#' and whether it was present.
func (u SplitURI) Fragment() (string, bool) { return u.fragment.get() }

// WithScheme returns a copy of u with the scheme set to s.
func (u SplitURI) WithScheme(s string) SplitURI { u.scheme = s; return u }

// WithAuthority sets whether "//" is written even for an empty netloc.
func (u SplitURI) WithAuthority(has bool) SplitURI { u.authority = has; return u }

// WithNetloc returns a copy of u with the authority set to n.
func (u SplitURI) WithNetloc(n Netloc) SplitURI { u.netloc = n; return u }

// WithPath returns a copy of u with the path set to p.
func (u SplitURI) WithPath(p string) SplitURI { u.path = p; return u }

// WithQuery returns a copy of u with the query set to q. An empty q still
// writes the '?'.
func (u SplitURI) WithQuery(q string) SplitURI { u.query = some(q); return u }

// WithoutQuery returns a copy of u without a query.
func (u SplitURI) WithoutQuery() SplitURI { u.query = optional[string]{}; return u }

// WithFragment returns a copy of u with the fragment set to f. An empty f
// still writes the '#'.
func (u SplitURI) WithFragment(f string) SplitURI { u.fragment = some(f); return u }

// WithoutFragment returns a copy of u without a fragment.
func (u SplitURI) WithoutFragment() SplitURI { u.fragment = optional[string]{}; return u }
