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
	"braces.dev/errtrace"

	"github.com/jplu/urikit/charclass"
	"github.com/jplu/urikit/internal/constraints"
)

// Encode takes a URI that is logically decoded (human readable) and returns
// it well encoded, suitable for an HTML href. Encoding twice is not
// idempotent ('%' is kept, but nothing already escaped is recognized); use
// Recode on input of unknown state.
func Encode[T constraints.Byteseq](uri T) (string, error) {
	return errtrace.Wrap2(transform(uri, EncodeSplit))
}

// Decode takes a URI that may be percent-escaped or punycoded and returns a
// human-readable form, suitable for display.
func Decode[T constraints.Byteseq](uri T) (string, error) {
	return errtrace.Wrap2(transform(uri, DecodeSplit))
}

// Recode takes a URI of unknown encoding state and returns the well-encoded
// form Encode would give for its decoded form. It is idempotent.
func Recode[T constraints.Byteseq](uri T) (string, error) {
	return errtrace.Wrap2(transform(uri, RecodeSplit))
}

func transform[T constraints.Byteseq](uri T, fn func(SplitURI) (SplitURI, error)) (string, error) {
	u, err := Split(uri)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	u, err = fn(u)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return u.String(), nil
}

// EncodeSplit encodes every component of u: the scheme, path, query and
// fragment as percent-encoded UTF-8, the user name and password against the
// userinfo class, and the hostname with IDNA.
func EncodeSplit(u SplitURI) (SplitURI, error) {
	t := charclass.Default()
	host, err := encodeHostnameOpt(u.netloc.hostname)
	if err != nil {
		return SplitURI{}, errtrace.Wrap(err)
	}
	return SplitURI{
		scheme:    encodeScheme(u.scheme),
		authority: u.authority,
		netloc: Netloc{
			username: mapString(u.netloc.username, encoder(t.Userinfo())),
			password: mapString(u.netloc.password, encoder(t.Userinfo())),
			hostname: host,
			port:     u.netloc.port,
		},
		path:     encoder(t.Path())(u.path),
		query:    mapString(u.query, encoder(t.Query())),
		fragment: mapString(u.fragment, encoder(t.Fragment())),
	}, nil
}

// DecodeSplit decodes every component of u. Percent escapes are only removed
// where they stand for non-ASCII bytes or plaintext characters, and bytes that
// are not UTF-8 are decoded leniently, so that only a punycoded hostname that
// fails to decode is an error.
func DecodeSplit(u SplitURI) (SplitURI, error) {
	decode := decoder(charclass.Default().Plaintext())
	host, err := decodeHostnameOpt(u.netloc.hostname)
	if err != nil {
		return SplitURI{}, errtrace.Wrap(err)
	}
	return SplitURI{
		scheme:    decode(u.scheme),
		authority: u.authority,
		netloc: Netloc{
			username: mapString(u.netloc.username, decode),
			password: mapString(u.netloc.password, decode),
			hostname: host,
			port:     u.netloc.port,
		},
		path:     decode(u.path),
		query:    mapString(u.query, decode),
		fragment: mapString(u.fragment, decode),
	}, nil
}

// RecodeSplit is EncodeSplit(DecodeSplit(u)).
func RecodeSplit(u SplitURI) (SplitURI, error) {
	d, err := DecodeSplit(u)
	if err != nil {
		return SplitURI{}, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(EncodeSplit(d))
}

// encoder returns a function that percent-encodes the UTF-8 form of its
// argument, keeping the members of class.
func encoder(class charclass.Class) func(string) string {
	return func(s string) string {
		return quoteClass(decodeLenient(s), class)
	}
}

// decoder returns a function that selectively unquotes its argument and
// decodes the bytes leniently.
func decoder(plaintext charclass.Class) func(string) string {
	return func(s string) string {
		return decodeLenient(unquoteSelective(s, plaintext))
	}
}

// encodeScheme keeps scheme characters as they are: ALPHA / DIGIT / "+" /
// "-" / ".". Anything else a caller put there is escaped.
func encodeScheme(s string) string {
	return quote(decodeLenient(s), safeBytes("+-."), false)
}

func encodeHostnameOpt(h optional[string]) (optional[string], error) {
	if !h.valid {
		return h, nil
	}
	ascii, err := encodeHostname(h.value)
	if err != nil {
		return h, errtrace.Wrap(err)
	}
	return some(ascii), nil
}

func decodeHostnameOpt(h optional[string]) (optional[string], error) {
	if !h.valid {
		return h, nil
	}
	decoded, err := decodeHostname(h.value, charclass.Default().Plaintext())
	if err != nil {
		return h, errtrace.Wrap(err)
	}
	return some(decoded), nil
}
