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

	"braces.dev/errtrace"

	"github.com/jplu/urikit/charclass"
	"github.com/jplu/urikit/internal/constraints"
)

// This file handles a single email address, optionally with a "mailto:"
// scheme and a query (subject, body). It does not implement RFC 6068: the
// address is treated as user@host so that the host gets IDNA treatment.

// SplitEmail splits email and reinterprets it as user@host: when the path is
// not empty it is split on its last '@' into the user name and the hostname,
// and cleared. A path without '@' becomes the hostname. With
// "mailto://user@host" the address is already in the authority.
func SplitEmail[T constraints.Byteseq](email T) (SplitURI, error) {
	u, err := Split(email)
	if err != nil {
		return SplitURI{}, errtrace.Wrap(err)
	}
	if u.path == "" {
		return u, nil
	}
	n := u.netloc.WithoutUsername()
	if i := strings.LastIndexByte(u.path, '@'); i >= 0 {
		n = n.WithUsername(u.path[:i])
		n = n.WithHostname(u.path[i+1:])
	} else {
		n = n.WithHostname(u.path)
	}
	return u.WithNetloc(n).WithPath(""), nil
}

// JoinEmail is the inverse of SplitEmail: user name and hostname are joined
// with '@' into the path. Email addresses have no authority, so
// "mailto://user@host" comes out as "mailto:user@host".
func JoinEmail(u SplitURI) string {
	var parts []string
	if user, ok := u.netloc.Username(); ok {
		parts = append(parts, user)
	}
	if host, ok := u.netloc.Hostname(); ok {
		parts = append(parts, host)
	}
	n := u.netloc.WithoutUsername().WithoutHostname()
	return u.WithNetloc(n).WithAuthority(false).WithPath(strings.Join(parts, "@")).String()
}

// EncodeEmail encodes an email address that is logically decoded. The local
// part is never percent-encoded, since mail systems may give '%' a routing
// meaning. The hostname is IDNA-encoded and the query percent-encoded.
// Password, port, path and fragment are dropped.
func EncodeEmail[T constraints.Byteseq](email T) (string, error) {
	return errtrace.Wrap2(transformEmail(email, EncodeSplitEmail))
}

// DecodeEmail decodes an email address for display.
func DecodeEmail[T constraints.Byteseq](email T) (string, error) {
	return errtrace.Wrap2(transformEmail(email, DecodeSplitEmail))
}

// RecodeEmail canonicalizes an email address of unknown encoding state. It
// is idempotent, and recoding "mailto://" + e gives "mailto:" + EncodeEmail(e).
func RecodeEmail[T constraints.Byteseq](email T) (string, error) {
	return errtrace.Wrap2(transformEmail(email, RecodeSplitEmail))
}

func transformEmail[T constraints.Byteseq](email T, fn func(SplitURI) (SplitURI, error)) (string, error) {
	u, err := SplitEmail(email)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	u, err = fn(u)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return JoinEmail(u), nil
}

// EncodeSplitEmail encodes the result of SplitEmail.
func EncodeSplitEmail(u SplitURI) (SplitURI, error) {
	host, err := encodeHostnameOpt(u.netloc.hostname)
	if err != nil {
		return SplitURI{}, errtrace.Wrap(err)
	}
	return SplitURI{
		scheme:    encodeScheme(u.scheme),
		authority: u.authority,
		netloc: Netloc{
			username: mapString(u.netloc.username, decodeLenient[string]),
			hostname: host,
		},
		query: mapString(u.query, encoder(charclass.Default().Query())),
	}, nil
}

// DecodeSplitEmail decodes the result of SplitEmail.
func DecodeSplitEmail(u SplitURI) (SplitURI, error) {
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
			hostname: host,
		},
		query: mapString(u.query, decode),
	}, nil
}

// RecodeSplitEmail is EncodeSplitEmail(DecodeSplitEmail(u)).
func RecodeSplitEmail(u SplitURI) (SplitURI, error) {
	d, err := DecodeSplitEmail(u)
	if err != nil {
		return SplitURI{}, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(EncodeSplitEmail(d))
}
