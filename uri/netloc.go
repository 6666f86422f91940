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
	"strconv"
	"strings"

	"braces.dev/errtrace"
)

// Netloc is the structured form of an authority,
// "[user[:password]@]host[:port]". It is a value type: the With methods
// return modified copies.
type Netloc struct {
	username optional[string]
	password optional[string]
	hostname optional[string]
	port     optional[uint16]
}

// NewNetloc returns a Netloc with only the hostname set. An empty hostname is
// treated as absent.
func NewNetloc(hostname string) Netloc {
	var n Netloc
	if hostname != "" {
		n.hostname = some(hostname)
	}
	return n
}

// SplitNetloc parses an authority string. The userinfo is everything before
// the last '@' and the password follows its first ':'. A host in brackets
// (an IP literal) may itself contain ':'. A port that is present but not an
// unsigned decimal integer fits in 16 bits fails with a MalformedURLError of
// kind PortInvalid.
func SplitNetloc(netloc string) (Netloc, error) {
	var n Netloc

	hostinfo := netloc
	if i := strings.LastIndexByte(netloc, '@'); i >= 0 {
		userinfo := netloc[:i]
		hostinfo = netloc[i+1:]
		username, password, hasPassword := strings.Cut(userinfo, ":")
		n.username = some(username)
		if hasPassword {
			n.password = some(password)
		}
	}

	var hostname, port string
	if _, bracketed, ok := strings.Cut(hostinfo, "["); ok {
		var rest string
		hostname, rest, _ = strings.Cut(bracketed, "]")
		_, port, _ = strings.Cut(rest, ":")
	} else {
		hostname, port, _ = strings.Cut(hostinfo, ":")
	}
	if hostname != "" {
		n.hostname = some(hostname)
	}

	if port != "" {
		p, err := parsePort(port)
		if err != nil {
			return Netloc{}, errtrace.Wrap(err)
		}
		n.port = some(p)
	}
	return n, nil
}

// parsePort parses an ASCII decimal port number.
func parsePort(port string) (uint16, error) {
	for i := range len(port) {
		if port[i] < '0' || port[i] > '9' {
			return 0, &MalformedURLError{
				Kind:     PortInvalid,
				Fragment: port,
				Err:      &strconv.NumError{Func: "ParseUint", Num: port, Err: strconv.ErrSyntax},
			}
		}
	}
	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return 0, &MalformedURLError{Kind: PortInvalid, Fragment: port, Err: err}
	}
	return uint16(p), nil
}

// String joins the netloc back into an authority string. Absent parts are
// omitted together with their separators, so that for any authority s with a
// valid port, SplitNetloc(s).String() == s.
func (n Netloc) String() string {
	var b strings.Builder
	if u, ok := n.username.get(); ok {
		b.WriteString(u)
	}
	if p, ok := n.password.get(); ok {
		b.WriteByte(':')
		b.WriteString(p)
	}
	if n.username.valid || n.password.valid {
		b.WriteByte('@')
	}
	if h, ok := n.hostname.get(); ok {
		if strings.IndexByte(h, ':') >= 0 {
			b.WriteByte('[')
			b.WriteString(h)
			b.WriteByte(']')
		} else {
			b.WriteString(h)
		}
	}
	if p, ok := n.port.get(); ok {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(p), 10))
	}
	return b.String()
}

// IsZero reports whether every part of the netloc is absent.
func (n Netloc) IsZero() bool { return n == (Netloc{}) }

// Username returns the user name and whether it is present.
func (n Netloc) Username() (string, bool) { return n.username.get() }

// Password returns the password and whether it is present.
func (n Netloc) Password() (string, bool) { return n.password.get() }

// Hostname returns the host and whether it is present. IP literals are
// returned without their brackets.
func (n Netloc) Hostname() (string, bool) { return n.hostname.get() }

// Port returns the port number and whether it is present.
func (n Netloc) Port() (uint16, bool) { return n.port.get() }

// WithUsername returns a copy of n with the user name set to u.
func (n Netloc) WithUsername(u string) Netloc { n.username = some(u); return n }

// WithoutUsername returns a copy of n without a user name.
func (n Netloc) WithoutUsername() Netloc { n.username = optional[string]{}; return n }

// WithPassword returns a copy of n with the password set to p.
func (n Netloc) WithPassword(p string) Netloc { n.password = some(p); return n }

// WithoutPassword returns a copy of n without a password.
func (n Netloc) WithoutPassword() Netloc { n.password = optional[string]{}; return n }

// WithHostname returns a copy of n with the host set to h. IP literals are
// given without their brackets.
func (n Netloc) WithHostname(h string) Netloc { n.hostname = some(h); return n }

// WithoutHostname returns a copy of n without a host.
func (n Netloc) WithoutHostname() Netloc { n.hostname = optional[string]{}; return n }

// WithPort returns a copy of n with the port set to p.
func (n Netloc) WithPort(p uint16) Netloc { n.port = some(p); return n }

// WithoutPort returns a copy of n without a port.
func (n Netloc) WithoutPort() Netloc { n.port = optional[uint16]{}; return n }
