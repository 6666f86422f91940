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

package charclass

import "sync"

// RFC 3986, Appendix A.
const (
	subdelims = "!$&'()*+,;="
	gendelims = ":/?#@"
	// badEnd lists what should not close a URL found in prose.
	badEnd = `<(.!'",;?:-`
)

// Table holds every character class, built once and shared read-only.
type Table struct {
	digits     Class
	letters    Class
	alphanum   Class
	whitespace Class
	subdelims  Class
	gendelims  Class
	reserved   Class
	unreserved Class
	pchar      Class
	query      Class
	fragment   Class
	path       Class
	regname    Class
	userinfo   Class
	badEnd     Class
	plaintext  Class
	url        Class
}

// New builds a Table. Most callers want Default.
func New() *Table {
	t := &Table{
		digits:     newClass("digits", digits),
		letters:    newClass("letters", letters),
		alphanum:   newClass("alphanum", alphanum),
		whitespace: newClass("whitespace", whitespace),
		subdelims:  newClass("subdelims", subdelims),
		gendelims:  newClass("gendelims", gendelims),
	}
	t.reserved = newClass("reserved", subdelims+gendelims)
	// Percent-encoded octets may appear wherever unreserved characters do.
	t.unreserved = newClass("unreserved", alphanum+"-._~%")
	t.pchar = t.unreserved.Union("pchar", subdelims+":@")
	t.query = t.pchar.Union("query", "/?")
	t.fragment = t.pchar.Union("fragment", "/?")
	t.path = t.pchar.Union("path", "/")
	// Sub-delimiters are legal in reg-name and userinfo but never show up in
	// real host or user names.
	t.regname = t.unreserved.Union("regname", "")
	t.userinfo = t.unreserved.Union("userinfo", "+")
	t.badEnd = newClass("bad_end", whitespace+badEnd)
	t.plaintext = newClass("plaintext", alphanum+"_-")
	t.url = t.unreserved.Union("url", subdelims+gendelims)
	return t
}

// Default returns the process-wide Table.
var Default = sync.OnceValue(New)

func (t *Table) Digits() Class     { return t.digits }
func (t *Table) Letters() Class    { return t.letters }
func (t *Table) Alphanum() Class   { return t.alphanum }
func (t *Table) Whitespace() Class { return t.whitespace }
func (t *Table) Subdelims() Class  { return t.subdelims }
func (t *Table) Gendelims() Class  { return t.gendelims }
func (t *Table) Reserved() Class   { return t.reserved }

// Unreserved is ALPHA / DIGIT / "-" / "." / "_" / "~", plus "%".
func (t *Table) Unreserved() Class { return t.unreserved }

// Pchar is unreserved / sub-delims / ":" / "@".
func (t *Table) Pchar() Class    { return t.pchar }
func (t *Table) Query() Class    { return t.query }
func (t *Table) Fragment() Class { return t.fragment }
func (t *Table) Path() Class     { return t.path }
func (t *Table) Regname() Class  { return t.regname }
func (t *Table) Userinfo() Class { return t.userinfo }

// BadEnd is white space plus the punctuation a URL in prose should not end
// with.
func (t *Table) BadEnd() Class { return t.badEnd }

// Plaintext is the set of ASCII characters that are always safe to unescape.
func (t *Table) Plaintext() Class { return t.plaintext }

// URL is every character allowed somewhere in a URI: unreserved / reserved.
func (t *Table) URL() Class { return t.url }

// Classes returns every class of the table followed by its complement.
func (t *Table) Classes() []Class {
	base := []Class{
		t.digits, t.letters, t.alphanum, t.whitespace, t.subdelims, t.gendelims,
		t.reserved, t.unreserved, t.pchar, t.query, t.fragment, t.path,
		t.regname, t.userinfo, t.badEnd, t.plaintext, t.url,
	}
	all := make([]Class, 0, 2*len(base))
	for _, c := range base {
		all = append(all, c, c.Not())
	}
	return all
}
