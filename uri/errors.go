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
	"errors"
	"fmt"
)

// ErrorKind classifies a MalformedURLError.
type ErrorKind int

const (
	// PortInvalid means the port is not an unsigned decimal integer in 0..65535.
	PortInvalid ErrorKind = iota + 1
	// HostnameInvalid means the hostname could not be IDNA-encoded.
	HostnameInvalid
	// CodecFailure means a punycoded hostname could not be decoded.
	CodecFailure
)

func (k ErrorKind) String() string {
	switch k {
	case PortInvalid:
		return "PortInvalid"
	case HostnameInvalid:
		return "HostnameInvalid"
	case CodecFailure:
		return "CodecFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ErrMalformedURL matches every *MalformedURLError with errors.Is.
var ErrMalformedURL = errors.New("malformed URL")

// MalformedURLError reports a URI that cannot be split, encoded or decoded.
// A URI is never half-encoded: when one component fails the whole call fails
// with this error.
type MalformedURLError struct {
	Kind ErrorKind
	// Fragment is the offending piece of input (a port literal or a hostname).
	Fragment string
	// Err is the underlying cause.
	Err error
}

func (e *MalformedURLError) Error() string {
	var cause string
	if e.Err != nil {
		cause = e.Err.Error()
	}
	switch e.Kind {
	case PortInvalid:
		return "Invalid port number: " + cause
	case HostnameInvalid:
		return fmt.Sprintf("Invalid hostname: %s: '%s'", cause, e.Fragment)
	default:
		return fmt.Sprintf("Cannot decode hostname '%s': %s", e.Fragment, cause)
	}
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *MalformedURLError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedURL.
func (e *MalformedURLError) Is(target error) bool { return target == ErrMalformedURL }

// Causes carried by a MalformedURLError. They match with errors.Is even when
// the returned error names the offending label.
var (
	// ErrLabelEmptyOrTooLong is returned when a hostname label is empty or
	// longer than 63 octets once encoded.
	ErrLabelEmptyOrTooLong = &kindError{message: "label empty or too long"}
	// ErrLabelTooLong is returned when the final label of an ASCII hostname is
	// longer than 63 octets.
	ErrLabelTooLong = &kindError{message: "label too long"}
	// ErrACEPrefix is returned when a non-ASCII label already carries the
	// "xn--" prefix.
	ErrACEPrefix = &kindError{message: "Label starts with ACE prefix"}
	// ErrNameprep is returned when nameprep (RFC 3491) rejects a label.
	ErrNameprep = &kindError{message: "nameprep rejected label"}
	// ErrNoRoundTrip is returned when a punycoded label does not encode back
	// to itself.
	ErrNoRoundTrip = &kindError{message: "IDNA does not round-trip"}
	// ErrPunycode is returned when a punycoded label is not valid punycode.
	ErrPunycode = &kindError{message: "invalid punycode"}
)

// kindError is a cause with an optional detail, usually the offending label.
type kindError struct {
	message string
	details string
	err     error
}

// Error formats the message with its details and wrapped error, if any.
func (e *kindError) Error() string {
	msg := e.message
	if e.details != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.details)
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.err)
	}
	return msg
}

// Is matches kindErrors that share the same message, so that a detailed error
// matches the bare sentinel.
func (e *kindError) Is(target error) bool {
	t, ok := target.(*kindError)
	return ok && t.message == e.message
}

func (e *kindError) Unwrap() error { return e.err }

// with returns a copy of the sentinel e carrying details and a wrapped error.
func (e *kindError) with(details string, err error) *kindError {
	return &kindError{message: e.message, details: details, err: err}
}
