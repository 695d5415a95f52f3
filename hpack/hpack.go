// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

// Package hpack implements HPACK, a compression format for
// efficiently representing HTTP header fields in the context of
// HTTP/2, as defined in RFC 7541.
//
// The package exposes a stateful Encoder and Decoder pair. Each
// maintains its own dynamic table; the two stay in sync only because
// they process the same byte stream, in the same order. Neither type
// performs I/O, networking, or logging: an Encoder appends to a
// caller-supplied byte slice, and a Decoder consumes one (see
// ChunkedDecoder for input that arrives in pieces, such as across
// HTTP/2 CONTINUATION frames).
package hpack

import "fmt"

// A HeaderField is a name-value pair. Both Name and Value are treated
// as opaque sequences of octets; this package does not validate or
// lowercase them (that is the HTTP/2 layer's responsibility, not
// HPACK's).
//
// Sensitive, if true, marks a field that was (or must be) encoded as
// "Literal Header Field Never Indexed" (RFC 7541 §6.2.3): caches and
// HPACK-aware intermediaries must never store it in a dynamic table.
type HeaderField struct {
	Name, Value string
	Sensitive   bool
}

// Size returns the "HPACK size" of f, as defined by RFC 7541 §4.1:
// the length of the name plus the length of the value plus 32.
func (f HeaderField) Size() uint32 {
	return uint32(len(f.Name) + len(f.Value) + 32)
}

// IsPseudo reports whether f is an HTTP/2 pseudo-header field, one
// whose name begins with ':'. HPACK does not treat pseudo-headers
// specially; this is provided because callers of a Decoder usually
// need the distinction immediately.
func (f HeaderField) IsPseudo() bool {
	return len(f.Name) != 0 && f.Name[0] == ':'
}

func (f HeaderField) String() string {
	suffix := ""
	if f.Sensitive {
		suffix = " (sensitive)"
	}
	return fmt.Sprintf("header field %q = %q%s", f.Name, f.Value, suffix)
}

// pair is a small convenience constructor used by this package's own
// tests.
func pair(name, value string) HeaderField {
	return HeaderField{Name: name, Value: value}
}
