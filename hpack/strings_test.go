package hpack

import (
	"testing"
	"testing/quick"
)

func TestDecodeStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "www.example.com", "custom-value"} {
		for _, huff := range []bool{false, true} {
			var ds decodedString
			enc := encodeString(nil, s, huff)
			remain, err := decodeString(&ds, enc)
			if err != nil {
				t.Fatalf("s=%q huff=%v: decode error: %v", s, huff, err)
			}
			if len(remain) != 0 {
				t.Fatalf("s=%q huff=%v: leftover bytes %x", s, huff, remain)
			}
			if ds.str != s {
				t.Fatalf("s=%q huff=%v: decoded %q", s, huff, ds.str)
			}
		}
	}
}

// TestEncodeStringQuickRoundTrip checks the string codec round-trips
// arbitrary octet sequences, plain and Huffman-coded alike, not just
// the fixed vectors above.
func TestEncodeStringQuickRoundTrip(t *testing.T) {
	f := func(s string, huff bool) bool {
		var ds decodedString
		enc := encodeString(nil, s, huff)
		remain, err := decodeString(&ds, enc)
		return err == nil && len(remain) == 0 && ds.str == s
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestDecodeStringTrailingData(t *testing.T) {
	var ds decodedString
	enc := encodeString(nil, "abc", false)
	enc = append(enc, 0xAB, 0xCD)
	remain, err := decodeString(&ds, enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.str != "abc" {
		t.Fatalf("decoded %q; want %q", ds.str, "abc")
	}
	if len(remain) != 2 || remain[0] != 0xAB || remain[1] != 0xCD {
		t.Fatalf("remain = %x; want trailing bytes preserved", remain)
	}
}

func TestDecodeStringIncomplete(t *testing.T) {
	enc := encodeString(nil, "custom-value", false)
	_, err := decodeString(new(decodedString), enc[:len(enc)-2])
	if _, ok := err.(*IncompleteData); !ok {
		t.Fatalf("got %v (%T); want *IncompleteData", err, err)
	}
}

func TestDecodedStringScratchReuse(t *testing.T) {
	var ds decodedString
	enc := encodeString(nil, "custom-value", true)
	if _, err := decodeString(&ds, enc); err != nil {
		t.Fatalf("first decode: %v", err)
	}
	firstCap := cap(ds.buf)
	if firstCap == 0 {
		t.Fatalf("expected a backing buffer after a Huffman-coded decode")
	}

	// A second, shorter Huffman payload must reuse the same backing
	// array rather than reallocate.
	enc2 := encodeString(nil, "gzip", true)
	if _, err := decodeString(&ds, enc2); err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if cap(ds.buf) != firstCap {
		t.Fatalf("scratch buffer capacity changed from %d to %d on a smaller decode", firstCap, cap(ds.buf))
	}
	if ds.str != "gzip" {
		t.Fatalf("decoded %q; want %q", ds.str, "gzip")
	}
}
