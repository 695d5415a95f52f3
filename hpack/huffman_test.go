package hpack

import "testing"

func TestHuffmanDecode(t *testing.T) {
	tests := []struct {
		inHex, want string
	}{
		{"f1e3 c2e5 f23a 6ba0 ab90 f4ff", "www.example.com"},
		{"a8eb 1064 9cbf", "no-cache"},
		{"25a8 49e9 5ba9 7d7f", "custom-key"},
		{"25a8 49e9 5bb8 e8b4 bf", "custom-value"},
		{"6402", "302"},
		{"aec3 771a 4b", "private"},
		{"d07a be94 1054 d444 a820 0595 040b 8166 e082 a62d 1bff", "Mon, 21 Oct 2013 20:13:21 GMT"},
		{"9d29 ad17 1863 c78f 0b97 c8e9 ae82 ae43 d3", "https://www.example.com"},
		{"9bd9 ab", "gzip"},
		{"94e7 821d d7f2 e6c7 b335 dfdf cd5b 3960 d5af 2708 7f36 72c1 ab27 0fb5 291f 9587 3160 65c0 03ed 4ee5 b106 3d50 07",
			"foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1"},
	}
	for i, tt := range tests {
		got, err := huffmanDecode(nil, dehex(tt.inHex))
		if err != nil {
			t.Errorf("%d. decode error: %v", i, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("%d. decode = %q; want %q", i, got, tt.want)
		}
	}
}

func TestHuffmanEncodeRoundTrip(t *testing.T) {
	strs := []string{
		"", "a", "www.example.com", "no-cache", "custom-key", "custom-value",
		"302", "private", "https://www.example.com", "gzip",
		"foo=ASDJKHQKBZXOQWEOPIUAXQWEOIU; max-age=3600; version=1",
	}
	for _, s := range strs {
		enc := huffmanEncode(nil, s)
		if got := huffmanEncodedLen(s); got != len(enc) {
			t.Errorf("huffmanEncodedLen(%q) = %d; encoded to %d bytes", s, got, len(enc))
		}
		dec, err := huffmanDecode(nil, enc)
		if err != nil {
			t.Errorf("huffmanDecode(huffmanEncode(%q)) error: %v", s, err)
			continue
		}
		if string(dec) != s {
			t.Errorf("huffmanDecode(huffmanEncode(%q)) = %q", s, dec)
		}
	}
}

func TestHuffmanDecodeEOSError(t *testing.T) {
	// The all-ones 30-bit EOS code, left-justified: an input built
	// entirely from it must fail as soon as it resolves to a symbol.
	in := dehex("ffffffff")
	if _, err := huffmanDecode(nil, in); err == nil {
		t.Fatalf("expected error decoding an EOS-containing payload")
	} else if _, ok := err.(*ProtocolError); !ok {
		t.Fatalf("got %v (%T); want *ProtocolError", err, err)
	}
}

func TestHuffmanDecodeBadPadding(t *testing.T) {
	// 'a' is the 5-bit code 00011, so its encoding ends in 3 bits of
	// padding; clear one of them so the padding is not all ones.
	enc := huffmanEncode(nil, "a")
	bad := append([]byte{}, enc...)
	bad[len(bad)-1] &^= 1 // clear the low padding bit
	if _, err := huffmanDecode(nil, bad); err == nil {
		t.Fatalf("expected a padding error")
	}
}

func TestMaxHuffmanDecodedLen(t *testing.T) {
	// The narrowest code is 5 bits, so 1 byte (8 bits) of Huffman
	// input can decode to at most ceil(8/5) = 2 bytes.
	if got := maxHuffmanDecodedLen(1); got != 2 {
		t.Errorf("maxHuffmanDecodedLen(1) = %d; want 2", got)
	}
}
