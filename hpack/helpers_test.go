package hpack

import (
	"encoding/hex"
	"strings"
)

// dehex decodes a hex literal that may contain spaces, for embedding
// RFC 7541 test vectors legibly.
func dehex(s string) []byte {
	s = strings.ReplaceAll(s, " ", "")
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
