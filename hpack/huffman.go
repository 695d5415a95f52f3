// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package hpack

// huffmanEOS is the symbol value used for the end-of-string code.
// RFC 7541 §5.2: a decoded EOS symbol is always a protocol error.
const huffmanEOS = 256

// huffmanNode is one node of the decode trie built from huffmanCodes.
// children is non-nil only for internal nodes; a leaf carries the
// symbol (0..256, 256 meaning EOS) that its path of bits decodes to.
type huffmanNode struct {
	children []*huffmanNode
	sym      int32
	codeLen  uint8
}

func newHuffmanInternalNode() *huffmanNode {
	return &huffmanNode{children: make([]*huffmanNode, 256)}
}

var rootHuffmanNode = newHuffmanInternalNode()

func init() {
	for sym, c := range huffmanCodes {
		addHuffmanDecoderNode(int32(sym), c.code, c.nbits)
	}
}

func addHuffmanDecoderNode(sym int32, code uint32, codeLen uint8) {
	cur := rootHuffmanNode
	for codeLen > 8 {
		codeLen -= 8
		i := uint8(code >> codeLen)
		if cur.children[i] == nil {
			cur.children[i] = newHuffmanInternalNode()
		}
		cur = cur.children[i]
	}
	shift := 8 - codeLen
	start, end := int(uint8(code<<shift)), int(1<<shift)
	for i := start; i < start+end; i++ {
		cur.children[i] = &huffmanNode{sym: sym, codeLen: codeLen}
	}
}

// huffmanDecode appends the Huffman-decoded expansion of src to dst
// and returns the extended slice.
//
// It returns a *ProtocolError if src decodes to an EOS symbol, or if
// the trailing padding is longer than 7 bits or is not all ones (RFC
// 7541 §5.2).
func huffmanDecode(dst []byte, src []byte) ([]byte, error) {
	n := rootHuffmanNode
	cur, nbits := uint64(0), uint8(0)
	for _, b := range src {
		cur = cur<<8 | uint64(b)
		nbits += 8
		for nbits >= 8 {
			idx := byte(cur >> (nbits - 8))
			next := n.children[idx]
			if next == nil {
				return dst, protocolErrorf("invalid huffman code")
			}
			n = next
			if n.children != nil {
				nbits -= 8
				continue
			}
			if n.sym == huffmanEOS {
				return dst, protocolErrorf("huffman string contains EOS symbol")
			}
			dst = append(dst, byte(n.sym))
			nbits -= n.codeLen
			n = rootHuffmanNode
		}
	}
	for nbits > 0 {
		idx := byte(cur << (8 - nbits))
		next := n.children[idx]
		if next == nil || next.children != nil || next.codeLen > nbits {
			break
		}
		if next.sym == huffmanEOS {
			return dst, protocolErrorf("huffman string contains EOS symbol")
		}
		dst = append(dst, byte(next.sym))
		nbits -= next.codeLen
		n = rootHuffmanNode
	}
	// n is still inside the trie only when a whole byte or more of
	// trailing bits has gone unmatched.
	if nbits > 7 || n != rootHuffmanNode {
		return dst, protocolErrorf("huffman padding longer than 7 bits")
	}
	if nbits > 0 {
		mask := byte(1<<nbits - 1)
		if byte(cur)&mask != mask {
			return dst, protocolErrorf("huffman padding is not all ones")
		}
	}
	return dst, nil
}

// huffmanEncode appends the Huffman encoding of s to dst, padding the
// final partial byte with 1 bits (RFC 7541 §5.2), and returns the
// extended slice.
func huffmanEncode(dst []byte, s string) []byte {
	var curByte byte
	var curBits uint8
	for i := 0; i < len(s); i++ {
		c := huffmanCodes[s[i]]
		code, nbits := c.code, c.nbits
		for nbits > 0 {
			free := 8 - curBits
			take := nbits
			if take > free {
				take = free
			}
			shift := nbits - take
			bits := byte(code>>shift) & byte(1<<take-1)
			curByte |= bits << (free - take)
			curBits += take
			nbits -= take
			if curBits == 8 {
				dst = append(dst, curByte)
				curByte = 0
				curBits = 0
			}
		}
	}
	if curBits > 0 {
		pad := 8 - curBits
		curByte |= byte(1<<pad - 1)
		dst = append(dst, curByte)
	}
	return dst
}

// huffmanEncodedLen returns the number of bytes huffmanEncode would
// append for s, without allocating.
func huffmanEncodedLen(s string) int {
	var bits int
	for i := 0; i < len(s); i++ {
		bits += int(huffmanCodes[s[i]].nbits)
	}
	return (bits + 7) / 8
}

// maxHuffmanDecodedLen returns the tightest worst-case upper bound on
// the decoded length of a Huffman string of huffLen encoded bytes:
// ceil(8*huffLen/5), since the narrowest code in the static table is
// 5 bits. decodedString uses this bound to size its scratch buffer
// without ever having to grow mid-decode.
func maxHuffmanDecodedLen(huffLen int) int {
	return (huffLen*8 + 4) / 5
}
