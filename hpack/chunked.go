package hpack

// ChunkedDecoder decodes a single header block delivered as a
// sequence of chunks - one per HTTP/2 HEADERS/CONTINUATION frame, for
// instance - without requiring the caller to buffer and concatenate
// the whole block first.
//
// Any representation that straddles a chunk boundary is held back as
// a pending tail and retried once the next chunk arrives, rather than
// surfaced to the caller as an error.
type ChunkedDecoder struct {
	dec     *Decoder
	pending []byte
}

// NewChunkedDecoder returns a ChunkedDecoder that uses d for the
// per-representation decode work and dynamic table access. Multiple
// ChunkedDecoders must not share a Decoder concurrently, but a single
// ChunkedDecoder may be reused for successive header blocks on the
// same connection, since d's dynamic table is meant to persist across
// blocks.
func NewChunkedDecoder(d *Decoder) *ChunkedDecoder {
	return &ChunkedDecoder{dec: d}
}

// PendingDataSize reports how many bytes of an incomplete
// representation are currently buffered, waiting for the next chunk.
func (c *ChunkedDecoder) PendingDataSize() int {
	return len(c.pending)
}

// Clear discards any buffered pending tail, for a caller that needs
// to abandon a header block mid-stream (e.g. the connection the
// frames belonged to was reset).
func (c *ChunkedDecoder) Clear() {
	c.pending = c.pending[:0]
}

// Feed decodes as many complete representations as chunk, appended to
// any tail buffered by a previous call, contains, calling emit once
// per field in wire order. Whatever incomplete representation remains
// at the end of chunk is buffered for the next Feed call.
//
// lastChunk must be true on the call that delivers the final chunk of
// the header block: an incomplete representation still pending at
// that point has nothing left to complete it and is reported as a
// *ProtocolError instead of being buffered further.
//
// hint is 0 on success. When Feed is holding a pending tail (err is
// nil, lastChunk is false), hint approximates how many further bytes
// are needed to complete the representation currently in progress;
// PendingDataSize() + hint approximates the representation's total
// size, which a caller can use to reject an oversize header before
// buffering any more of it.
func (c *ChunkedDecoder) Feed(chunk []byte, lastChunk bool, emit func(HeaderField)) (hint int, err error) {
	var buf []byte
	if len(c.pending) > 0 {
		buf = append(c.pending, chunk...)
	} else {
		buf = chunk
	}

	for len(buf) > 0 {
		rest, ferr := c.dec.parseField(buf, emit)
		if ferr != nil {
			if inc, ok := ferr.(*IncompleteData); ok {
				if lastChunk {
					c.pending = c.pending[:0]
					return 0, protocolErrorf("header block ended with an incomplete representation")
				}
				c.pending = append(c.pending[:0], buf...)
				return inc.Required, nil
			}
			c.pending = c.pending[:0]
			return 0, ferr
		}
		buf = rest
	}
	c.pending = c.pending[:0]
	return 0, nil
}
