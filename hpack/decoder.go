package hpack

import "strconv"

// Decoder turns a stream of HPACK-encoded header blocks into
// HeaderFields, maintaining the dynamic table RFC 7541 requires both
// sides of a connection to keep in lockstep. A Decoder is only safe
// for use by one goroutine at a time; it holds no state shared with
// any other Decoder or Encoder, so independent streams need
// independent Decoders rather than coordinating access to one.
type Decoder struct {
	dynTab *dynamicTable

	// fieldName and fieldValue are reused across calls to avoid
	// reallocating their Huffman scratch buffer for every field.
	fieldName  decodedString
	fieldValue decodedString
}

// NewDecoder returns a Decoder whose dynamic table may grow up to
// maxDynamicTableSize bytes, the value the enclosing protocol has
// negotiated as its hard ceiling (e.g. HTTP/2's
// SETTINGS_HEADER_TABLE_SIZE).
func NewDecoder(maxDynamicTableSize uint32) *Decoder {
	return &Decoder{dynTab: newDynamicTable(maxDynamicTableSize, maxDynamicTableSize)}
}

// SetMaxDynamicTableSize lowers or raises the protocol-level ceiling
// on the dynamic table's size, evicting entries immediately if the
// new ceiling is below the table's current maxSize.
func (d *Decoder) SetMaxDynamicTableSize(size uint32) {
	d.dynTab.setProtocolMax(size)
}

// DynamicTableSize returns the dynamic table's current byte size.
func (d *Decoder) DynamicTableSize() uint32 {
	return d.dynTab.currentSize
}

// DecodeFull decodes one complete header block and returns every
// field it contains, in wire order. Callers that want to stream
// fields one at a time, or that need chunked input, should use Decode
// or a ChunkedDecoder instead.
func (d *Decoder) DecodeFull(p []byte) ([]HeaderField, error) {
	var fields []HeaderField
	err := d.Decode(p, func(f HeaderField) { fields = append(fields, f) })
	return fields, err
}

// Decode decodes one complete header block, calling emit once per
// field in wire order.
//
// p must hold an entire header block; Decode never consumes a partial
// representation across calls. Use ChunkedDecoder to assemble a block
// delivered across multiple HEADERS/CONTINUATION-style fragments.
func (d *Decoder) Decode(p []byte, emit func(HeaderField)) error {
	for len(p) > 0 {
		var err error
		p, err = d.parseField(p, emit)
		if err != nil {
			return err
		}
	}
	return nil
}

// parseField decodes exactly one representation (RFC 7541 §4.6) off
// the front of p and returns the remainder.
func (d *Decoder) parseField(p []byte, emit func(HeaderField)) ([]byte, error) {
	b := p[0]
	switch {
	case b&0x80 != 0: // 1xxxxxxx: indexed header field, §6.1
		return d.parseIndexed(p, emit)
	case b&0x40 != 0: // 01xxxxxx: literal with incremental indexing, §6.2.1
		return d.parseLiteral(p, emit, 6, true, false)
	case b&0x20 != 0: // 001xxxxx: dynamic table size update, §6.3
		return d.parseSizeUpdate(p)
	case b&0x10 != 0: // 0001xxxx: literal never indexed, §6.2.3
		return d.parseLiteral(p, emit, 4, false, true)
	default: // 0000xxxx: literal without indexing, §6.2.2
		return d.parseLiteral(p, emit, 4, false, false)
	}
}

func (d *Decoder) parseIndexed(p []byte, emit func(HeaderField)) ([]byte, error) {
	idx, rest, err := readVarInt(7, p)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return nil, protocolErrorf("indexed header field with index 0")
	}
	f, ok := d.getByIndex(int(idx))
	if !ok {
		return nil, protocolErrorf("index %d out of bounds", idx)
	}
	emit(f)
	return rest, nil
}

// parseLiteral decodes a literal header field representation, whose
// index/name prefix is prefixBits wide. When incremental is true, the
// decoded field is also inserted into the dynamic table; neverIndexed
// only affects the emitted field's Sensitive bit, per §6.2.3's intent
// that such a field must never be re-encoded with indexing either.
func (d *Decoder) parseLiteral(p []byte, emit func(HeaderField), prefixBits byte, incremental, neverIndexed bool) ([]byte, error) {
	idx, rest, err := readVarInt(prefixBits, p)
	if err != nil {
		return nil, err
	}
	var name string
	if idx == 0 {
		rest, err = decodeString(&d.fieldName, rest)
		if err != nil {
			return nil, err
		}
		name = d.fieldName.str
	} else {
		f, ok := d.getByIndex(int(idx))
		if !ok {
			return nil, protocolErrorf("index %d out of bounds", idx)
		}
		name = f.Name
	}
	rest, err = decodeString(&d.fieldValue, rest)
	if err != nil {
		return nil, err
	}
	value := d.fieldValue.str

	emit(HeaderField{Name: name, Value: value, Sensitive: neverIndexed})
	if incremental {
		d.dynTab.addEntry(name, value)
	}
	return rest, nil
}

func (d *Decoder) parseSizeUpdate(p []byte) ([]byte, error) {
	size, rest, err := readVarInt(5, p)
	if err != nil {
		return nil, err
	}
	if size > uint64(^uint32(0)) {
		return nil, protocolErrorf("dynamic table size update %d overflows uint32", size)
	}
	if err := d.dynTab.updateSize(uint32(size)); err != nil {
		return nil, err
	}
	return rest, nil
}

// getByIndex resolves a combined-address-space index (§2.3.3) to a
// HeaderField, reporting false if it names neither a static nor a
// live dynamic entry.
func (d *Decoder) getByIndex(idx int) (HeaderField, bool) {
	if idx < firstDynamicIndex {
		if idx < 1 {
			return HeaderField{}, false
		}
		return getStaticEntry(idx), true
	}
	return d.dynTab.getEntry(idx)
}

// DecodeStatus decodes a single header field representation off the
// front of p under the assumption that it encodes a :status
// pseudo-header, returning its numeric value.
//
// It first tries a fast path: if p is a plain indexed field naming
// one of the seven status codes the static table caches (200, 204,
// 206, 304, 400, 404, 500), the status is read directly from the
// index with no string decode or dynamic-table touch at all. Any
// other representation falls back to the general decoder: leading
// dynamic table size updates are applied and skipped, and the first
// field after them - an indexed field pointing elsewhere or a literal
// - is decoded and inspected; this is the rewind described in the
// analogous routine of the implementation this package is modeled
// on, though here it costs nothing more than not having taken the
// fast path's early return.
func (d *Decoder) DecodeStatus(p []byte) (status int, rest []byte, err error) {
	if len(p) > 0 && p[0]&0x80 != 0 {
		idx, r, ierr := readVarInt(7, p)
		if ierr == nil {
			if code, ok := staticStatusCodeForIndex(int(idx)); ok {
				return code, r, nil
			}
		}
	}

	var (
		found bool
		code  int
		ferr  error
	)
	for len(p) > 0 && p[0]&0xe0 == 0x20 {
		if p, err = d.parseSizeUpdate(p); err != nil {
			return 0, nil, err
		}
	}
	if len(p) == 0 {
		return 0, nil, incompleteDataf(1)
	}
	rest, err = d.parseField(p, func(f HeaderField) {
		if f.Name != ":status" {
			return
		}
		if v, e := strconv.Atoi(f.Value); e == nil {
			code, found = v, true
		} else {
			ferr = protocolErrorf("non-numeric :status value %q", f.Value)
		}
	})
	if err != nil {
		return 0, nil, err
	}
	if ferr != nil {
		return 0, nil, ferr
	}
	if !found {
		return 0, nil, protocolErrorf("representation did not encode a :status field")
	}
	return code, rest, nil
}
