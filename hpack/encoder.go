package hpack

import "strconv"

// IndexingMode selects how Encoder.Encode represents a field that
// isn't already an exact match for some table entry (RFC 7541 §6.2).
// An exact match is always emitted as a fully indexed field
// regardless of mode, since that costs strictly fewer bytes and
// leaves the dynamic table untouched either way.
type IndexingMode int

const (
	// IndexIncremental emits a literal and inserts it into the
	// dynamic table, so that an exact repeat later can be fully
	// indexed. This is the right default for ordinary header
	// traffic, where the same names and often the same values recur
	// across a connection's requests or responses.
	IndexIncremental IndexingMode = iota
	// IndexNone emits a literal without touching the dynamic table,
	// for a field not worth caching (e.g. known to vary every time).
	IndexNone
	// IndexNever emits a literal flagged not to be indexed by this
	// encoding or by any re-encoding downstream, the representation
	// RFC 7541 §7.1 recommends for sensitive header values such as
	// credentials, so that a compromised intermediary's compression
	// state never holds them either.
	IndexNever
)

// Encoder turns HeaderFields into HPACK wire representations,
// maintaining the dynamic table its Decoder counterpart mirrors.
// Like Decoder, it is only safe for use by one goroutine at a time.
type Encoder struct {
	dynTab  *dynamicTable
	huffman bool
}

// NewEncoder returns an Encoder whose dynamic table may grow up to
// maxDynamicTableSize bytes. Huffman coding of string literals
// defaults to on.
func NewEncoder(maxDynamicTableSize uint32) *Encoder {
	return &Encoder{
		dynTab:  newDynamicTable(maxDynamicTableSize, maxDynamicTableSize),
		huffman: true,
	}
}

func (e *Encoder) SetMaxDynamicTableSize(size uint32) { e.dynTab.setProtocolMax(size) }
func (e *Encoder) DynamicTableSize() uint32           { return e.dynTab.currentSize }

// SetHuffman controls whether string literals are Huffman-coded. It
// defaults to on, matching the wire format every interoperable HPACK
// implementation emits; turning it off is mainly useful for producing
// human-readable test vectors.
func (e *Encoder) SetHuffman(on bool) { e.huffman = on }

func (e *Encoder) getByIndex(idx int) (HeaderField, bool) {
	if idx < firstDynamicIndex {
		if idx < 1 {
			return HeaderField{}, false
		}
		return getStaticEntry(idx), true
	}
	return e.dynTab.getEntry(idx)
}

// find looks for (name, value) across both tables. It returns the
// index of an exact match if one exists (valueMatched true), or
// otherwise the index of some entry merely sharing name - static
// table entries are preferred over dynamic ones, since referencing
// them never competes for table space or risks later eviction.
func (e *Encoder) find(name, value string) (idx int, valueMatched bool) {
	if sidx, sok := findStatic(name, value); sok {
		return sidx, true
	}
	didx, dok := e.dynTab.find(name, value)
	if dok {
		return didx, true
	}
	if sidx := findStaticByName(name); sidx != 0 {
		return sidx, false
	}
	return didx, false
}

// EncodeFullyIndexed appends an indexed header field representation
// (§6.1) naming the combined-address-space index idx.
func (e *Encoder) EncodeFullyIndexed(dst []byte, idx int) []byte {
	dst = append(dst, 0x80)
	return appendVarInt(dst, 7, uint64(idx))
}

// EncodeIndexedNameIncremental appends a literal header field with
// incremental indexing (§6.2.1) whose name is referenced by nameIdx,
// and inserts the resulting (name, value) pair into the dynamic
// table.
func (e *Encoder) EncodeIndexedNameIncremental(dst []byte, nameIdx int, value string) []byte {
	f, ok := e.getByIndex(nameIdx)
	if !ok {
		panic("hpack: EncodeIndexedNameIncremental: index out of bounds")
	}
	dst = append(dst, 0x40)
	dst = appendVarInt(dst, 6, uint64(nameIdx))
	dst = encodeString(dst, value, e.huffman)
	e.dynTab.addEntry(f.Name, value)
	return dst
}

// EncodeNewNameIncremental appends a literal header field with
// incremental indexing whose name is not present in either table,
// and inserts (name, value) into the dynamic table.
func (e *Encoder) EncodeNewNameIncremental(dst []byte, name, value string) []byte {
	dst = append(dst, 0x40)
	dst = appendVarInt(dst, 6, 0)
	dst = encodeString(dst, name, e.huffman)
	dst = encodeString(dst, value, e.huffman)
	e.dynTab.addEntry(name, value)
	return dst
}

// EncodeWithoutIndexing appends a literal header field without
// indexing (§6.2.2) whose name is referenced by nameIdx.
func (e *Encoder) EncodeWithoutIndexing(dst []byte, nameIdx int, value string) []byte {
	dst = append(dst, 0x00)
	dst = appendVarInt(dst, 4, uint64(nameIdx))
	return encodeString(dst, value, e.huffman)
}

// EncodeWithoutIndexingNewName is EncodeWithoutIndexing's counterpart
// for a name absent from both tables.
func (e *Encoder) EncodeWithoutIndexingNewName(dst []byte, name, value string) []byte {
	dst = append(dst, 0x00)
	dst = appendVarInt(dst, 4, 0)
	dst = encodeString(dst, name, e.huffman)
	return encodeString(dst, value, e.huffman)
}

// EncodeNeverIndexed appends a literal header field never indexed
// (§6.2.3) whose name is referenced by nameIdx.
func (e *Encoder) EncodeNeverIndexed(dst []byte, nameIdx int, value string) []byte {
	dst = append(dst, 0x10)
	dst = appendVarInt(dst, 4, uint64(nameIdx))
	return encodeString(dst, value, e.huffman)
}

// EncodeNeverIndexedNewName is EncodeNeverIndexed's counterpart for a
// name absent from both tables.
func (e *Encoder) EncodeNeverIndexedNewName(dst []byte, name, value string) []byte {
	dst = append(dst, 0x10)
	dst = appendVarInt(dst, 4, 0)
	dst = encodeString(dst, name, e.huffman)
	return encodeString(dst, value, e.huffman)
}

// EncodeSizeUpdate appends a dynamic table size update (§6.3) and
// applies it to this Encoder's own table, exactly as a peer decoding
// this representation would. It returns a *ProtocolError, without
// appending anything further, if newSize exceeds the protocol maximum
// set by the last call to SetMaxDynamicTableSize.
func (e *Encoder) EncodeSizeUpdate(dst []byte, newSize uint32) ([]byte, error) {
	if err := e.dynTab.updateSize(newSize); err != nil {
		return dst, err
	}
	dst = append(dst, 0x20)
	return appendVarInt(dst, 5, uint64(newSize)), nil
}

// Encode appends f using the cheapest applicable representation: a
// fully indexed field if (f.Name, f.Value) exactly matches some table
// entry, otherwise a literal chosen according to mode, referencing
// f.Name by index when some entry already carries it.
//
// f.Sensitive forces IndexNever regardless of mode, so that marking a
// field sensitive is sufficient on its own to keep it out of the
// dynamic table - callers don't also have to remember to pass
// IndexNever at every call site that might emit it.
func (e *Encoder) Encode(dst []byte, f HeaderField, mode IndexingMode) []byte {
	if f.Sensitive {
		mode = IndexNever
	}
	idx, matched := e.find(f.Name, f.Value)
	if matched {
		return e.EncodeFullyIndexed(dst, idx)
	}
	switch mode {
	case IndexNever:
		if idx != 0 {
			return e.EncodeNeverIndexed(dst, idx, f.Value)
		}
		return e.EncodeNeverIndexedNewName(dst, f.Name, f.Value)
	case IndexNone:
		if idx != 0 {
			return e.EncodeWithoutIndexing(dst, idx, f.Value)
		}
		return e.EncodeWithoutIndexingNewName(dst, f.Name, f.Value)
	default:
		if idx != 0 {
			return e.EncodeIndexedNameIncremental(dst, idx, f.Value)
		}
		return e.EncodeNewNameIncremental(dst, f.Name, f.Value)
	}
}

// EncodeStatus appends a :status pseudo-header for code. For the
// seven codes the static table caches (200, 204, 206, 304, 400, 404,
// 500) this is a single fully indexed byte; any other code falls
// back to Encode.
func (e *Encoder) EncodeStatus(dst []byte, code int) []byte {
	if idx, ok := staticStatusIndex[code]; ok {
		return e.EncodeFullyIndexed(dst, idx)
	}
	return e.Encode(dst, HeaderField{Name: ":status", Value: strconv.Itoa(code)}, IndexIncremental)
}
