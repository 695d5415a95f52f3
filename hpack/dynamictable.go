package hpack

// dynamicEntry is one row of a dynamicTable. seq is a monotonically
// increasing identifier assigned at insertion time; it is what makes
// the entry's current index computable without renumbering every
// live entry on every insert (see dynamicTable's doc comment).
type dynamicEntry struct {
	field HeaderField
	seq   uint64
}

// dynamicTable is the per-connection, per-direction (encoder or
// decoder) insertion-ordered, byte-bounded table RFC 7541 §2.3.2
// describes: each entry is assigned a seq at insertion time, and its
// index is derived from that seq, so the index grows by one with each
// newer insertion and is unaffected by evicting older entries. It is a
// "reverse-indexed vector": entries
// are stored oldest-first in a plain slice, newest appended at the
// end, so both insertion and combined-address-space index lookup are
// O(1); there is no per-insert renumbering.
//
// entries[0] is always the current oldest (next to be evicted);
// entries[len(entries)-1] is always the newest, addressable as
// firstDynamicIndex (62). Because seq increases by exactly one per
// successful insertion and entries are only ever dropped from the
// front, the live entries always occupy a contiguous range of seq
// values — which is what lets byName store plain seq numbers and
// still locate an entry's current slice position in O(1), even after
// arbitrary evictions.
type dynamicTable struct {
	entries []dynamicEntry
	byName  map[string][]uint64 // name -> seqs sharing that name, oldest-to-newest

	currentSize     uint32
	maxSize         uint32
	protocolMaxSize uint32
	insertCount     uint64
}

func newDynamicTable(maxSize, protocolMaxSize uint32) *dynamicTable {
	return &dynamicTable{
		byName:          make(map[string][]uint64),
		maxSize:         maxSize,
		protocolMaxSize: protocolMaxSize,
	}
}

func (t *dynamicTable) len() int { return len(t.entries) }

// currentMaxIndex returns the largest valid combined-address-space
// index for a non-empty table, or firstDynamicIndex-1 (61) if the
// table is empty — meaning no dynamic index is currently valid.
func (t *dynamicTable) currentMaxIndex() int {
	return firstDynamicIndex + len(t.entries) - 1
}

func (t *dynamicTable) posForSeq(seq uint64) int {
	if len(t.entries) == 0 {
		return -1
	}
	base := t.entries[0].seq
	if seq < base {
		return -1
	}
	pos := int(seq - base)
	if pos >= len(t.entries) {
		return -1
	}
	return pos
}

func (t *dynamicTable) indexForPos(pos int) int {
	return firstDynamicIndex + (len(t.entries) - 1 - pos)
}

// getEntry returns the entry at the given combined-address-space
// index, which must be a dynamic index (>= firstDynamicIndex).
func (t *dynamicTable) getEntry(index int) (HeaderField, bool) {
	pos := len(t.entries) - 1 - (index - firstDynamicIndex)
	if pos < 0 || pos >= len(t.entries) {
		return HeaderField{}, false
	}
	return t.entries[pos].field, true
}

// addEntry implements RFC 7541 §4.4's eviction-then-insert rule: if
// the new entry alone is larger than maxSize, the whole table is
// cleared and 0 is returned; otherwise entries are evicted from the
// oldest end until the new one fits, then it is appended.
//
// It always returns firstDynamicIndex (62) on success, since a
// freshly-inserted entry is always the newest.
func (t *dynamicTable) addEntry(name, value string) int {
	f := HeaderField{Name: name, Value: value}
	size := f.Size()
	if size > t.maxSize {
		t.reset()
		return 0
	}
	t.evictUntilAtMost(t.maxSize - size)
	t.insertCount++
	e := dynamicEntry{field: f, seq: t.insertCount}
	t.entries = append(t.entries, e)
	t.byName[name] = append(t.byName[name], e.seq)
	t.currentSize += size
	return firstDynamicIndex
}

func (t *dynamicTable) evictUntilAtMost(limit uint32) {
	for len(t.entries) > 0 && t.currentSize > limit {
		t.evictOldest()
	}
}

func (t *dynamicTable) evictOldest() {
	e := t.entries[0]
	t.entries = t.entries[1:]
	t.currentSize -= e.field.Size()

	seqs := t.byName[e.field.Name]
	for i, s := range seqs {
		if s == e.seq {
			seqs = append(seqs[:i], seqs[i+1:]...)
			break
		}
	}
	if len(seqs) == 0 {
		delete(t.byName, e.field.Name)
	} else {
		t.byName[e.field.Name] = seqs
	}
}

// updateSize implements the in-band dynamic-table-size-update
// representation (§4.5): it is a protocol error for newMax to exceed
// protocolMaxSize; otherwise entries are evicted until the table fits
// within the new bound.
func (t *dynamicTable) updateSize(newMax uint32) error {
	if newMax > t.protocolMaxSize {
		return protocolErrorf("dynamic table size update %d exceeds protocol maximum %d", newMax, t.protocolMaxSize)
	}
	t.evictUntilAtMost(newMax)
	t.maxSize = newMax
	return nil
}

// setProtocolMax records a new hard limit coming from the enclosing
// protocol (e.g. HTTP/2 SETTINGS_HEADER_TABLE_SIZE). If the current
// maxSize now exceeds it, maxSize is lowered (and entries evicted) to
// match.
func (t *dynamicTable) setProtocolMax(newCap uint32) {
	t.protocolMaxSize = newCap
	if t.maxSize > newCap {
		t.evictUntilAtMost(newCap)
		t.maxSize = newCap
	}
}

// find searches the dynamic table for (name, value). It returns the
// index of the newest entry matching name (0 if none), and whether
// some entry sharing that name also matched value — in which case
// the returned index addresses that entry specifically.
func (t *dynamicTable) find(name, value string) (idx int, valueMatched bool) {
	seqs := t.byName[name]
	if len(seqs) == 0 {
		return 0, false
	}
	nameIdx := 0
	if pos := t.posForSeq(seqs[len(seqs)-1]); pos >= 0 {
		nameIdx = t.indexForPos(pos)
	}
	for i := len(seqs) - 1; i >= 0; i-- {
		pos := t.posForSeq(seqs[i])
		if pos < 0 {
			continue
		}
		if t.entries[pos].field.Value == value {
			return t.indexForPos(pos), true
		}
	}
	return nameIdx, false
}

// findByIndex resolves a dynamic index to its name, then reuses find's
// name-hash probe and newest-to-oldest value scan for that name.
func (t *dynamicTable) findByIndex(index int, value string) (idx int, valueMatched bool) {
	f, ok := t.getEntry(index)
	if !ok {
		return 0, false
	}
	return t.find(f.Name, value)
}

// reset destroys all entries, per §4.5. insertCount is not reset: it
// is a monotonic counter for the lifetime of the table, so that live
// entries inserted after a reset never collide in seq with anything
// that came before it.
func (t *dynamicTable) reset() {
	t.entries = t.entries[:0]
	t.byName = make(map[string][]uint64)
	t.currentSize = 0
}
