package hpack

import (
	"fmt"
	"reflect"
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestConcurrentEncodersAreIndependent exercises the property that a
// fresh Encoder/Decoder pair holds no state outside itself: many pairs
// running in parallel, each on its own goroutine, must not observe
// each other's dynamic table no matter how their iterations interleave.
func TestConcurrentEncodersAreIndependent(t *testing.T) {
	const workers = 32
	fields := []HeaderField{
		pair(":method", "GET"),
		pair(":scheme", "https"),
		pair(":path", "/widgets"),
		pair("x-request-id", "abc123"),
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			e := NewEncoder(4096)
			d := NewDecoder(4096)
			for round := 0; round < 50; round++ {
				var buf []byte
				for _, f := range fields {
					buf = e.Encode(buf, f, IndexIncremental)
				}
				got, err := d.DecodeFull(buf)
				if err != nil {
					return err
				}
				if !reflect.DeepEqual(got, fields) {
					t.Errorf("round %d: got %v; want %v", round, got, fields)
				}
				if e.DynamicTableSize() != d.DynamicTableSize() {
					t.Errorf("round %d: encoder/decoder table sizes diverged: %d vs %d",
						round, e.DynamicTableSize(), d.DynamicTableSize())
				}
			}
			// x-request-id, the one field with no static-table
			// entry, must by now be a single fully indexed byte out
			// of this goroutine's own dynamic table: if that table
			// were being clobbered by another's, the repeat match
			// would fail intermittently.
			first := e.Encode(nil, fields[3], IndexIncremental)
			if first[0]&0x80 == 0 || len(first) != 1 {
				return fmt.Errorf("expected a single fully indexed byte for a repeated field, got %x", first)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
