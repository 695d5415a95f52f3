package hpack

import (
	"reflect"
	"testing"
)

func TestChunkedDecoderSplitAcrossChunks(t *testing.T) {
	full := dehex("400a 6375 7374 6f6d 2d6b 6579 0d63 7573 746f 6d2d 6865 6164 6572")
	for split := 1; split < len(full); split++ {
		d := NewDecoder(4096)
		cd := NewChunkedDecoder(d)
		var got []HeaderField
		emit := func(f HeaderField) { got = append(got, f) }

		if hint, err := cd.Feed(full[:split], false, emit); err != nil {
			t.Fatalf("split %d: first Feed: %v", split, err)
		} else if len(got) == 0 && hint == 0 {
			t.Fatalf("split %d: expected either a field or a positive hint", split)
		}
		if _, err := cd.Feed(full[split:], true, emit); err != nil {
			t.Fatalf("split %d: second Feed: %v", split, err)
		}

		want := []HeaderField{pair("custom-key", "custom-header")}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("split %d: got %v; want %v", split, got, want)
		}
		if cd.PendingDataSize() != 0 {
			t.Fatalf("split %d: PendingDataSize() = %d after completion; want 0", split, cd.PendingDataSize())
		}
	}
}

func TestChunkedDecoderTruncatedLastChunk(t *testing.T) {
	full := dehex("400a 6375 7374 6f6d 2d6b 6579 0d63 7573 746f 6d2d 6865 6164 6572")
	d := NewDecoder(4096)
	cd := NewChunkedDecoder(d)
	_, err := cd.Feed(full[:len(full)-3], true, func(HeaderField) {})
	if err == nil {
		t.Fatal("expected a protocol error for a truncated final chunk")
	}
	if _, ok := err.(*ProtocolError); !ok {
		t.Fatalf("got %T; want *ProtocolError", err)
	}
}

func TestChunkedDecoderClear(t *testing.T) {
	full := dehex("400a 6375 7374 6f6d 2d6b 6579 0d63 7573 746f 6d2d 6865 6164 6572")
	d := NewDecoder(4096)
	cd := NewChunkedDecoder(d)
	if _, err := cd.Feed(full[:3], false, func(HeaderField) {}); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if cd.PendingDataSize() == 0 {
		t.Fatal("expected a nonzero pending tail before Clear")
	}
	cd.Clear()
	if cd.PendingDataSize() != 0 {
		t.Fatalf("PendingDataSize() = %d after Clear; want 0", cd.PendingDataSize())
	}
}

func TestChunkedDecoderMultipleFieldsPerChunk(t *testing.T) {
	full := dehex("8286 8441 0f77 7777 2e65 7861 6d70 6c65 2e63 6f6d")
	d := NewDecoder(4096)
	cd := NewChunkedDecoder(d)
	var got []HeaderField
	if _, err := cd.Feed(full, true, func(f HeaderField) { got = append(got, f) }); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	want := []HeaderField{
		pair(":method", "GET"),
		pair(":scheme", "http"),
		pair(":path", "/"),
		pair(":authority", "www.example.com"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v; want %v", got, want)
	}
}
