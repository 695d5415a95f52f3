package hpack

// staticTable holds the 61 entries defined in RFC 7541 Appendix A,
// indexed 1..61. Entries sharing a name are contiguous (all seven
// ":status" rows, both ":method" rows, and so on): findStatic exploits
// that grouping to resolve a name-match with one probe and a short
// linear scan, instead of a full scan of the table.
var staticTable = [62]HeaderField{
	{}, // index 0 is reserved; "not found"
	pair(":authority", ""),
	pair(":method", "GET"),
	pair(":method", "POST"),
	pair(":path", "/"),
	pair(":path", "/index.html"),
	pair(":scheme", "http"),
	pair(":scheme", "https"),
	pair(":status", "200"),
	pair(":status", "204"),
	pair(":status", "206"),
	pair(":status", "304"),
	pair(":status", "400"),
	pair(":status", "404"),
	pair(":status", "500"),
	pair("accept-charset", ""),
	pair("accept-encoding", "gzip, deflate"),
	pair("accept-language", ""),
	pair("accept-ranges", ""),
	pair("accept", ""),
	pair("access-control-allow-origin", ""),
	pair("age", ""),
	pair("allow", ""),
	pair("authorization", ""),
	pair("cache-control", ""),
	pair("content-disposition", ""),
	pair("content-encoding", ""),
	pair("content-language", ""),
	pair("content-length", ""),
	pair("content-location", ""),
	pair("content-range", ""),
	pair("content-type", ""),
	pair("cookie", ""),
	pair("date", ""),
	pair("etag", ""),
	pair("expect", ""),
	pair("expires", ""),
	pair("from", ""),
	pair("host", ""),
	pair("if-match", ""),
	pair("if-modified-since", ""),
	pair("if-none-match", ""),
	pair("if-range", ""),
	pair("if-unmodified-since", ""),
	pair("last-modified", ""),
	pair("link", ""),
	pair("location", ""),
	pair("max-forwards", ""),
	pair("proxy-authenticate", ""),
	pair("proxy-authorization", ""),
	pair("range", ""),
	pair("referer", ""),
	pair("refresh", ""),
	pair("retry-after", ""),
	pair("server", ""),
	pair("set-cookie", ""),
	pair("strict-transport-security", ""),
	pair("transfer-encoding", ""),
	pair("user-agent", ""),
	pair("vary", ""),
	pair("via", ""),
	pair("www-authenticate", ""),
}

// firstDynamicIndex is the combined-address-space index of the
// newest dynamic table entry, i.e. one past the static table
// (RFC 7541 §2.3.3).
const firstDynamicIndex = 62

// Named constants for the static-table indices this package's
// response-status fast path and encode-status helper need by value,
// rather than by linear search, every time.
const (
	staticMethodGet  = 2
	staticMethodPost = 3
	staticPath       = 4
	staticPathIndex  = 5
	staticSchemeHTTP = 6
	staticSchemeHTTPS = 7
	staticStatus200  = 8
	staticStatus204  = 9
	staticStatus206  = 10
	staticStatus304  = 11
	staticStatus400  = 12
	staticStatus404  = 13
	staticStatus500  = 14
	staticAcceptEncoding = 16
)

// staticStatusIndex maps the seven status codes cached by the static
// table to their index, for the encoder's fast-path EncodeStatus.
var staticStatusIndex = map[int]int{
	200: staticStatus200,
	204: staticStatus204,
	206: staticStatus206,
	304: staticStatus304,
	400: staticStatus400,
	404: staticStatus404,
	500: staticStatus500,
}

// getStaticEntry returns the 1-indexed static table entry at i.
//
// Precondition: 1 <= i <= 61.
func getStaticEntry(i int) HeaderField {
	return staticTable[i]
}

// findStaticByName returns the smallest static-table index whose
// name equals name, or 0 if none does.
func findStaticByName(name string) int {
	for i := 1; i < firstDynamicIndex; i++ {
		if staticTable[i].Name == name {
			return i
		}
	}
	return 0
}

// findStatic searches the static table for (name, value). If some
// entry matches both, it returns that entry's index and true;
// otherwise it returns the smallest index matching name (0 if none)
// and false.
//
// It exploits the table's name-grouping: once the first name match
// is found, it scans forward only while subsequent entries still
// share that name.
func findStatic(name, value string) (idx int, valueMatched bool) {
	idx = findStaticByName(name)
	if idx == 0 {
		return 0, false
	}
	for i := idx; i < firstDynamicIndex; i++ {
		e := staticTable[i]
		if e.Name != name {
			break
		}
		if e.Value == "" {
			// A name-only entry terminates the group: RFC 7541's
			// static table never interleaves a name-only row between
			// two entries that carry a value for the same name.
			break
		}
		if e.Value == value {
			return i, true
		}
	}
	return idx, false
}

// findStaticByIndexAndValue tests whether value matches some entry
// sharing the name addressed by the static index idx, using the
// small enumerated substitution groups RFC 7541's table happens to
// contain (method, path, scheme, status, accept-encoding), instead
// of a generic scan. If value matches a sibling in idx's group, it
// returns that sibling's index and true; otherwise it returns idx
// unchanged and false.
func findStaticByIndexAndValue(idx int, value string) (int, bool) {
	switch idx {
	case staticMethodGet, staticMethodPost:
		switch value {
		case "GET":
			return staticMethodGet, true
		case "POST":
			return staticMethodPost, true
		}
	case staticPath, staticPathIndex:
		switch value {
		case "/":
			return staticPath, true
		case "/index.html":
			return staticPathIndex, true
		}
	case staticSchemeHTTP, staticSchemeHTTPS:
		switch value {
		case "http":
			return staticSchemeHTTP, true
		case "https":
			return staticSchemeHTTPS, true
		}
	case staticStatus200, staticStatus204, staticStatus206, staticStatus304,
		staticStatus400, staticStatus404, staticStatus500:
		if si, ok := staticStatusIndexByValue(value); ok {
			return si, true
		}
	case staticAcceptEncoding:
		if value == "gzip, deflate" {
			return staticAcceptEncoding, true
		}
	}
	return idx, false
}

// staticStatusCodeForIndex is the inverse of staticStatusIndex: given
// one of the seven static-table indices that cache a :status value,
// it returns the numeric status code. Used by the decoder's
// DecodeStatus fast path to skip string parsing entirely.
func staticStatusCodeForIndex(idx int) (int, bool) {
	switch idx {
	case staticStatus200:
		return 200, true
	case staticStatus204:
		return 204, true
	case staticStatus206:
		return 206, true
	case staticStatus304:
		return 304, true
	case staticStatus400:
		return 400, true
	case staticStatus404:
		return 404, true
	case staticStatus500:
		return 500, true
	}
	return 0, false
}

func staticStatusIndexByValue(value string) (int, bool) {
	switch value {
	case "200":
		return staticStatus200, true
	case "204":
		return staticStatus204, true
	case "206":
		return staticStatus206, true
	case "304":
		return staticStatus304, true
	case "400":
		return staticStatus400, true
	case "404":
		return staticStatus404, true
	case "500":
		return staticStatus500, true
	}
	return 0, false
}
