package dmseg

import "google.golang.org/protobuf/encoding/protowire"

// Encode writes recs as a segment buffer that Decode reads back.
// Zero scalars and empty strings are omitted
func Encode(recs []Record) []byte {
	var out, elem []byte
	for _, r := range recs {
		elem = AppendRecord(elem[:0], r)
		out = protowire.AppendTag(out, fieldElems, protowire.BytesType)
		out = protowire.AppendBytes(out, elem)
	}
	return out
}

// AppendRecord appends the record payload (without the elems envelope) to b
func AppendRecord(b []byte, r Record) []byte {
	b = appendVarint(b, fieldID, r.ID)
	b = appendVarint(b, fieldProgress, uint64(r.ProgressMs))
	b = appendVarint(b, fieldMode, uint64(r.Mode))
	b = appendVarint(b, fieldFontSize, uint64(r.FontSize))
	b = appendVarint(b, fieldColor, uint64(r.Color))
	b = appendString(b, fieldMidHash, r.MidHash)
	b = appendString(b, fieldContent, r.Content)
	b = appendVarint(b, fieldCtime, r.Ctime)
	b = appendVarint(b, fieldPool, uint64(r.Pool))
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}
