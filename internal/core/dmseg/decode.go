package dmseg

import (
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// Decode returns every record with content found in b
func Decode(b []byte) []Record {
	recs, _ := DecodeReport(b)
	return recs
}

// DecodeReport decodes b and reports how far it got.
// Every iteration consumes at least one byte, so it terminates on any input
func DecodeReport(b []byte) ([]Record, Report) {
	var (
		out []Record
		rep Report
		off int
	)
	for off < len(b) {
		num, typ, n := consumeTag(b[off:])
		if n <= 0 {
			rep.Corrupt = true
			break
		}
		off += n

		if num != fieldElems || typ != protowire.BytesType {
			m := skipField(b[off:], typ)
			if m <= 0 {
				rep.Corrupt = true
				break
			}
			off += m
			continue
		}

		size, n := protowire.ConsumeVarint(b[off:])
		if n < 0 {
			rep.Corrupt = true
			break
		}
		off += n

		end := off + int(min(size, uint64(len(b)-off)))
		truncated := uint64(end-off) < size

		rep.Elems++
		rec := decodeRecord(b[off:end])
		if rec.Content != "" {
			out = append(out, rec)
			rep.Kept++
		} else {
			rep.Dropped++
		}
		off = end
		if truncated {
			rep.Corrupt = true
			break
		}
	}
	rep.Consumed = off
	return out, rep
}

// decodeRecord reads one elems payload. Exhaustion mid-field keeps the
// fields read so far
func decodeRecord(b []byte) Record {
	var r Record
	off := 0
	for off < len(b) {
		num, typ, n := consumeTag(b[off:])
		if n <= 0 {
			return r
		}
		off += n

		switch {
		case typ == protowire.VarintType && isScalar(num):
			v, n := protowire.ConsumeVarint(b[off:])
			if n < 0 {
				return r
			}
			off += n
			setScalar(&r, num, v)

		case typ == protowire.BytesType && (num == fieldMidHash || num == fieldContent):
			v, n := protowire.ConsumeBytes(b[off:])
			if n < 0 {
				return r
			}
			off += n
			s := strings.ToValidUTF8(string(v), "\uFFFD")
			if num == fieldContent {
				r.Content = s
			} else {
				r.MidHash = s
			}

		default:
			m := skipField(b[off:], typ)
			if m <= 0 {
				return r
			}
			off += m
		}
	}
	return r
}

func isScalar(num protowire.Number) bool {
	switch num {
	case fieldID, fieldProgress, fieldMode, fieldFontSize, fieldColor, fieldCtime, fieldPool:
		return true
	}
	return false
}

func setScalar(r *Record, num protowire.Number, v uint64) {
	switch num {
	case fieldID:
		r.ID = v
	case fieldProgress:
		r.ProgressMs = uint32(v)
	case fieldMode:
		r.Mode = uint32(v)
	case fieldFontSize:
		r.FontSize = uint32(v)
	case fieldColor:
		r.Color = uint32(v)
	case fieldCtime:
		r.Ctime = v
	case fieldPool:
		r.Pool = uint32(v)
	}
}

// consumeTag reads a varint tag without rejecting reserved field numbers,
// so a zero field number is skipped like any other unknown field
func consumeTag(b []byte) (protowire.Number, protowire.Type, int) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, n
	}
	return protowire.Number(v >> 3), protowire.Type(v & 7), n
}

// skipField returns how many bytes the value of a field of type typ occupies.
// Truncated values run to the end of b. Group and reserved wire types skip a
// single byte. A result of zero means no progress is possible
func skipField(b []byte, typ protowire.Type) int {
	switch typ {
	case protowire.VarintType, protowire.Fixed64Type, protowire.BytesType, protowire.Fixed32Type:
		n := protowire.ConsumeFieldValue(0, typ, b)
		if n < 0 {
			return len(b)
		}
		return n
	default:
		return min(1, len(b))
	}
}
