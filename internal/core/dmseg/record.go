// Package dmseg decodes danmaku segment buffers.
// A buffer is a run of tag-prefixed fields; every field 1 / length-delimited
// occurrence ("elems") carries one comment record in the same encoding.
// Decoding never fails: corrupt or truncated input yields a partial list
package dmseg

// Record is one decoded comment
type Record struct {
	ID         uint64 `json:"id,omitempty" yaml:"id,omitempty"`
	ProgressMs uint32 `json:"progress_ms" yaml:"progress_ms"`
	Mode       uint32 `json:"mode,omitempty" yaml:"mode,omitempty"`
	FontSize   uint32 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	Color      uint32 `json:"color,omitempty" yaml:"color,omitempty"`
	MidHash    string `json:"mid_hash,omitempty" yaml:"mid_hash,omitempty"`
	Content    string `json:"content" yaml:"content"`
	Ctime      uint64 `json:"ctime,omitempty" yaml:"ctime,omitempty"`
	Pool       uint32 `json:"pool,omitempty" yaml:"pool,omitempty"`
}

// Pool values carried by the record pool field
const (
	PoolNormal   uint32 = 0
	PoolSubtitle uint32 = 1
	PoolSpecial  uint32 = 2 // advanced/BAS danmaku
)

// field numbers of the outer buffer and of a record
const (
	fieldElems = 1

	fieldID       = 1
	fieldProgress = 2
	fieldMode     = 3
	fieldFontSize = 4
	fieldColor    = 5
	fieldMidHash  = 6
	fieldContent  = 7
	fieldCtime    = 8
	fieldPool     = 11
)

// Report describes a single buffer decode
type Report struct {
	Elems    int  `json:"elems"`    // elems fields encountered
	Kept     int  `json:"kept"`     // records returned
	Dropped  int  `json:"dropped"`  // records without content
	Corrupt  bool `json:"corrupt"`  // decoding stopped before the end of the buffer
	Consumed int  `json:"consumed"` // outer bytes consumed
}
