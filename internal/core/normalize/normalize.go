// Package normalize prepares danmaku text for time matching
// Pipeline order
// 1 Sanitize drop control characters and invalid UTF-8
// 2 Remove format characters (ZWSP, ZWJ, BOM)
// 3 Narrow fullwidth digits and Latin letters to ASCII
// 4 Rewrite ideographic numerals as decimal digits
//
// Fullwidth punctuation is kept as is; the time grammar gives the fullwidth colon its own meaning
package normalize

import (
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// fullwidthAlnum covers ０-９, Ａ-Ｚ and ａ-ｚ
var fullwidthAlnum = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0xFF10, Hi: 0xFF19, Stride: 1},
		{Lo: 0xFF21, Hi: 0xFF3A, Stride: 1},
		{Lo: 0xFF41, Hi: 0xFF5A, Stride: 1},
	},
}

// Normalizer is concurrency safe; transformer chains come from the pool below
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cf)),
			runes.If(runes.In(fullwidthAlnum), width.Narrow, nil),
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the matching form of s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return Numerals(ns)
}

// Views returns the texts a matcher should try for raw, normalized form first.
// The raw text is omitted when normalization left it unchanged
func (n *Normalizer) Views(raw string) Views {
	return Views{Normalized: n.Normalize(raw), Raw: raw}
}
