package normalize

// Views bundles the two projections of one comment a matcher tries, in order
type Views struct {
	Normalized string // output of Normalizer.Normalize
	Raw        string // comment text as decoded
}

// Texts returns the projections in trial order, skipping a duplicate raw form
func (v Views) Texts() []string {
	if v.Raw == v.Normalized {
		return []string{v.Normalized}
	}
	return []string{v.Normalized, v.Raw}
}
