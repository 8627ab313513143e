package cleanout

// Delta is what a single cargo clean run reports as removed.
type Delta struct {
	FilesRemoved uint32 `json:"filesRemoved" yaml:"filesRemoved"`
	BytesRemoved uint64 `json:"bytesRemoved" yaml:"bytesRemoved"`
}

// Add returns the component-wise sum of d and o. Add is commutative and
// associative, so deltas can be folded in any order.
func (d Delta) Add(o Delta) Delta {
	return Delta{
		FilesRemoved: d.FilesRemoved + o.FilesRemoved,
		BytesRemoved: d.BytesRemoved + o.BytesRemoved,
	}
}

// IsZero reports whether nothing was removed.
func (d Delta) IsZero() bool {
	return d.FilesRemoved == 0 && d.BytesRemoved == 0
}

// Sum folds ds starting from the zero Delta.
func Sum(ds ...Delta) Delta {
	var total Delta
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
