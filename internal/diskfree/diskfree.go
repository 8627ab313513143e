// Package diskfree reports the free space of the volume holding a path.
package diskfree

import (
	"github.com/shirou/gopsutil/v4/disk"
)

// Free returns the bytes available on the volume holding path. ok is false
// when the volume cannot be queried.
func Free(path string) (free uint64, ok bool) {
	u, err := disk.Usage(path)
	if err != nil || u == nil {
		return 0, false
	}
	return u.Free, true
}

// Change is free space measured before and after a run.
type Change struct {
	Before uint64 `json:"before" yaml:"before"`
	After  uint64 `json:"after" yaml:"after"`
}

// Reclaimed is the growth in free space, zero if it shrank.
func (c Change) Reclaimed() uint64 {
	if c.After <= c.Before {
		return 0
	}
	return c.After - c.Before
}
