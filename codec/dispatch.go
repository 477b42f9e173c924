package codec

import "github.com/crackcomm/protoc-plugin-go/spec"

// tagIndex maps a wire tag to the index of the spec.DecodeField that owns
// it. Below Config.DispatchArrayThreshold it is a flat array indexed
// directly by tag number; above it, a map, so a message with one huge
// extension-range tag doesn't force a multi-gigabyte array.
type tagIndex struct {
	array []int32 // array[tag] = fieldIndex+1, 0 = no owner
	table map[int32]int32
}

const noOwner = -1

func newTagIndex(fields []spec.DecodeField, threshold int32) *tagIndex {
	var maxTag int32
	for _, f := range fields {
		for _, t := range f.Tags() {
			if t > maxTag {
				maxTag = t
			}
		}
	}
	ti := &tagIndex{}
	if maxTag < threshold {
		ti.array = make([]int32, maxTag+1)
		for i := range ti.array {
			ti.array[i] = noOwner + 1 // 0 sentinel, see lookup below
		}
		for i, f := range fields {
			for _, t := range f.Tags() {
				ti.array[t] = int32(i) + 1
			}
		}
		return ti
	}
	ti.table = make(map[int32]int32, len(fields))
	for i, f := range fields {
		for _, t := range f.Tags() {
			ti.table[t] = int32(i)
		}
	}
	return ti
}

// lookup returns the owning field index and whether one exists.
func (ti *tagIndex) lookup(tag int32) (int32, bool) {
	if ti.array != nil {
		if tag < 0 || int(tag) >= len(ti.array) {
			return 0, false
		}
		v := ti.array[tag]
		if v == 0 {
			return 0, false
		}
		return v - 1, true
	}
	idx, ok := ti.table[tag]
	return idx, ok
}
