package easyeda

import "strconv"

const gidPrefix = "gge"

// IDAllocator hands out the document-unique element ids EasyEDA expects
// ("gge1", "gge2", ...). One allocator must be used for a whole document.
type IDAllocator struct {
	next int
}

// NewIDAllocator returns an allocator whose first id is "gge1".
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns the next id.
func (a *IDAllocator) Next() string {
	if a.next < 1 {
		a.next = 1
	}
	id := gidPrefix + strconv.Itoa(a.next)
	a.next++
	return id
}

// RefDesAllocator numbers reference designators per prefix, starting at 1.
type RefDesAllocator struct {
	next map[string]int
}

func NewRefDesAllocator() *RefDesAllocator {
	return &RefDesAllocator{next: make(map[string]int)}
}

// Next returns the next designator for prefix, e.g. "U1", "U2", "R1".
func (a *RefDesAllocator) Next(prefix string) string {
	if a.next == nil {
		a.next = make(map[string]int)
	}
	a.next[prefix]++
	return prefix + strconv.Itoa(a.next[prefix])
}
