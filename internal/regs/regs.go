// Package regs tracks last-written register values recovered from the
// registers section of a crash dump.
package regs

// File is a mutable map from dword register offset to the last value
// seen for it. It is populated only by the primary registers section
// and reset once the reconstruction engine has read what it needs, so
// values cannot leak into later sections' rendering.
type File struct {
	vals map[uint32]uint32
}

// NewFile returns an empty register file.
func NewFile() *File {
	return &File{vals: make(map[uint32]uint32)}
}

// Set records value as the current contents of the register at offset.
// A later Set at the same offset wins.
func (f *File) Set(offset, value uint32) {
	f.vals[offset] = value
}

// Get returns the last value written at offset, zero if never written.
func (f *File) Get(offset uint32) uint32 {
	return f.vals[offset]
}

// Written reports whether offset has been written since the last Reset.
func (f *File) Written(offset uint32) bool {
	_, ok := f.vals[offset]
	return ok
}

// Reset clears all recorded values.
func (f *File) Reset() {
	f.vals = make(map[uint32]uint32)
}
