// Package memacc implements the address-keyed registry of memory
// buffers recovered from a crash dump. Buffer and ring contents are
// registered as they are decoded and later read back by iova when the
// command renderer follows indirect buffers.
package memacc

// Region is one contiguous recovered memory region. Contents are 32-bit
// words, the granularity of everything in the dump.
type Region struct {
	IOVA  uint64
	Words []uint32
}

// End returns the address immediately after the last byte of the region.
func (r *Region) End() uint64 {
	return r.IOVA + uint64(len(r.Words))*4
}

// Contains reports whether addr falls inside the region.
func (r *Region) Contains(addr uint64) bool {
	return addr >= r.IOVA && addr < r.End()
}

// Registry is the buffer store for one decode run. Entries are only
// ever added; lookups are read-only.
type Registry struct {
	regions []*Region
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers words as the contents of the region starting at iova.
func (g *Registry) Add(iova uint64, words []uint32) {
	g.regions = append(g.regions, &Region{IOVA: iova, Words: words})
}

// Find returns the region containing addr, or nil.
func (g *Registry) Find(addr uint64) *Region {
	for _, r := range g.regions {
		if r.Contains(addr) {
			return r
		}
	}
	return nil
}

// Words reads count words starting at the dword-aligned address addr.
// The read is clamped to the containing region; a miss returns nil.
func (g *Registry) Words(addr uint64, count uint32) []uint32 {
	r := g.Find(addr)
	if r == nil {
		return nil
	}
	off := (addr - r.IOVA) / 4
	avail := uint64(len(r.Words)) - off
	if uint64(count) < avail {
		avail = uint64(count)
	}
	return r.Words[off : off+avail]
}

// Len returns the number of registered regions.
func (g *Registry) Len() int { return len(g.regions) }
