package filemap

// MemoryAdvice is a set of access-pattern hints for a mapped region.
// Hints are advisory only: they are forwarded to the operating system
// where supported and silently ignored where not, and they never
// affect the correctness of reads or writes through the mapping.
type MemoryAdvice uint32

const (
	// AdviceWillNeed hints that the region will be needed soon, asking
	// the OS to prefetch it
	AdviceWillNeed MemoryAdvice = 1 << iota

	// AdviceSequential hints that the region will be accessed
	// sequentially, favouring aggressive readahead
	AdviceSequential

	// AdviceRandom hints that the region will be accessed randomly,
	// discouraging readahead
	AdviceRandom
)

// Has reports whether all flags in flag are set in a.
func (a MemoryAdvice) Has(flag MemoryAdvice) bool {
	return a&flag == flag
}
