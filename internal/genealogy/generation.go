package genealogy

// Generation identifies a layer of the tree. Generation 1 holds the
// Original person. Generations only move forward.
type Generation uint64

// GenerationFromUint64 converts a raw layer number.
func GenerationFromUint64(i uint64) Generation { return Generation(i) }

// FirstGeneration is the layer of the Original person.
func FirstGeneration() Generation { return 1 }

// Increment returns the next layer.
func (g Generation) Increment() Generation { return g + 1 }

// Less reports whether g comes before other.
func (g Generation) Less(other Generation) bool { return g < other }

// Uint64 returns the raw layer number.
func (g Generation) Uint64() uint64 { return uint64(g) }
