package genealogy

// Probability is a rational encoding of a probability as value/base.
// It keeps Config comparable and hashable without floating point fields.
type Probability struct {
	value int64
	base  int64
}

// NewProbability builds value/base without validation.
func NewProbability(value, base int64) Probability {
	return Probability{value: value, base: base}
}

// Float64 returns (value mod base) / base.
// A zero base panics with the runtime integer divide error.
func (p Probability) Float64() float64 {
	v := p.value % p.base
	return float64(v) / float64(p.base)
}

// Float32 is the float32 counterpart of Float64.
func (p Probability) Float32() float32 {
	v := p.value % p.base
	return float32(v) / float32(p.base)
}
