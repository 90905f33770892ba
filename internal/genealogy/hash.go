package genealogy

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// structHasher feeds canonical field encodings into xxHash64.
//
// Encoding rules:
//   - strings: 8-byte little-endian length, then the raw bytes
//   - integers: fixed width, little-endian
//
// Field order per type is fixed by the hashInto methods below. Changing any
// of it changes every derived id and seed.
type structHasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newStructHasher() *structHasher {
	return &structHasher{d: xxhash.New()}
}

func (h *structHasher) writeString(s string) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(len(s)))
	_, _ = h.d.Write(h.buf[:])
	_, _ = h.d.WriteString(s)
}

func (h *structHasher) writeUint8(v uint8) {
	h.buf[0] = v
	_, _ = h.d.Write(h.buf[:1])
}

func (h *structHasher) writeInt8(v int8) {
	h.writeUint8(uint8(v))
}

func (h *structHasher) writeInt64(v int64) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	_, _ = h.d.Write(h.buf[:])
}

func (h *structHasher) sum() uint64 { return h.d.Sum64() }

func (p PersonInfo) hashInto(h *structHasher) {
	h.writeString(string(p.ID))
	h.writeUint8(p.NumberOfChildren)
	h.writeUint8(p.NumberOfPartners)
}

func (p PartnerInfo) hashInto(h *structHasher) {
	h.writeString(string(p.ID))
}

func (p Probability) hashInto(h *structHasher) {
	h.writeInt64(p.value)
	h.writeInt64(p.base)
}

func (c Config) hashInto(h *structHasher) {
	h.writeString(c.Seed)
	c.Original.hashInto(h)
	h.writeInt8(c.AverageLife)
	c.InfantDeathRate.hashInto(h)
	c.TotalFertilityRate.hashInto(h)
	c.ProbabilityOfHavingPartner.hashInto(h)
}

// HashPersonInfo returns the structural hash of p.
func HashPersonInfo(p PersonInfo) uint64 {
	h := newStructHasher()
	p.hashInto(h)
	return h.sum()
}

// HashPartnerInfo returns the structural hash of p.
func HashPartnerInfo(p PartnerInfo) uint64 {
	h := newStructHasher()
	p.hashInto(h)
	return h.sum()
}

// HashConfig returns the structural hash of c. It seeds the global stream.
func HashConfig(c Config) uint64 {
	h := newStructHasher()
	c.hashInto(h)
	return h.sum()
}
