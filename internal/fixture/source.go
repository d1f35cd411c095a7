package fixture

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Source is a seeded random stream. It is not safe for concurrent use;
// give each goroutine its own Source via Derive.
type Source struct {
	seed   uint64
	stream *rand.ChaCha8
	rng    *rand.Rand
}

// NewSource returns a Source whose whole output is determined by seed.
func NewSource(seed uint64) *Source {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	key := sha256.Sum256(buf[:])

	stream := rand.NewChaCha8(key)
	return &Source{
		seed:   seed,
		stream: stream,
		rng:    rand.New(stream),
	}
}

// RandomSeed draws a fresh seed from the runtime's entropy source.
func RandomSeed() uint64 {
	return rand.Uint64()
}

func (s *Source) Seed() uint64 {
	return s.seed
}

// Derive returns an independent Source keyed by this Source's seed and the
// labels. It does not consume from s, so derived streams do not depend on
// the order in which they are created.
func (s *Source) Derive(labels ...string) *Source {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], s.seed)
	h.Write(buf[:])
	for _, label := range labels {
		h.Write([]byte(label))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return NewSource(binary.LittleEndian.Uint64(sum[:8]))
}

// IntRange returns a uniform integer in [lo, hi]. It panics if hi < lo.
func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		panic("fixture: IntRange with hi < lo")
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// Int64Range returns a uniform integer in [lo, hi]. It panics if hi < lo.
func (s *Source) Int64Range(lo, hi int64) int64 {
	if hi < lo {
		panic("fixture: Int64Range with hi < lo")
	}
	return lo + s.rng.Int64N(hi-lo+1)
}

// Pick returns a uniform index in [0, n).
func (s *Source) Pick(n int) int {
	return s.rng.IntN(n)
}

// UUID reads a version 4 UUID from the stream.
func (s *Source) UUID() (uuid.UUID, error) {
	return uuid.NewRandomFromReader(s.stream)
}
