// Package randutil derives reproducible math/rand/v2 generators from int64
// seeds.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns an independent seed for the numbered stream of a run, so
// parallel workers can each own a generator without sharing state.
func Derive(seed int64, stream int) int64 {
	return int64(mix(uint64(seed) ^ mix(uint64(stream)+goldenRatio64)))
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
