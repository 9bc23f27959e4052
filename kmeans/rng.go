// SPDX-License-Identifier: MIT
// Package kmeans - RNG utilities.
//
// Every random decision (initial centers, restarts) draws from a stream that
// is fully determined by Config.Seed:
//   - Determinism: same seed ⇒ identical streams on every platform
//     (math/rand.NewSource has a frozen sequence).
//   - No global or time-based sources; callers that want fresh randomness
//     must pick a seed themselves.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Each Fit call builds its own.
package kmeans

import "math/rand"

// rngFromSeed returns a deterministic *rand.Rand for seed.
// Unlike a "zero means default" policy, every seed including 0 is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed with a SplitMix64 finalizer, so restart streams are decorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG creates the stream for restart number stream.
// base.Int63() is consumed once per call, so derivations must happen in a
// fixed order (restart 0, 1, 2, ...) to stay reproducible.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(base.Int63(), stream)))
}
