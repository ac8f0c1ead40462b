// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rng isolates every source of randomness in the pipeline behind one
// interface so tests can script deterministic sequences.
package rng

import (
	"github.com/Voidixx/OctanesCore/pkg/common"
)

// Source is the injectable source of randomness. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// New returns a wall-clock seeded source.
func New() Source {
	return common.NewSeededRand()
}

// IntBetween returns a uniform value in [lo, hi] inclusive.
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Pick returns a uniformly chosen element of list.
func Pick[T any](src Source, list []T) T {
	return list[src.Intn(len(list))]
}

// Sample returns n elements drawn without replacement. The input is not
// modified. Panics when n exceeds len(list), callers check the threshold first.
func Sample[T any](src Source, list []T, n int) []T {
	shuffled := make([]T, len(list))
	copy(shuffled, list)
	src.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
