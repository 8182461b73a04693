// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package prng

import "testing"

func TestInitIsReproducibleForFixedSeed(t *testing.T) {
	Init(42)
	a := PropagationRNG().Float64()

	Init(42)
	b := PropagationRNG().Float64()

	if a != b {
		t.Fatalf("same root seed produced different draws: %v != %v", a, b)
	}
}

func TestInitVariesWithSeed(t *testing.T) {
	Init(1)
	a := PropagationRNG().Float64()

	Init(2)
	b := PropagationRNG().Float64()

	if a == b {
		t.Fatalf("different root seeds produced the same draw: %v", a)
	}
}
