// Copyright 2026 go-tensorutils Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lane

import (
	"math/rand"
	"testing"
)

// testRNG returns a seeded random number generator for reproducible tests.
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// randInt8x16 fills a vector with values in [lo, hi].
func randInt8x16(rng *rand.Rand, lo, hi int) Int8x16 {
	var v Int8x16
	for i := range v {
		v[i] = int8(lo + rng.Intn(hi-lo+1))
	}
	return v
}

// referenceDot computes the true int32 dot product of two 16-lane blocks.
func referenceDot(a, b Int8x16) int32 {
	var sum int32
	for i := range a {
		sum += int32(a[i]) * int32(b[i])
	}
	return sum
}

func TestDotProdInt8x16MatchesScalar(t *testing.T) {
	rng := testRNG()

	for trial := 0; trial < 1000; trial++ {
		// Second operand stays in [-127, 127]: the sign transfer is only
		// exact for b != -128 (see DotProdInt8x16 docs).
		a := randInt8x16(rng, -128, 127)
		b := randInt8x16(rng, -127, 127)

		got := ReduceInt32x4(DotProdInt8x16(a, b))
		want := referenceDot(a, b)
		if got != want {
			t.Fatalf("trial %d: DotProdInt8x16(%v, %v) reduces to %d, want %d", trial, a, b, got, want)
		}
	}
}

func TestDotProdInt8x16Extremes(t *testing.T) {
	tests := []struct {
		name string
		a, b int8
		want int32 // per-lane contribution
	}{
		{"max_times_max", 127, 127, 127 * 127},
		{"min_times_max", -128, 127, -128 * 127},
		{"max_times_minus127", 127, -127, 127 * -127},
		{"min_times_minus127", -128, -127, -128 * -127},
		{"zero_times_min", 0, -128, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := BroadcastInt8x16(tc.a)
			b := BroadcastInt8x16(tc.b)
			got := ReduceInt32x4(DotProdInt8x16(a, b))
			if got != 16*tc.want {
				t.Errorf("got %d, want %d", got, 16*tc.want)
			}
		})
	}
}

func TestDotProdInt8x16SignTransferWrap(t *testing.T) {
	// PSIGNB wraps -(-128) to -128, so a negative lane of a against a -128
	// lane of b yields -|a|*128 instead of +|a|*128. Pin the hardware value.
	a := BroadcastInt8x16(-1)
	b := BroadcastInt8x16(-128)

	got := ReduceInt32x4(DotProdInt8x16(a, b))
	want := int32(16 * -128) // hardware result; the true product would be +16*128
	if got != want {
		t.Errorf("got %d, want hardware-exact %d", got, want)
	}
}

func TestReduceInt32x4(t *testing.T) {
	tests := []struct {
		name string
		v    Int32x4
		want int32
	}{
		{"zeros", Int32x4{}, 0},
		{"ascending", Int32x4{1, 2, 3, 4}, 10},
		{"mixed_signs", Int32x4{-5, 10, -20, 40}, 25},
		{"wrap", Int32x4{2147483647, 1, 0, 0}, -2147483648},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReduceInt32x4(tc.v); got != tc.want {
				t.Errorf("ReduceInt32x4(%v) = %d, want %d", tc.v, got, tc.want)
			}
		})
	}
}

func TestPairwiseSumInt8x16(t *testing.T) {
	rng := testRNG()

	for trial := 0; trial < 100; trial++ {
		v := randInt8x16(rng, -128, 127)
		got := PairwiseSumInt8x16(v)
		for i := 0; i < 8; i++ {
			want := int16(v[2*i]) + int16(v[2*i+1])
			if got[i] != want {
				t.Fatalf("lane %d: got %d, want %d", i, got[i], want)
			}
		}
	}
}

func TestPairwiseWidenInt16x8(t *testing.T) {
	v := Int16x8{32767, 32767, -32768, -32768, 1, -1, 100, -50}
	got := PairwiseWidenInt16x8(v)
	want := Int32x4{65534, -65536, 0, 50}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRowSumViaPairwise(t *testing.T) {
	// The 16 -> 8 -> 4 -> scalar chain must equal the plain element sum.
	rng := testRNG()

	for trial := 0; trial < 100; trial++ {
		v := randInt8x16(rng, -128, 127)
		got := ReduceInt32x4(PairwiseWidenInt16x8(PairwiseSumInt8x16(v)))
		var want int32
		for _, x := range v {
			want += int32(x)
		}
		if got != want {
			t.Fatalf("trial %d: got %d, want %d", trial, got, want)
		}
	}
}

func TestLoadInt8x16Slice(t *testing.T) {
	s := make([]int8, 20)
	for i := range s {
		s[i] = int8(i - 10)
	}
	v := LoadInt8x16Slice(s[2:])
	for i := 0; i < 16; i++ {
		if v[i] != s[2+i] {
			t.Errorf("lane %d: got %d, want %d", i, v[i], s[2+i])
		}
	}
}

func TestLoadInt8x16SliceShortPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for short slice")
		}
	}()
	LoadInt8x16Slice(make([]int8, 15))
}
