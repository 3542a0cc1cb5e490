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

// This file provides the portable implementations of the 128-bit integer
// lane primitives. Architecture-specific backends can replace them without
// changing results: the semantics below follow the SSSE3 instruction
// sequence the primitives are modeled on, bit for bit.

// Int8x16 is a 128-bit vector of 16 signed 8-bit lanes.
type Int8x16 [16]int8

// Int16x8 is a 128-bit vector of 8 signed 16-bit lanes.
type Int16x8 [8]int16

// Int32x4 is a 128-bit vector of 4 signed 32-bit lanes.
type Int32x4 [4]int32

// LoadInt8x16Slice loads the first 16 elements of s into a vector.
// Panics if len(s) < 16.
func LoadInt8x16Slice(s []int8) Int8x16 {
	return Int8x16(s)
}

// BroadcastInt8x16 returns a vector with all 16 lanes set to v.
func BroadcastInt8x16(v int8) Int8x16 {
	var r Int8x16
	for i := range r {
		r[i] = v
	}
	return r
}

// Add performs lane-wise 16-bit addition. Lanes wrap on overflow (PADDW).
func (v Int16x8) Add(o Int16x8) Int16x8 {
	var r Int16x8
	for i := range r {
		r[i] = v[i] + o[i]
	}
	return r
}

// Add performs lane-wise 32-bit addition (PADDD).
func (v Int32x4) Add(o Int32x4) Int32x4 {
	var r Int32x4
	for i := range r {
		r[i] = v[i] + o[i]
	}
	return r
}

// DotProdInt8x16 multiplies 16 pairs of signed 8-bit lanes and returns 4
// lanes of 32-bit partial sums whose total equals the full dot product:
//
//	sum(result) == sum_i(a[i] * b[i])
//
// The widening multiply-add (PMADDUBSW) treats its first operand as
// unsigned, so the sign of a is transferred onto b first (PSIGNB) and a is
// replaced by |a| (PABSB). A plain unsigned multiply would be wrong for any
// negative lane.
//
// One consequence of matching the hardware exactly: when a lane of a is
// negative and the matching lane of b is -128, the sign transfer wraps
// (-(-128) stays -128) and that lane contributes -|a[i]|*128 instead of
// +|a[i]|*128. Symmetric int8 quantizers emit weights in [-127, 127], which
// never hits this case.
func DotProdInt8x16(a, b Int8x16) Int32x4 {
	// PSIGNB b, a  and  PABSB a.
	var ua [16]uint8
	var sb [16]int8
	for i := 0; i < 16; i++ {
		switch {
		case a[i] > 0:
			ua[i] = uint8(a[i])
			sb[i] = b[i]
		case a[i] < 0:
			ua[i] = uint8(-int16(a[i])) // |-128| = 128
			sb[i] = -b[i]               // wraps for b[i] == -128, as PSIGNB does
		}
		// a[i] == 0 leaves both lanes zero; the product is zero either way.
	}
	// PMADDUBSW: unsigned x signed widening multiply, adjacent pairs summed
	// with int16 saturation. After the sign transfer every pair sum lies in
	// [-32768, 32512], so the clamp never fires; it is kept to pin the
	// instruction semantics.
	var m Int16x8
	for i := 0; i < 8; i++ {
		p := int32(ua[2*i])*int32(sb[2*i]) + int32(ua[2*i+1])*int32(sb[2*i+1])
		if p > 32767 {
			p = 32767
		} else if p < -32768 {
			p = -32768
		}
		m[i] = int16(p)
	}
	// PMADDWD with broadcast 1: pairwise widen 8x int16 to 4x int32.
	return PairwiseWidenInt16x8(m)
}

// PairwiseSumInt8x16 sums adjacent signed 8-bit lanes into 8 lanes of
// 16-bit sums. Equivalent to PMADDUBSW with a broadcast 1 as the unsigned
// operand; pair sums lie in [-256, 254] so saturation cannot occur.
func PairwiseSumInt8x16(v Int8x16) Int16x8 {
	var r Int16x8
	for i := 0; i < 8; i++ {
		r[i] = int16(v[2*i]) + int16(v[2*i+1])
	}
	return r
}

// PairwiseWidenInt16x8 sums adjacent signed 16-bit lanes into 4 lanes of
// 32-bit sums (PMADDWD with broadcast 1).
func PairwiseWidenInt16x8(v Int16x8) Int32x4 {
	var r Int32x4
	for i := 0; i < 4; i++ {
		r[i] = int32(v[2*i]) + int32(v[2*i+1])
	}
	return r
}

// ReduceInt32x4 horizontally adds the 4 lanes of v into one int32. The
// reduction is two branch-free halving steps: fold the high pair onto the
// low pair (PUNPCKHQDQ + PADDD), then swap the remaining two lanes and add
// (PSHUFD + PADDD).
func ReduceInt32x4(v Int32x4) int32 {
	hi := Int32x4{v[2], v[3], v[2], v[3]}
	v = v.Add(hi)
	sh := Int32x4{v[1], v[0], v[3], v[2]}
	v = v.Add(sh)
	return v[0]
}
