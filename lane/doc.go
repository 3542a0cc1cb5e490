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

// Package lane provides portable 128-bit fixed-width lane primitives for
// signed 8-bit integer dot products.
//
// The package models the three packed-integer operations that quantized
// matrix kernels are built from:
//
//   - DotProdInt8x16: 16 pairs of int8 lanes multiplied and summed into
//     4 lanes of int32 partial sums
//   - ReduceInt32x4: horizontal sum of 4 int32 lanes into one scalar
//   - PairwiseSumInt8x16 / PairwiseWidenInt16x8: widening pairwise adds
//     used for per-row element sums (16 -> 8 -> 4 lanes)
//
// The lane semantics follow the x86 SSSE3 instruction sequence
// PSIGNB + PMADDUBSW + PMADDWD bit-for-bit, so a hardware backend can
// replace the portable implementation without changing results. See the
// DotProdInt8x16 documentation for the one consequence of that fidelity
// (the -128 sign-transfer wrap).
//
// The dispatch level is detected once at init from CPU features, and the
// TENSORUTILS_NO_SIMD environment variable forces the scalar fallback for
// testing.
package lane
