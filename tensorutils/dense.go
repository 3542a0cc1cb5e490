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

package tensorutils

import "github.com/ajroetker/go-tensorutils/lane"

// BlockSize is the number of consecutive int8 columns processed as one
// vectorized unit. The sparse ledger records nonzero blocks of this width.
const BlockSize = 16

// MatrixBatchVectorMultiplyAccumulate computes, for every batch element b
// and matrix row r, the int8 dot product of row r with activation vector b,
// scales it by scalingFactors[b] and accumulates it into the result buffer:
//
//	result[(b*mRows+r)*resultStride] += scale_b * sum_c(matrix[r,c] * vectors[b,c])
//
// Parameters:
//   - matrix: row-major int8 weights with shape [mRows, mCols]
//   - vectors: nBatch contiguous activation vectors of length mCols each
//   - scalingFactors: one float32 dequantization scale per batch element
//   - result: float32 accumulation buffer, addressed with an explicit
//     element stride so interleaved output layouts are possible
//
// mCols need not be a multiple of BlockSize; remainder columns run through a
// scalar postamble. Result slots are accumulated into, never overwritten.
//
// Panics if a dimension is negative, resultStride is not positive, or any
// slice is shorter than the shape arguments imply.
func MatrixBatchVectorMultiplyAccumulate(matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	checkDenseArgs(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
	if mRows == 0 || nBatch == 0 {
		return
	}

	if lane.CurrentLevel() == lane.DispatchScalar {
		denseScalar(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
		return
	}
	denseBlocks(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
}

// MatrixBatchVectorMultiplyAccumulateWithOffset is the asymmetric-quantization
// variant of MatrixBatchVectorMultiplyAccumulate. The kernel additionally
// accumulates each row's element sum so the activation zero-point can be
// subtracted, and applies a per-row scale on top of the batch scale:
//
//	corrected = dot(row, vec) - rowsum(row) * inputOffset[b]
//	result[(b*mRows+r)*resultStride] += corrected * scalingFactors[b] * perChannelScale[r]
//
// This equals the dot product of the row against the zero-point-shifted
// activations (vectors[b,c] - inputOffset[b]) without materializing a
// shifted copy.
//
// Additional parameters:
//   - perChannelScale: one float32 scale per matrix row (output channel)
//   - inputOffset: one int32 activation zero-point per batch element
//
// Panics under the same conditions as MatrixBatchVectorMultiplyAccumulate,
// or if perChannelScale or inputOffset are shorter than mRows and nBatch.
func MatrixBatchVectorMultiplyAccumulateWithOffset(matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int, perChannelScale []float32, inputOffset []int32) {
	checkDenseArgs(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
	if len(perChannelScale) < mRows {
		panic("tensorutils: per-channel scale slice too small")
	}
	if len(inputOffset) < nBatch {
		panic("tensorutils: input offset slice too small")
	}
	if mRows == 0 || nBatch == 0 {
		return
	}

	if lane.CurrentLevel() == lane.DispatchScalar {
		denseOffsetScalar(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride, perChannelScale, inputOffset)
		return
	}
	denseOffsetBlocks(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride, perChannelScale, inputOffset)
}

// checkDenseArgs performs the once-per-call boundary checks shared by the
// dense kernels. The hot loops assume these hold and stay unchecked.
func checkDenseArgs(matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	if mRows < 0 || mCols < 0 || nBatch < 0 {
		panic("tensorutils: negative dimension")
	}
	if resultStride <= 0 {
		panic("tensorutils: result stride must be positive")
	}
	if len(matrix) < mRows*mCols {
		panic("tensorutils: matrix slice too small")
	}
	if len(vectors) < nBatch*mCols {
		panic("tensorutils: vectors slice too small")
	}
	if len(scalingFactors) < nBatch {
		panic("tensorutils: scaling factors slice too small")
	}
	if n := nBatch * mRows; n > 0 && len(result) < (n-1)*resultStride+1 {
		panic("tensorutils: result slice too small")
	}
}
