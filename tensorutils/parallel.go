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

import "github.com/ajroetker/go-tensorutils/workerpool"

// ---------------------------------------------------------------------------
// Parallel batch drivers
// ---------------------------------------------------------------------------
//
// The drivers partition work across batch elements only. Each batch element
// owns the result region [(b*mRows)*stride, ((b+1)*mRows-1)*stride], so
// worker regions are disjoint and the output is bit-identical to the
// sequential kernels.

// ParallelMatrixBatchVectorMultiplyAccumulate runs
// MatrixBatchVectorMultiplyAccumulate with batch elements distributed over
// the pool. A nil pool or a single-element batch runs sequentially.
func ParallelMatrixBatchVectorMultiplyAccumulate(pool *workerpool.Pool, matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	if pool == nil || nBatch < 2 {
		MatrixBatchVectorMultiplyAccumulate(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
		return
	}
	checkDenseArgs(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)

	pool.ParallelFor(nBatch, func(start, end int) {
		MatrixBatchVectorMultiplyAccumulate(
			matrix, mRows, mCols,
			vectors[start*mCols:end*mCols],
			scalingFactors[start:end], end-start,
			result[start*mRows*resultStride:], resultStride)
	})
}

// ParallelMatrixBatchVectorMultiplyAccumulateWithOffset is the parallel
// driver for MatrixBatchVectorMultiplyAccumulateWithOffset.
func ParallelMatrixBatchVectorMultiplyAccumulateWithOffset(pool *workerpool.Pool, matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int, perChannelScale []float32, inputOffset []int32) {
	if pool == nil || nBatch < 2 {
		MatrixBatchVectorMultiplyAccumulateWithOffset(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride, perChannelScale, inputOffset)
		return
	}
	checkDenseArgs(matrix, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
	if len(perChannelScale) < mRows {
		panic("tensorutils: per-channel scale slice too small")
	}
	if len(inputOffset) < nBatch {
		panic("tensorutils: input offset slice too small")
	}

	pool.ParallelFor(nBatch, func(start, end int) {
		MatrixBatchVectorMultiplyAccumulateWithOffset(
			matrix, mRows, mCols,
			vectors[start*mCols:end*mCols],
			scalingFactors[start:end], end-start,
			result[start*mRows*resultStride:], resultStride,
			perChannelScale, inputOffset[start:end])
	})
}

// ParallelSparseMatrixBatchVectorMultiplyAccumulate is the parallel driver
// for SparseMatrixBatchVectorMultiplyAccumulate. The ledger and compacted
// matrix are shared read-only across workers.
func ParallelSparseMatrixBatchVectorMultiplyAccumulate(pool *workerpool.Pool, matrix []int8, ledger []uint8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	if pool == nil || nBatch < 2 {
		SparseMatrixBatchVectorMultiplyAccumulate(matrix, ledger, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
		return
	}

	pool.ParallelFor(nBatch, func(start, end int) {
		SparseMatrixBatchVectorMultiplyAccumulate(
			matrix, ledger, mRows, mCols,
			vectors[start*mCols:end*mCols],
			scalingFactors[start:end], end-start,
			result[start*mRows*resultStride:], resultStride)
	})
}
