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

// SparseMatrixBatchVectorMultiplyAccumulate is the block-sparse counterpart
// of MatrixBatchVectorMultiplyAccumulate. The weight matrix is stored
// compacted: only the nonzero BlockSize-wide blocks of each row, back to
// back in ledger order, with no padding between rows. The ledger is a flat
// byte stream holding, per row, a count byte followed by that many block
// indices in strictly ascending order; block index k covers columns
// [k*BlockSize, (k+1)*BlockSize). Zero blocks are skipped entirely.
//
// Rows with no nonzero blocks still accumulate 0 into their result slot.
// The ledger and compacted matrix are shared across the batch.
//
// mCols must be an exact multiple of BlockSize. The ledger is validated
// once before the batch loop; the kernel itself reads it sequentially and
// unchecked. Panics on any contract violation.
func SparseMatrixBatchVectorMultiplyAccumulate(matrix []int8, ledger []uint8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	if mRows < 0 || mCols < 0 || nBatch < 0 {
		panic("tensorutils: negative dimension")
	}
	if resultStride <= 0 {
		panic("tensorutils: result stride must be positive")
	}
	if mCols%BlockSize != 0 {
		panic("tensorutils: cols must be a multiple of BlockSize")
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
	totalBlocks := validateLedger(ledger, mRows, mCols/BlockSize)
	if len(matrix) < totalBlocks*BlockSize {
		panic("tensorutils: matrix slice too small")
	}
	if mRows == 0 || nBatch == 0 {
		return
	}

	if lane.CurrentLevel() == lane.DispatchScalar {
		sparseScalar(matrix, ledger, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
		return
	}
	sparseBlocks(matrix, ledger, mRows, mCols, vectors, scalingFactors, nBatch, result, resultStride)
}

// validateLedger walks the ledger once, checking that every row's block
// indices are strictly increasing and in bounds, and returns the total
// number of nonzero blocks. Panics on a truncated or malformed ledger.
func validateLedger(ledger []uint8, mRows, blocksPerRow int) int {
	li := 0
	total := 0
	for row := 0; row < mRows; row++ {
		if li >= len(ledger) {
			panic("tensorutils: ledger truncated")
		}
		numBlocks := int(ledger[li])
		li++
		if li+numBlocks > len(ledger) {
			panic("tensorutils: ledger truncated")
		}
		prev := -1
		for i := 0; i < numBlocks; i++ {
			idx := int(ledger[li])
			li++
			if idx <= prev {
				panic("tensorutils: ledger block indices not ascending")
			}
			if idx >= blocksPerRow {
				panic("tensorutils: ledger block index out of range")
			}
			prev = idx
		}
		total += numBlocks
	}
	return total
}
