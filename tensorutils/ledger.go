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

import "fmt"

// PackSparse compacts a dense row-major int8 matrix into the layout
// SparseMatrixBatchVectorMultiplyAccumulate consumes: the nonzero
// BlockSize-wide blocks of each row stored back to back, plus the per-row
// ledger naming them. A block is nonzero if any of its BlockSize elements
// is nonzero.
//
// This is a preparation step, not a hot path; it allocates its outputs and
// reports contract violations as errors. mCols must be a multiple of
// BlockSize and at most 255*BlockSize so block indices fit the ledger's
// index bytes.
func PackSparse(matrix []int8, mRows, mCols int) (blocks []int8, ledger []uint8, err error) {
	if mRows < 0 || mCols < 0 {
		return nil, nil, fmt.Errorf("tensorutils: negative dimension %dx%d", mRows, mCols)
	}
	if mCols%BlockSize != 0 {
		return nil, nil, fmt.Errorf("tensorutils: cols %d not a multiple of %d", mCols, BlockSize)
	}
	blocksPerRow := mCols / BlockSize
	if blocksPerRow > 255 {
		return nil, nil, fmt.Errorf("tensorutils: %d blocks per row exceed ledger index range", blocksPerRow)
	}
	if len(matrix) < mRows*mCols {
		return nil, nil, fmt.Errorf("tensorutils: matrix has %d elements, need %d", len(matrix), mRows*mCols)
	}

	for row := 0; row < mRows; row++ {
		rowVals := matrix[row*mCols : row*mCols+mCols]
		countAt := len(ledger)
		ledger = append(ledger, 0)
		count := 0
		for b := 0; b < blocksPerRow; b++ {
			block := rowVals[b*BlockSize : (b+1)*BlockSize]
			if isZeroBlock(block) {
				continue
			}
			ledger = append(ledger, uint8(b))
			blocks = append(blocks, block...)
			count++
		}
		ledger[countAt] = uint8(count)
	}
	return blocks, ledger, nil
}

func isZeroBlock(block []int8) bool {
	for _, v := range block {
		if v != 0 {
			return false
		}
	}
	return true
}
