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

// denseBlocks is the block-wise dense kernel. For each batch element and
// each row it accumulates 16-lane dot-product blocks into a 4-lane
// accumulator, reduces, finishes the remainder columns with a scalar
// postamble, then scales and accumulates into the result slot.
func denseBlocks(matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	fullCols := mCols &^ (BlockSize - 1)
	ri := 0
	for batch := 0; batch < nBatch; batch++ {
		batchScale := scalingFactors[batch]
		vec := vectors[batch*mCols : batch*mCols+mCols]
		for row := 0; row < mRows; row++ {
			rowVals := matrix[row*mCols : row*mCols+mCols]

			var dotprod lane.Int32x4
			col := 0
			for ; col < fullCols; col += BlockSize {
				v := lane.LoadInt8x16Slice(vec[col:])
				r := lane.LoadInt8x16Slice(rowVals[col:])
				dotprod = dotprod.Add(lane.DotProdInt8x16(v, r))
			}
			sum := lane.ReduceInt32x4(dotprod)

			// Postamble loop.
			for ; col < mCols; col++ {
				sum += int32(rowVals[col]) * int32(vec[col])
			}

			result[ri] += float32(sum) * batchScale
			ri += resultStride
		}
	}
}

// denseOffsetBlocks extends denseBlocks for asymmetric quantization: the
// block loop simultaneously accumulates the unweighted row sum (16 lanes
// pairwise into 8, widened to 4 after the loop), so the caller's zero-point
// contribution can be subtracted without materializing a shifted row. The
// row-sum lanes accumulate in 16 bits across blocks, exactly as the packed
// hardware sequence does.
func denseOffsetBlocks(matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int, perChannelScale []float32, inputOffset []int32) {
	fullCols := mCols &^ (BlockSize - 1)
	ri := 0
	for batch := 0; batch < nBatch; batch++ {
		batchScale := scalingFactors[batch]
		offset := inputOffset[batch]
		vec := vectors[batch*mCols : batch*mCols+mCols]
		for row := 0; row < mRows; row++ {
			rowVals := matrix[row*mCols : row*mCols+mCols]

			var dotprod lane.Int32x4
			var rowSum16 lane.Int16x8
			col := 0
			for ; col < fullCols; col += BlockSize {
				v := lane.LoadInt8x16Slice(vec[col:])
				r := lane.LoadInt8x16Slice(rowVals[col:])
				dotprod = dotprod.Add(lane.DotProdInt8x16(v, r))
				rowSum16 = rowSum16.Add(lane.PairwiseSumInt8x16(r))
			}
			sum := lane.ReduceInt32x4(dotprod)
			rowSum := lane.ReduceInt32x4(lane.PairwiseWidenInt16x8(rowSum16))

			// Postamble loop.
			for ; col < mCols; col++ {
				sum += int32(rowVals[col]) * int32(vec[col])
				rowSum += int32(rowVals[col])
			}

			sum -= rowSum * offset
			result[ri] += float32(sum) * batchScale * perChannelScale[row]
			ri += resultStride
		}
	}
}
