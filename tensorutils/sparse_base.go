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

// sparseRowBlocks applies the sparse row kernel across all rows for one
// activation vector. matrix holds only the nonzero blocks, back to back in
// ledger order with no padding between rows; the ledger supplies, per row,
// a count byte followed by that many block indices. Zero blocks are never
// touched.
func sparseRowBlocks(matrix []int8, ledger []uint8, mRows int, vec []int8, scalingFactor float32, result []float32, resultStride int) {
	ri := 0
	li := 0
	mi := 0
	for row := 0; row < mRows; row++ {
		var dotprod lane.Int32x4
		numBlocks := int(ledger[li])
		li++
		for i := 0; i < numBlocks; i++ {
			colIndex := int(ledger[li]) * BlockSize
			li++
			v := lane.LoadInt8x16Slice(vec[colIndex:])
			r := lane.LoadInt8x16Slice(matrix[mi:])
			dotprod = dotprod.Add(lane.DotProdInt8x16(v, r))
			mi += BlockSize
		}
		sum := lane.ReduceInt32x4(dotprod)

		result[ri] += float32(sum) * scalingFactor
		ri += resultStride
	}
}

// sparseBlocks drives sparseRowBlocks across the batch. The ledger and
// compacted matrix are shared by all batch elements; the activation pointer
// advances by mCols and the result pointer by resultStride*mRows per batch
// element.
func sparseBlocks(matrix []int8, ledger []uint8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	for batch := 0; batch < nBatch; batch++ {
		vec := vectors[batch*mCols : batch*mCols+mCols]
		res := result[batch*resultStride*mRows:]
		sparseRowBlocks(matrix, ledger, mRows, vec, scalingFactors[batch], res, resultStride)
	}
}
