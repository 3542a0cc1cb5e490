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

// Scalar fallbacks, selected when the lane dispatch level is scalar
// (unsupported architecture or TENSORUTILS_NO_SIMD).

func denseScalar(matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	ri := 0
	for batch := 0; batch < nBatch; batch++ {
		batchScale := scalingFactors[batch]
		vec := vectors[batch*mCols : batch*mCols+mCols]
		for row := 0; row < mRows; row++ {
			rowVals := matrix[row*mCols : row*mCols+mCols]
			var sum int32
			for col := 0; col < mCols; col++ {
				sum += int32(rowVals[col]) * int32(vec[col])
			}
			result[ri] += float32(sum) * batchScale
			ri += resultStride
		}
	}
}

func denseOffsetScalar(matrix []int8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int, perChannelScale []float32, inputOffset []int32) {
	ri := 0
	for batch := 0; batch < nBatch; batch++ {
		batchScale := scalingFactors[batch]
		offset := inputOffset[batch]
		vec := vectors[batch*mCols : batch*mCols+mCols]
		for row := 0; row < mRows; row++ {
			rowVals := matrix[row*mCols : row*mCols+mCols]
			var sum, rowSum int32
			for col := 0; col < mCols; col++ {
				sum += int32(rowVals[col]) * int32(vec[col])
				rowSum += int32(rowVals[col])
			}
			sum -= rowSum * offset
			result[ri] += float32(sum) * batchScale * perChannelScale[row]
			ri += resultStride
		}
	}
}

func sparseScalar(matrix []int8, ledger []uint8, mRows, mCols int, vectors []int8, scalingFactors []float32, nBatch int, result []float32, resultStride int) {
	for batch := 0; batch < nBatch; batch++ {
		batchScale := scalingFactors[batch]
		vec := vectors[batch*mCols : batch*mCols+mCols]
		ri := batch * resultStride * mRows
		li := 0
		mi := 0
		for row := 0; row < mRows; row++ {
			numBlocks := int(ledger[li])
			li++
			var sum int32
			for i := 0; i < numBlocks; i++ {
				colIndex := int(ledger[li]) * BlockSize
				li++
				for j := 0; j < BlockSize; j++ {
					sum += int32(matrix[mi+j]) * int32(vec[colIndex+j])
				}
				mi += BlockSize
			}
			result[ri] += float32(sum) * batchScale
			ri += resultStride
		}
	}
}
