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

// Package tensorutils provides fixed-point matrix–batch-vector
// multiply-accumulate kernels for int8-quantized neural network weights.
//
// # Supported Operations
//
//   - MatrixBatchVectorMultiplyAccumulate - dense int8 matvec over a batch,
//     scaled and accumulated into a strided float32 result buffer
//   - MatrixBatchVectorMultiplyAccumulateWithOffset - as above, with
//     per-channel scales and an input zero-point correction for asymmetric
//     quantization
//   - SparseMatrixBatchVectorMultiplyAccumulate - block-sparse variant that
//     skips zero weight blocks recorded in a per-row ledger
//   - PackSparse - compacts a dense matrix into the ledger + nonzero-block
//     layout the sparse kernel consumes
//   - Parallel* - batch-partitioned drivers over a workerpool.Pool
//
// All kernels accumulate (+=) into the caller's result buffer; they never
// overwrite it. Inputs are caller-owned and never mutated. The kernels hold
// no state, perform no allocation on the hot path, and are safe to call
// concurrently as long as concurrent calls write disjoint result regions.
//
// # Contracts
//
// Shape and length contracts are checked once at the public entry points and
// panic on violation; the inner loops are unchecked. The sparse kernel
// additionally requires the column count to be a multiple of BlockSize and
// validates the ledger before the batch loop.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-tensorutils/tensorutils"
//
//	// 2 rows x 32 cols of int8 weights, one activation vector.
//	result := make([]float32, 2)
//	tensorutils.MatrixBatchVectorMultiplyAccumulate(
//	    weights, 2, 32, activations, []float32{scale}, 1, result, 1)
package tensorutils
