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

import (
	"math/rand"
	"testing"
)

func TestSparseSingleBlock(t *testing.T) {
	// 1 row, 32 columns, only block 1 nonzero. The kernel must read the
	// activation columns 16-31 and never touch 0-15.
	blocks := make([]int8, 16)
	for i := range blocks {
		blocks[i] = 1
	}
	ledger := []uint8{1, 1} // one nonzero block, at block index 1

	vec := make([]int8, 32)
	for i := 16; i < 32; i++ {
		vec[i] = 2
	}
	// Poison the skipped block: the result must not depend on it.
	for i := 0; i < 16; i++ {
		vec[i] = int8(-100 + i)
	}

	result := []float32{0}
	SparseMatrixBatchVectorMultiplyAccumulate(blocks, ledger, 1, 32, vec, []float32{1.0}, 1, result, 1)

	if result[0] != 32.0 {
		t.Errorf("result = %v, want 32.0", result[0])
	}
}

func TestSparseMatchesDense(t *testing.T) {
	// sparse(PackSparse(M)) must equal dense(M) for any M: zero blocks
	// contribute nothing either way.
	rng := rand.New(rand.NewSource(11))

	testCases := []struct {
		name              string
		rows, cols, batch int
		density           float64
	}{
		{"all_nonzero_4x32", 4, 32, 2, 1.0},
		{"half_sparse_8x64", 8, 64, 3, 0.5},
		{"mostly_zero_16x128", 16, 128, 2, 0.1},
		{"single_row_1x48", 1, 48, 1, 0.7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			matrix := make([]int8, tc.rows*tc.cols)
			blocksPerRow := tc.cols / BlockSize
			for row := 0; row < tc.rows; row++ {
				for b := 0; b < blocksPerRow; b++ {
					if rng.Float64() >= tc.density {
						continue // leave block zero
					}
					for j := 0; j < BlockSize; j++ {
						matrix[row*tc.cols+b*BlockSize+j] = int8(rng.Intn(255) - 127)
					}
				}
			}
			vectors := randActivations(rng, tc.batch*tc.cols)
			scales := make([]float32, tc.batch)
			for i := range scales {
				scales[i] = rng.Float32() + 0.5
			}

			blocks, ledger, err := PackSparse(matrix, tc.rows, tc.cols)
			if err != nil {
				t.Fatalf("PackSparse: %v", err)
			}

			sparse := make([]float32, tc.batch*tc.rows)
			dense := make([]float32, tc.batch*tc.rows)

			SparseMatrixBatchVectorMultiplyAccumulate(blocks, ledger, tc.rows, tc.cols, vectors, scales, tc.batch, sparse, 1)
			MatrixBatchVectorMultiplyAccumulate(matrix, tc.rows, tc.cols, vectors, scales, tc.batch, dense, 1)

			for i := range sparse {
				if sparse[i] != dense[i] {
					t.Fatalf("result[%d]: sparse %v, dense %v", i, sparse[i], dense[i])
				}
			}
		})
	}
}

func TestSparseEmptyRowAccumulatesZero(t *testing.T) {
	// Row 0 has no nonzero blocks; its slot keeps its prior value.
	ledger := []uint8{0, 1, 0} // row 0: empty; row 1: block 0
	blocks := make([]int8, 16)
	for i := range blocks {
		blocks[i] = 1
	}
	vec := make([]int8, 16)
	for i := range vec {
		vec[i] = 1
	}

	result := []float32{7.5, 1.0}
	SparseMatrixBatchVectorMultiplyAccumulate(blocks, ledger, 2, 16, vec, []float32{2.0}, 1, result, 1)

	if result[0] != 7.5 {
		t.Errorf("empty row slot = %v, want 7.5", result[0])
	}
	if result[1] != 1.0+32.0 {
		t.Errorf("result[1] = %v, want 33.0", result[1])
	}
}

func TestSparseScalarFallbackMatchesBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	rows, cols, batch := 6, 64, 2

	matrix := randWeights(rng, rows*cols)
	blocks, ledger, err := PackSparse(matrix, rows, cols)
	if err != nil {
		t.Fatalf("PackSparse: %v", err)
	}
	vectors := randActivations(rng, batch*cols)
	scales := []float32{1.0, 0.5}

	blocked := make([]float32, batch*rows)
	scalar := make([]float32, batch*rows)

	sparseBlocks(blocks, ledger, rows, cols, vectors, scales, batch, blocked, 1)
	sparseScalar(blocks, ledger, rows, cols, vectors, scales, batch, scalar, 1)

	for i := range blocked {
		if blocked[i] != scalar[i] {
			t.Fatalf("result[%d]: blocked %v, scalar %v", i, blocked[i], scalar[i])
		}
	}
}

func TestPackSparseLayout(t *testing.T) {
	// 1 row, 48 cols: block 0 zero, block 1 nonzero, block 2 nonzero.
	matrix := make([]int8, 48)
	matrix[16] = 5  // block 1
	matrix[47] = -3 // block 2

	blocks, ledger, err := PackSparse(matrix, 1, 48)
	if err != nil {
		t.Fatalf("PackSparse: %v", err)
	}

	wantLedger := []uint8{2, 1, 2}
	if len(ledger) != len(wantLedger) {
		t.Fatalf("ledger = %v, want %v", ledger, wantLedger)
	}
	for i := range wantLedger {
		if ledger[i] != wantLedger[i] {
			t.Fatalf("ledger = %v, want %v", ledger, wantLedger)
		}
	}

	if len(blocks) != 2*BlockSize {
		t.Fatalf("blocks has %d elements, want %d", len(blocks), 2*BlockSize)
	}
	if blocks[0] != 5 {
		t.Errorf("blocks[0] = %d, want 5 (first element of block 1)", blocks[0])
	}
	if blocks[31] != -3 {
		t.Errorf("blocks[31] = %d, want -3 (last element of block 2)", blocks[31])
	}
}

func TestPackSparseErrors(t *testing.T) {
	tests := []struct {
		name       string
		matrixLen  int
		rows, cols int
	}{
		{"cols_not_block_multiple", 20, 1, 20},
		{"too_many_blocks", 16 * 256, 1, 16 * 256},
		{"short_matrix", 10, 2, 16},
		{"negative_rows", 0, -1, 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := PackSparse(make([]int8, tc.matrixLen), tc.rows, tc.cols)
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSparseContractPanics(t *testing.T) {
	blocks := make([]int8, 32)
	vec := make([]int8, 32)
	result := make([]float32, 1)

	tests := []struct {
		name string
		fn   func()
	}{
		{"cols_not_block_multiple", func() {
			SparseMatrixBatchVectorMultiplyAccumulate(blocks, []uint8{0}, 1, 20, vec, []float32{1}, 1, result, 1)
		}},
		{"ledger_truncated", func() {
			SparseMatrixBatchVectorMultiplyAccumulate(blocks, []uint8{2, 0}, 1, 32, vec, []float32{1}, 1, result, 1)
		}},
		{"ledger_not_ascending", func() {
			SparseMatrixBatchVectorMultiplyAccumulate(blocks, []uint8{2, 1, 0}, 1, 32, vec, []float32{1}, 1, result, 1)
		}},
		{"block_index_out_of_range", func() {
			SparseMatrixBatchVectorMultiplyAccumulate(blocks, []uint8{1, 2}, 1, 32, vec, []float32{1}, 1, result, 1)
		}},
		{"short_compacted_matrix", func() {
			SparseMatrixBatchVectorMultiplyAccumulate(blocks[:16], []uint8{2, 0, 1}, 1, 32, vec, []float32{1}, 1, result, 1)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn()
		})
	}
}
