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

//go:build amd64 && !goexperiment.simd

package lane

import "golang.org/x/sys/cpu"

// Fallback for when GOEXPERIMENT=simd is not enabled. CPU features are read
// through x/sys/cpu instead of archsimd.

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	// The int8 dot-product sequence needs PSIGNB/PMADDUBSW from SSSE3.
	// SSE2 is the amd64 baseline and covers everything else.
	if cpu.X86.HasSSSE3 {
		currentLevel = DispatchSSSE3
		currentWidth = 16
		currentName = "ssse3"
	} else {
		currentLevel = DispatchSSE2
		currentWidth = 16
		currentName = "sse2"
	}
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
	currentName = "scalar"
}
